package messaging

import "context"

// Client sends an outbound message to a conversation on the external chat
// channel. Implementations must respect ctx deadlines; the follow-up
// scheduler relies on a bounded send so a hung provider surfaces as a
// retryable timeout instead of a stuck worker.
type Client interface {
	Send(ctx context.Context, conversationRef string, text string) error
}
