package messaging

import (
	"context"

	"gopkg.in/gomail.v2"
)

// EmailClient is the fallback delivery channel for deployments without a
// chat provider: the conversation ref is the patient's email address.
type EmailClient struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	subject     string
}

var _ Client = &EmailClient{}

func NewEmailClient(host string, port int, username, password, senderEmail, senderName string) *EmailClient {
	return &EmailClient{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
		subject:     "A quick check-in",
	}
}

func (c *EmailClient) Send(ctx context.Context, conversationRef string, text string) error {
	// gomail has no context support; honor an already-cancelled ctx at least.
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.senderEmail, c.senderName)
	m.SetHeader("To", conversationRef)
	m.SetHeader("Subject", c.subject)
	m.SetBody("text/plain", text)

	return c.dialer.DialAndSend(m)
}
