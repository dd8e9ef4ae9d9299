package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChatClient delivers messages through the chat provider's HTTP API
// (WhatsApp-style gateway: POST {to, body} with a bearer token).
type ChatClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

var _ Client = &ChatClient{}

func NewChatClient(baseURL, token string) *ChatClient {
	return &ChatClient{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type chatSendRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

type chatSendResponse struct {
	MessageId string `json:"message_id"`
	Error     string `json:"error,omitempty"`
}

func (c *ChatClient) Send(ctx context.Context, conversationRef string, text string) error {
	reqBody, err := json.Marshal(chatSendRequest{To: conversationRef, Body: text})
	if err != nil {
		return fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/messages", bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("chat provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("chat provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var sendResp chatSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		// Provider accepted the message; a malformed ack body is not a
		// delivery failure.
		return nil
	}
	if sendResp.Error != "" {
		return fmt.Errorf("chat provider rejected message: %s", sendResp.Error)
	}
	return nil
}
