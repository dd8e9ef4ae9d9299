package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaClassifier asks a local LLM for the topic title. The model sees the
// existing titles so it can reuse one when the excerpt continues a known
// topic, but whatever it answers is still fuzzy-matched downstream.
type OllamaClassifier struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ TopicClassifier = &OllamaClassifier{}

func NewOllamaClassifier(baseURL, modelName string) *OllamaClassifier {
	return &OllamaClassifier{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

const topicSystemPrompt = `You label health conversations. Reply with a short topic title (1-3 words, e.g. "Back Pain"). If the conversation continues one of the known topics, reply with that topic's exact title. Reply with the title only, no punctuation or explanation.`

func (c *OllamaClassifier) DetectTopic(ctx context.Context, excerpt string, existingTitles []string) (string, error) {
	known := "none"
	if len(existingTitles) > 0 {
		known = strings.Join(existingTitles, ", ")
	}

	reqPayload := ollamaChatRequest{
		Model: c.ModelName,
		Messages: []ollamaMessage{
			{Role: "system", Content: topicSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Known topics: %s\n\nConversation:\n%s", known, excerpt)},
		},
		Stream: false,
		Options: &ollamaOptions{
			Temperature: 0.1,
			NumPredict:  16,
		},
	}

	body, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal classifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode classifier response: %w", err)
	}

	title := strings.Trim(strings.TrimSpace(chatResp.Message.Content), `"'.`)
	if title == "" {
		return "", fmt.Errorf("classifier returned an empty title")
	}
	return title, nil
}
