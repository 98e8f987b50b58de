// Package advice wraps the external language-model endpoint that suggests
// diagnostic steps. The wrapper absorbs every failure: callers always get a
// human-readable string back, never an error.
package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"repair-workshop-backend/config"
)

// FallbackMessage is returned whenever the advice endpoint cannot be used.
const FallbackMessage = "The diagnostic assistant is unavailable right now. " +
	"Check the power circuit, fuses and electrolytic capacitors first, and consult the service manual for this model."

const systemPrompt = "You are an experienced electronics repair technician. " +
	"Suggest likely causes and concrete diagnostic steps for the described fault. Be brief and practical."

// Client calls a chat-completions style endpoint for diagnostic advice.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewClient creates an advice client from configuration.
func NewClient(cfg *config.AdviceConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate asks the endpoint for advice on the given prompt. On any failure
// it logs the cause and returns FallbackMessage.
func (c *Client) Generate(ctx context.Context, prompt string) string {
	if c.endpoint == "" {
		return FallbackMessage
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		log.Printf("advice: failed to marshal request: %v", err)
		return FallbackMessage
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("advice: failed to create request: %v", err)
		return FallbackMessage
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("advice: request failed: %v", err)
		return FallbackMessage
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("advice: received non-200 status code: %d", resp.StatusCode)
		return FallbackMessage
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("advice: failed to read response body: %v", err)
		return FallbackMessage
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Printf("advice: failed to unmarshal response: %v", err)
		return FallbackMessage
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		log.Printf("advice: response carried no choices")
		return FallbackMessage
	}

	return parsed.Choices[0].Message.Content
}
