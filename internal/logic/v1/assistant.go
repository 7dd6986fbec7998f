package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dvminh/minicms/config"
)

// ContentAssistant drafts post bodies from a title via the OpenAI Chat
// Completions API. Failures are never retried; the caller surfaces the
// message to the requester.
type ContentAssistant struct {
	client  *http.Client
	apiKey  string
	baseURL string
	model   string
}

// NewContentAssistant creates a ContentAssistant from configuration.
func NewContentAssistant(cfg *config.Config) *ContentAssistant {
	return &ContentAssistant{
		client:  &http.Client{Timeout: 15 * time.Second},
		apiKey:  cfg.OpenAI.APIKey,
		baseURL: strings.TrimSuffix(cfg.OpenAI.BaseURL, "/"),
		model:   cfg.OpenAI.Model,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
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

// Generate returns draft body text for the given title. Missing
// credential, transport failure, non-2xx status, and an empty upstream
// response all wrap ErrGenerationFailed.
func (a *ContentAssistant) Generate(ctx context.Context, title string) (string, error) {
	if a.apiKey == "" {
		return "", fmt.Errorf("%w: OpenAI API key is not configured", ErrGenerationFailed)
	}

	body, err := json.Marshal(chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf("Generate engaging 200-word blog post on %s", title)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: contact OpenAI: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: OpenAI returned status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGenerationFailed, err)
	}

	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: OpenAI returned no content", ErrGenerationFailed)
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
