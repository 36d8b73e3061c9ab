package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"sdd/internal/models"
	"sdd/internal/providers"
	"sdd/internal/structures"
)

// AnalysisClientInterface turns diary content into an emotion label, a
// one-sentence summary and an optional title via one chat-completion call.
type AnalysisClientInterface interface {
	Analyze(ctx context.Context, content string) (*models.AnalysisResult, error)
}

type AnalysisClient struct {
	conf   structures.AnalysisConfig
	logger providers.Logger
	client *http.Client
}

func NewAnalysisClient(conf *structures.Config, logger providers.Logger) AnalysisClientInterface {
	timeout := conf.Analysis.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AnalysisClient{
		conf:   conf.Analysis,
		logger: logger,
		client: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze issues a single POST to the configured chat-completion endpoint.
// The model's text completion is itself expected to be a JSON object, so
// the response goes through a second decode step.
func (c *AnalysisClient) Analyze(ctx context.Context, content string) (*models.AnalysisResult, error) {
	reqBody := chatRequest{
		Model:       c.conf.Model,
		Messages:    c.buildMessages(content),
		Temperature: c.conf.Temperature,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.conf.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.conf.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrInvalidAPIKey
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))}
	}

	var envelope chatResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("%w: bad envelope: %v", ErrInvalidResponse, err)
	}
	if len(envelope.Choices) == 0 || strings.TrimSpace(envelope.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("%w: empty completion", ErrInvalidResponse)
	}

	return parseCompletion(envelope.Choices[0].Message.Content)
}

func (c *AnalysisClient) buildMessages(content string) []chatMessage {
	system := c.conf.SystemPrompt
	if system == "" {
		system = defaultSystemPrompt
	}
	template := c.conf.PromptTemplate
	if template == "" {
		template = defaultPromptTemplate
	}
	return []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: fmt.Sprintf(template, content)},
	}
}

// parseCompletion decodes the embedded JSON object out of the model's text
// completion. Models tend to wrap the object in markdown fences.
func parseCompletion(text string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(extractJSON(text)), &result); err != nil {
		return nil, fmt.Errorf("%w: bad completion payload: %v", ErrInvalidResponse, err)
	}

	result.Emotion = strings.ToLower(strings.TrimSpace(result.Emotion))
	result.Summary = strings.TrimSpace(result.Summary)
	result.Title = strings.TrimSpace(result.Title)

	if !models.IsValidEmotion(result.Emotion) {
		return nil, fmt.Errorf("%w: unknown emotion label %q", ErrInvalidResponse, result.Emotion)
	}
	if result.Summary == "" {
		return nil, fmt.Errorf("%w: missing summary", ErrInvalidResponse)
	}
	return &result, nil
}

func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+3:]
		text = strings.TrimPrefix(text, "json")
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return strings.TrimSpace(text)
}
