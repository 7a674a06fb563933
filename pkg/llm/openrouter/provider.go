package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tenx-cards-be/pkg/llm"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultTimeout = 60 * time.Second

	// bodyPreviewLimit bounds how much of an upstream body ends up in error
	// details. Enough to diagnose, small enough for log lines.
	bodyPreviewLimit = 200
)

// Config holds everything the provider needs at construction time.
// APIKey and Model are mandatory; missing values are a startup error,
// never a per-request one.
type Config struct {
	APIKey   string
	Model    string
	BaseURL  string
	SiteURL  string // sent as HTTP-Referer, identifies the app to OpenRouter
	SiteName string // sent as X-Title
	Timeout  time.Duration
}

// OpenRouterProvider talks to the OpenRouter chat-completions API.
// It performs no retries; rate-limit and transient failures propagate to the
// caller as typed errors.
type OpenRouterProvider struct {
	apiKey   string
	baseURL  string
	model    string
	siteURL  string
	siteName string
	client   *http.Client
}

type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []llm.Message       `json:"messages"`
	ResponseFormat *llm.ResponseFormat `json:"response_format,omitempty"`
	Temperature    *float64            `json:"temperature,omitempty"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenRouterProvider(cfg Config) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, llm.NewError(llm.KindConfiguration, 0, "openrouter api key is missing in configuration", nil)
	}
	if cfg.Model == "" {
		return nil, llm.NewError(llm.KindConfiguration, 0, "default model for openrouter is not configured", nil)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = "localhost"
	}
	if cfg.SiteName == "" {
		cfg.SiteName = "10x-cards"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &OpenRouterProvider{
		apiKey:   cfg.APIKey,
		baseURL:  cfg.BaseURL,
		model:    cfg.Model,
		siteURL:  cfg.SiteURL,
		siteName: cfg.SiteName,
		client:   &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (p *OpenRouterProvider) Model() string {
	return p.model
}

func (p *OpenRouterProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.complete(ctx, history, nil, options...)
}

func (p *OpenRouterProvider) ChatStructured(ctx context.Context, history []llm.Message, format llm.ResponseFormat, options ...llm.Option) (json.RawMessage, error) {
	content, err := p.complete(ctx, history, &format, options...)
	if err != nil {
		return nil, err
	}
	return parseStructuredContent(content)
}

func (p *OpenRouterProvider) complete(ctx context.Context, history []llm.Message, format *llm.ResponseFormat, options ...llm.Option) (string, error) {
	opts := &llm.Options{
		Model: p.model,
	}
	for _, o := range options {
		o(opts)
	}

	reqBody := chatRequest{
		Model:          opts.Model,
		Messages:       history,
		ResponseFormat: format,
		MaxTokens:      opts.MaxTokens,
	}
	if opts.Temperature > 0 {
		reqBody.Temperature = &opts.Temperature
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", llm.NewError(llm.KindGeneric, 0, "failed to marshal openrouter request", map[string]interface{}{
			"error": err.Error(),
		})
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", llm.NewError(llm.KindGeneric, 0, "failed to create openrouter request", map[string]interface{}{
			"error": err.Error(),
		})
	}

	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", p.siteURL)
	req.Header.Set("X-Title", p.siteName)

	resp, err := p.client.Do(req)
	if err != nil {
		// Timeouts and connectivity failures count as the model being
		// unreachable; the user can simply resubmit.
		kind := llm.KindModelUnavailable
		if errors.Is(err, context.Canceled) {
			kind = llm.KindGeneric
		}
		return "", llm.NewError(kind, 0, "openrouter api request failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", mapStatusError(resp.StatusCode, bodyBytes)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", llm.NewError(llm.KindModelUnavailable, resp.StatusCode, "openrouter api returned invalid response structure", map[string]interface{}{
			"body_preview": preview(bodyBytes),
		})
	}

	if len(chatResp.Choices) == 0 {
		return "", llm.NewError(llm.KindModelUnavailable, resp.StatusCode, "openrouter api returned invalid response structure", map[string]interface{}{
			"choices_length": len(chatResp.Choices),
		})
	}

	content := chatResp.Choices[0].Message.Content
	if content == nil {
		return "", llm.NewError(llm.KindModelUnavailable, resp.StatusCode, "openrouter api returned empty content", nil)
	}

	return *content, nil
}

// mapStatusError translates a non-2xx provider status into the closed error
// taxonomy. Details never include the bearer credential.
func mapStatusError(status int, body []byte) *llm.Error {
	details := map[string]interface{}{
		"status":       status,
		"body_preview": preview(body),
	}

	switch {
	case status == http.StatusBadRequest:
		return llm.NewError(llm.KindConfiguration, status, "openrouter api configuration error", details)
	case status == http.StatusUnauthorized:
		return llm.NewError(llm.KindAuthorization, status, "openrouter api authorization failed", details)
	case status == http.StatusPaymentRequired || status == http.StatusTooManyRequests:
		return llm.NewError(llm.KindRateLimit, status, "openrouter api rate limit or credit limit exceeded", details)
	case status == http.StatusInternalServerError || status == http.StatusServiceUnavailable:
		return llm.NewError(llm.KindModelUnavailable, status, "openrouter api service unavailable", details)
	default:
		return llm.NewError(llm.KindGeneric, status, "openrouter api request failed", details)
	}
}

// parseStructuredContent enforces the structured-output contract: the content
// must be valid JSON and must be an object. These failures are distinct from
// transport errors because they indicate schema non-compliance by the model.
func parseStructuredContent(content string) (json.RawMessage, error) {
	var parsed interface{}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, llm.NewError(llm.KindParse, 0, "failed to parse json response from openrouter", map[string]interface{}{
			"content_length":  len(content),
			"content_preview": preview([]byte(content)),
			"error":           err.Error(),
		})
	}

	if _, ok := parsed.(map[string]interface{}); !ok {
		return nil, llm.NewError(llm.KindValidation, 0, "parsed json is not a valid object", map[string]interface{}{
			"received_type": fmt.Sprintf("%T", parsed),
		})
	}

	return json.RawMessage(content), nil
}

func preview(body []byte) string {
	if len(body) > bodyPreviewLimit {
		return string(body[:bodyPreviewLimit])
	}
	return string(body)
}
