package llm

import (
	"context"
	"encoding/json"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// JSONSchema describes a strict structured-output schema in the
// OpenAI-compatible response_format shape.
type JSONSchema struct {
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

// ResponseFormat requests schema-constrained output from the provider.
type ResponseFormat struct {
	Type       string     `json:"type"` // always "json_schema"
	JSONSchema JSONSchema `json:"json_schema"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for any chat-completion backend
type Provider interface {
	// Chat sends a chat history to the model and returns the plain response text
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatStructured sends a chat history with a strict response schema and
	// returns the raw JSON object content. Parse failures surface as KindParse,
	// non-object payloads as KindValidation.
	ChatStructured(ctx context.Context, history []Message, format ResponseFormat, options ...Option) (json.RawMessage, error)

	// Model reports the model identifier the provider is configured with.
	Model() string
}
