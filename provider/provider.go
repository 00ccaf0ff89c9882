package provider

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/siue-cs/eddiebot/config"
	openai_provider "github.com/siue-cs/eddiebot/provider/openai"
)

// LLMError marks a failed model invocation (auth, throttling, malformed
// response). It is never recovered inside the pipeline; callers decide the
// user-facing fallback.
type LLMError struct {
	Err error
}

func (e *LLMError) Error() string { return fmt.Sprintf("llm: %v", e.Err) }
func (e *LLMError) Unwrap() error { return e.Err }

// Provider is the opaque hosted-model collaborator: one prompt in, one
// completion out.
type Provider interface {
	Converse(ctx context.Context, prompt string, maxTokens int) (string, error)
}

type Client string

const (
	OpenAI Client = "openai"
)

// NewProvider creates an LLM client from configuration.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch Client(cfg.Provider) {
	case OpenAI:
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, errors.New("OPENAI_API_KEY not set")
		}
		return openai_provider.NewClient(apiKey, cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.TopP, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
