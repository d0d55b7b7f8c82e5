// LLM Provider Factory.
//
// Providers are selected by name and constructed from explicit
// parameters; the config package resolves credentials and models from
// the environment and feeds them in here.

package llm

import (
	"fmt"
	"strings"
)

// ProviderType represents supported LLM providers.
type ProviderType int

const (
	// ProviderOpenRouter is the OpenRouter gateway (many hosted models).
	ProviderOpenRouter ProviderType = iota
	// ProviderCohere is the Cohere provider (Command models).
	ProviderCohere
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini
	// ProviderAnthropic is the Anthropic provider (Claude models).
	ProviderAnthropic
	// ProviderOllama is a local Ollama server.
	ProviderOllama
)

// String returns the string representation of the provider type.
func (p ProviderType) String() string {
	switch p {
	case ProviderOpenRouter:
		return "openrouter"
	case ProviderCohere:
		return "cohere"
	case ProviderGemini:
		return "gemini"
	case ProviderAnthropic:
		return "anthropic"
	case ProviderOllama:
		return "ollama"
	default:
		return "unknown"
	}
}

// DefaultModel returns the default model for this provider.
func (p ProviderType) DefaultModel() string {
	switch p {
	case ProviderOpenRouter:
		return "meta-llama/llama-3.3-70b-instruct"
	case ProviderCohere:
		return "command-a-03-2025"
	case ProviderGemini:
		return "gemini-2.0-flash"
	case ProviderAnthropic:
		return "claude-haiku-4-20250514"
	case ProviderOllama:
		return "llama3"
	default:
		return ""
	}
}

// ParseProviderType parses a provider from string (case-insensitive).
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToLower(s) {
	case "openrouter":
		return ProviderOpenRouter, nil
	case "cohere":
		return ProviderCohere, nil
	case "gemini", "google":
		return ProviderGemini, nil
	case "anthropic", "claude":
		return ProviderAnthropic, nil
	case "ollama", "local":
		return ProviderOllama, nil
	default:
		return 0, fmt.Errorf("unknown provider: %s", s)
	}
}

// Options configures provider construction.
type Options struct {
	// Keys is the credential pool. Pooled vendors use every entry;
	// single-key vendors use the first.
	Keys      []string
	Model     string
	MaxTokens uint32
	// Temperature nil means the 0.7 default. An explicit zero is
	// honored.
	Temperature *float32
}

// New constructs a provider of the given type. A missing model falls
// back to the type's default; missing credentials are allowed and
// degrade Generate to the fixed apology rather than failing here.
// MaxTokens zero also falls back; a zero output budget is never a
// usable request.
func New(t ProviderType, opts Options) (Provider, error) {
	model := opts.Model
	if model == "" {
		model = t.DefaultModel()
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	temperature := float32(0.7)
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	firstKey := ""
	if len(opts.Keys) > 0 {
		firstKey = opts.Keys[0]
	}

	switch t {
	case ProviderOpenRouter:
		return NewOpenRouterProvider(opts.Keys, model, maxTokens, temperature), nil
	case ProviderCohere:
		return NewCohereProvider(opts.Keys, model, temperature), nil
	case ProviderGemini:
		return NewGeminiProvider(firstKey, model, maxTokens, temperature), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(firstKey, model, maxTokens, temperature), nil
	case ProviderOllama:
		return NewOllamaProvider(model, maxTokens, temperature), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %v", t)
	}
}
