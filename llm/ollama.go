// Ollama Provider implementation using the go-openai library against
// the local OpenAI-compatible endpoint.
//
// Information Hiding:
// - Local endpoint details (no credentials required)
// - Request/response translation via go-openai

package llm

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const ollamaBaseURL = "http://localhost:11434/v1"

// OllamaProvider implements the Provider interface for a local Ollama
// server. No credential pool: the local endpoint is unauthenticated.
type OllamaProvider struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOllamaProvider creates a provider talking to a local Ollama server.
func NewOllamaProvider(model string, maxTokens uint32, temperature float32) *OllamaProvider {
	config := openai.DefaultConfig("ollama")
	config.BaseURL = ollamaBaseURL
	config.HTTPClient = &http.Client{Timeout: 60 * time.Second}

	return &OllamaProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		maxTokens:   int(maxTokens),
		temperature: temperature,
	}
}

// WithBaseURL overrides the endpoint (primarily for tests).
func (p *OllamaProvider) WithBaseURL(url string) *OllamaProvider {
	config := openai.DefaultConfig("ollama")
	config.BaseURL = url
	config.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	p.client = openai.NewClientWithConfig(config)
	return p
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Model returns the current model.
func (p *OllamaProvider) Model() string {
	return p.model
}

// Generate sends a chat completion request to the local server.
func (p *OllamaProvider) Generate(ctx context.Context, history []Message, systemPrompt string) Reply {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: englishOnlyClause + systemPrompt,
	})
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Text(),
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	})
	if err != nil {
		slog.Warn("ollama: generate failed", "err", err)
		return Reply{Text: "I cannot connect to the local Ollama server. Is it running?"}
	}
	if len(resp.Choices) == 0 {
		slog.Warn("ollama: response missing choices", "model", p.model)
		return Reply{Text: emptyReply}
	}

	return Reply{
		Text: resp.Choices[0].Message.Content,
		Usage: &TokenUsage{
			PromptTokens:     uint32(resp.Usage.PromptTokens),
			CompletionTokens: uint32(resp.Usage.CompletionTokens),
			TotalTokens:      uint32(resp.Usage.TotalTokens),
		},
		Model: p.model,
	}
}

// Verify OllamaProvider implements Provider.
var _ Provider = (*OllamaProvider)(nil)
