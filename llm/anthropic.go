// Anthropic Provider implementation using the official anthropic-sdk-go.
//
// Information Hiding:
// - API endpoint and authentication
// - Request/response format for the Anthropic Messages API
// - System prompt handling as a top-level parameter

package llm

import (
	"context"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements the Provider interface for Anthropic
// Claude. Anthropic carries a single API key rather than a pool.
type AnthropicProvider struct {
	client      anthropic.Client
	hasKey      bool
	model       string
	maxTokens   int64
	temperature float64
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(apiKey, model string, maxTokens uint32, temperature float32) *AnthropicProvider {
	return &AnthropicProvider{
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		hasKey:      apiKey != "",
		model:       model,
		maxTokens:   int64(maxTokens),
		temperature: float64(temperature),
	}
}

// Name returns the provider name.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Model returns the current model.
func (p *AnthropicProvider) Model() string {
	return p.model
}

// Generate sends a messages request to the Anthropic API.
func (p *AnthropicProvider) Generate(ctx context.Context, history []Message, systemPrompt string) Reply {
	if !p.hasKey {
		return Reply{Text: missingKeyReply}
	}

	messages := make([]anthropic.MessageParam, 0, len(history))
	for _, msg := range history {
		block := anthropic.NewTextBlock(msg.Text())
		if msg.Role == RoleUser {
			messages = append(messages, anthropic.NewUserMessage(block))
		} else {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		}
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   p.maxTokens,
		Messages:    messages,
		Temperature: anthropic.Float(p.temperature),
		System: []anthropic.TextBlockParam{
			{Text: englishOnlyClause + systemPrompt},
		},
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		slog.Warn("anthropic: generate failed", "err", err)
		return Reply{Text: "I lost my connection to the Anthropic cloud."}
	}

	content := ""
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			content += variant.Text
		}
	}
	if content == "" {
		slog.Warn("anthropic: response missing text content", "model", p.model)
		return Reply{Text: emptyReply}
	}

	var usage *TokenUsage
	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		usage = &TokenUsage{
			PromptTokens:     uint32(message.Usage.InputTokens),
			CompletionTokens: uint32(message.Usage.OutputTokens),
			TotalTokens:      uint32(message.Usage.InputTokens + message.Usage.OutputTokens),
		}
	}

	return Reply{Text: content, Usage: usage, Model: p.model}
}

// Verify AnthropicProvider implements Provider.
var _ Provider = (*AnthropicProvider)(nil)
