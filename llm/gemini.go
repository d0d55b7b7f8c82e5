// Google Gemini Provider implementation using the official
// google.golang.org/genai SDK.
//
// Information Hiding:
// - API authentication and client creation
// - Request/response format for the Gemini API
// - System instruction handling via config

package llm

import (
	"context"
	"log/slog"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface for Google Gemini.
// Gemini carries a single API key rather than a pool.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	initErr     error // client initialization error, reported on first use
}

// NewGeminiProvider creates a new Gemini provider. An empty key or a
// failed client initialization degrades Generate to the fixed apology.
func NewGeminiProvider(apiKey, model string, maxTokens uint32, temperature float32) *GeminiProvider {
	p := &GeminiProvider{
		model:       model,
		maxTokens:   int32(maxTokens),
		temperature: temperature,
	}
	if apiKey == "" {
		return p
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		p.initErr = err
		return p
	}
	p.client = client
	return p
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Model returns the current model.
func (p *GeminiProvider) Model() string {
	return p.model
}

// Generate sends a generation request to the Gemini API.
func (p *GeminiProvider) Generate(ctx context.Context, history []Message, systemPrompt string) Reply {
	if p.client == nil {
		if p.initErr != nil {
			slog.Error("gemini: client unavailable", "err", p.initErr)
		}
		return Reply{Text: missingKeyReply}
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := genai.Role(genai.RoleModel)
		if msg.Role == RoleUser {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(msg.Text(), role))
	}

	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(p.temperature),
		MaxOutputTokens:   p.maxTokens,
		SystemInstruction: genai.NewContentFromText(englishOnlyClause+systemPrompt, genai.RoleUser),
	}

	response, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		slog.Warn("gemini: generate failed", "err", err)
		return Reply{Text: "I lost my connection to the Gemini cloud."}
	}

	text := response.Text()
	if text == "" {
		slog.Warn("gemini: response missing content", "model", p.model)
		return Reply{Text: emptyReply}
	}

	var usage *TokenUsage
	if response.UsageMetadata != nil {
		usage = &TokenUsage{
			PromptTokens:     uint32(response.UsageMetadata.PromptTokenCount),
			CompletionTokens: uint32(response.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      uint32(response.UsageMetadata.TotalTokenCount),
		}
	}

	return Reply{Text: text, Usage: usage, Model: p.model}
}

// Verify GeminiProvider implements Provider.
var _ Provider = (*GeminiProvider)(nil)
