// OpenRouter Provider implementation using the go-openai library.
//
// Information Hiding:
// - OpenAI-compatible API with different base URL
// - Credential pool failover with sticky affinity
// - Multimodal (image) request formatting

package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

const missingKeyReply = "My brain is missing its connection key."

const emptyReply = "I couldn't think of a response."

// OpenRouterProvider implements the Provider interface for OpenRouter.
// It holds one client per pooled credential; Generate walks the pool on
// failure and remembers the credential that worked.
type OpenRouterProvider struct {
	pool        *KeyPool
	clients     []*openai.Client
	baseURL     string
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenRouterProvider creates an OpenRouter provider over a pool of
// API keys. An empty pool is allowed; Generate then degrades to a fixed
// apology without any network attempt.
func NewOpenRouterProvider(keys []string, model string, maxTokens uint32, temperature float32) *OpenRouterProvider {
	p := &OpenRouterProvider{
		pool:        NewKeyPool(keys),
		baseURL:     openRouterBaseURL,
		model:       model,
		maxTokens:   int(maxTokens),
		temperature: temperature,
	}
	p.rebuildClients()
	return p
}

// WithBaseURL overrides the API base URL (primarily for tests).
func (p *OpenRouterProvider) WithBaseURL(url string) *OpenRouterProvider {
	p.baseURL = url
	p.rebuildClients()
	return p
}

func (p *OpenRouterProvider) rebuildClients() {
	p.clients = p.clients[:0]
	for i := 0; i < p.pool.Size(); i++ {
		config := openai.DefaultConfig(p.pool.Key(i))
		config.BaseURL = p.baseURL
		config.HTTPClient = &http.Client{Timeout: 30 * time.Second}
		p.clients = append(p.clients, openai.NewClientWithConfig(config))
	}
}

// Name returns the provider name.
func (p *OpenRouterProvider) Name() string {
	return "openrouter"
}

// Model returns the current model.
func (p *OpenRouterProvider) Model() string {
	return p.model
}

// Generate sends a chat completion request, failing over across the
// credential pool. Each credential is tried exactly once per call; the
// first success becomes the pool's new current credential.
func (p *OpenRouterProvider) Generate(ctx context.Context, history []Message, systemPrompt string) Reply {
	if p.pool.Empty() {
		return Reply{Text: missingKeyReply}
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: englishOnlyClause + systemPrompt,
	})
	for _, msg := range history {
		messages = append(messages, convertToOpenRouterMessage(msg))
	}

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	}

	var attemptErrs []string
	for attempt, i := range p.pool.order() {
		resp, err := p.clients[i].CreateChatCompletion(ctx, req)
		if err != nil {
			slog.Warn("openrouter: attempt failed", "attempt", attempt+1, "err", err)
			attemptErrs = append(attemptErrs, fmt.Sprintf("attempt %d: %v", attempt+1, err))
			continue
		}

		p.pool.markGood(i)

		if len(resp.Choices) == 0 {
			slog.Warn("openrouter: response missing choices", "model", p.model)
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

	return Reply{Text: "I apologize, but I encountered an error: " + strings.Join(attemptErrs, "; ")}
}

// ClassifyVisionIntent asks the model whether the utterance is about
// the screen, the camera, or neither. Any failure maps to NONE.
func (p *OpenRouterProvider) ClassifyVisionIntent(ctx context.Context, utterance string) VisionIntent {
	prompt := fmt.Sprintf(
		"Classify this user request: '%s'. Reply with exactly one word: "+
			"SCREEN if the user asks about what is currently on the computer screen, "+
			"CAMERA if the user asks what you can see through the camera or webcam, "+
			"or NONE for anything else.", utterance)

	reply := p.Generate(ctx, nil, prompt)
	if reply.Failed() {
		return VisionNone
	}
	label := strings.ToUpper(strings.TrimSpace(reply.Text))
	switch {
	case strings.Contains(label, "SCREEN"):
		return VisionScreen
	case strings.Contains(label, "CAMERA"):
		return VisionCamera
	default:
		return VisionNone
	}
}

// AnalyzeImage sends a base64-encoded image with a prompt and returns
// the model's description. Unlike Generate this surfaces errors: the
// tool boundary converts them to readable sentences.
func (p *OpenRouterProvider) AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error) {
	if p.pool.Empty() {
		return "", fmt.Errorf("no API key configured")
	}

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeText,
					Text: fmt.Sprintf("Analyze this image and answer the user's request: %s. Be concise and direct.", prompt),
				},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL: "data:image/jpeg;base64," + imageB64,
					},
				},
			},
		}},
		MaxTokens: p.maxTokens,
	}

	var lastErr error
	for _, i := range p.pool.order() {
		resp, err := p.clients[i].CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = err
			continue
		}
		p.pool.markGood(i)
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("empty response")
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("image analysis failed: %w", lastErr)
}

// convertToOpenRouterMessage converts our Message to the go-openai
// format, using MultiContent when the message carries image parts.
func convertToOpenRouterMessage(msg Message) openai.ChatCompletionMessage {
	if len(msg.Parts) == 0 {
		return openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	var parts []openai.ChatMessagePart
	for _, part := range msg.Parts {
		if part.ImageB64 != "" {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: "data:image/jpeg;base64," + part.ImageB64,
				},
			})
			continue
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: part.Text,
		})
	}
	return openai.ChatCompletionMessage{
		Role:         string(msg.Role),
		MultiContent: parts,
	}
}

// Verify capability interfaces.
var (
	_ Provider               = (*OpenRouterProvider)(nil)
	_ VisionIntentClassifier = (*OpenRouterProvider)(nil)
	_ VisionAnalyzer         = (*OpenRouterProvider)(nil)
)
