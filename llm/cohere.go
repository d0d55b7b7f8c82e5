// Cohere Provider implementation speaking the v1 chat API directly.
//
// Information Hiding:
// - Request/response format for the Cohere chat endpoint
// - Conversation split into latest message + chat_history with
//   Cohere-specific role labels
// - Credential pool failover with sticky affinity

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const cohereBaseURL = "https://api.cohere.com/v1/chat"

// CohereProvider implements the Provider interface for Cohere.
type CohereProvider struct {
	pool        *KeyPool
	baseURL     string
	model       string
	temperature float32
	httpClient  *http.Client
}

// NewCohereProvider creates a Cohere provider over a pool of API keys.
func NewCohereProvider(keys []string, model string, temperature float32) *CohereProvider {
	return &CohereProvider{
		pool:        NewKeyPool(keys),
		baseURL:     cohereBaseURL,
		model:       model,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint (primarily for tests).
func (p *CohereProvider) WithBaseURL(url string) *CohereProvider {
	p.baseURL = url
	return p
}

// Name returns the provider name.
func (p *CohereProvider) Name() string {
	return "cohere"
}

// Model returns the current model.
func (p *CohereProvider) Model() string {
	return p.model
}

type cohereHistoryEntry struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type cohereResponse struct {
	Text string `json:"text"`
	Meta struct {
		BilledUnits struct {
			InputTokens  uint32 `json:"input_tokens"`
			OutputTokens uint32 `json:"output_tokens"`
		} `json:"billed_units"`
	} `json:"meta"`
}

// Generate sends a chat request, failing over across the credential
// pool. Cohere wants the most recent turn as a distinct message field
// with older turns folded into chat_history under USER/CHATBOT labels.
func (p *CohereProvider) Generate(ctx context.Context, history []Message, systemPrompt string) Reply {
	if p.pool.Empty() {
		return Reply{Text: missingKeyReply}
	}

	latest := "Hello"
	var chatHistory []cohereHistoryEntry
	if len(history) > 0 {
		latest = history[len(history)-1].Text()
		for _, msg := range history[:len(history)-1] {
			role := "CHATBOT"
			if msg.Role == RoleUser {
				role = "USER"
			}
			chatHistory = append(chatHistory, cohereHistoryEntry{Role: role, Message: msg.Text()})
		}
	}

	payload, err := json.Marshal(map[string]any{
		"model":        p.model,
		"message":      latest,
		"chat_history": chatHistory,
		"preamble":     englishOnlyClause + systemPrompt,
		"temperature":  p.temperature,
	})
	if err != nil {
		slog.Error("cohere: marshal request", "err", err)
		return Reply{Text: emptyReply}
	}

	var attemptErrs []string
	for attempt, i := range p.pool.order() {
		reply, err := p.call(ctx, p.pool.Key(i), payload)
		if err != nil {
			slog.Warn("cohere: attempt failed", "attempt", attempt+1, "err", err)
			attemptErrs = append(attemptErrs, fmt.Sprintf("attempt %d: %v", attempt+1, err))
			continue
		}
		p.pool.markGood(i)
		return reply
	}

	return Reply{Text: "I apologize, but I encountered an error: " + strings.Join(attemptErrs, "; ")}
}

func (p *CohereProvider) call(ctx context.Context, key string, payload []byte) (Reply, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(payload))
	if err != nil {
		return Reply{}, err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Reply{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Reply{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	var parsed cohereResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		// A 200 with an unreadable body is a malformed response, not a
		// credential problem; do not burn further pool attempts on it.
		slog.Warn("cohere: malformed response", "err", err)
		return Reply{Text: emptyReply}, nil
	}

	input := parsed.Meta.BilledUnits.InputTokens
	output := parsed.Meta.BilledUnits.OutputTokens
	return Reply{
		Text: parsed.Text,
		Usage: &TokenUsage{
			PromptTokens:     input,
			CompletionTokens: output,
			TotalTokens:      input + output,
		},
		Model: p.model,
	}, nil
}

// Verify CohereProvider implements Provider.
var _ Provider = (*CohereProvider)(nil)
