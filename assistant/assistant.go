// Conversation orchestration core. One Turn runs the full cycle:
// route the utterance, execute at most one tool, fold its output into
// the user turn, generate against the stored history, persist the
// reply. Turns are strictly sequential; nothing here is safe for
// concurrent Turn calls and nothing needs to be.

package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/saraans/ava/llm"
	"github.com/saraans/ava/router"
	"github.com/saraans/ava/store"
	"github.com/saraans/ava/tools"
)

// englishSteering is appended to every stored user turn, in addition to
// the provider-level protocol clause. Defense in depth: either layer
// alone has been observed to slip.
const englishSteering = " (SYSTEM INSTRUCTION: You MUST ignore the user's language and respond ONLY in strict English. Do not translate the user's query back to them. Just answer in English.)"

// callTimeout bounds every provider and tool call inside a turn.
// Exceeding it is a transport failure, not a hang.
const callTimeout = 45 * time.Second

// Assistant composes the router, tools, store and provider into the
// per-turn state machine.
type Assistant struct {
	provider     llm.Provider
	router       *router.Router
	registry     *tools.Registry
	conv         store.Conversation
	systemPrompt string
}

// New creates an assistant. systemPrompt is the assembled behavior
// document; see BuildSystemPrompt.
func New(provider llm.Provider, r *router.Router, registry *tools.Registry, conv store.Conversation, systemPrompt string) *Assistant {
	return &Assistant{
		provider:     provider,
		router:       r,
		registry:     registry,
		conv:         conv,
		systemPrompt: systemPrompt,
	}
}

// TurnResult is everything a caller needs to present one completed turn.
type TurnResult struct {
	Reply string
	Model string
	// Usage is nil when the provider cannot report it; never assume
	// presence.
	Usage *llm.TokenUsage
	// TokensRemaining is the display-only context budget left after
	// this turn. Valid only when Usage is non-nil. It never truncates
	// history.
	TokensRemaining int
	Tool            tools.Kind
	ToolOutput      string
}

// ShortModel returns the model identifier without its vendor prefix,
// for compact display.
func (r TurnResult) ShortModel() string {
	if i := strings.LastIndex(r.Model, "/"); i >= 0 {
		return r.Model[i+1:]
	}
	return r.Model
}

// Turn processes one utterance end to end and returns the reply with
// usage metadata. It never returns an error: every failure mode inside
// the turn resolves to presentable text.
func (a *Assistant) Turn(ctx context.Context, utterance string) TurnResult {
	// Routing
	kind := a.router.Route(ctx, utterance)

	// ToolExecuting
	annotated := utterance
	toolOutput := ""
	if kind != tools.KindNone {
		toolOutput = a.runTool(ctx, kind, utterance)
		if toolOutput != "" {
			annotated += " [System Data: " + toolOutput + "]"
		}
	}

	// Contextualizing
	userMsg := llm.UserMessage(annotated + englishSteering)
	if err := a.conv.Append(userMsg); err != nil {
		slog.Error("assistant: failed to persist user turn", "err", err)
	}

	// Generating
	genCtx, cancel := context.WithTimeout(ctx, callTimeout)
	reply := a.provider.Generate(genCtx, a.conv.History(), a.systemPrompt)
	cancel()

	// Persisting
	if err := a.conv.Append(llm.AssistantMessage(reply.Text)); err != nil {
		slog.Error("assistant: failed to persist reply", "err", err)
	}

	result := TurnResult{
		Reply:      reply.Text,
		Model:      reply.Model,
		Usage:      reply.Usage,
		Tool:       kind,
		ToolOutput: toolOutput,
	}
	if reply.Usage != nil {
		result.TokensRemaining = llm.ContextLimit(reply.Model) - int(reply.Usage.TotalTokens)
	}
	return result
}

// runTool executes the routed tool, extracting its parameters first.
// Failures are converted to a readable sentence that still reaches the
// model as system data; a broken tool never aborts the turn.
func (a *Assistant) runTool(ctx context.Context, kind tools.Kind, utterance string) string {
	tool, ok := a.registry.Get(kind)
	if !ok {
		slog.Warn("assistant: routed tool not registered", "tool", kind.String())
		return ""
	}

	inv := tools.Invocation{Utterance: utterance}
	switch kind {
	case tools.KindWeather:
		inv.City = llm.ExtractCity(ctx, a.provider, utterance)
	case tools.KindNews:
		inv.Topic = llm.ExtractNewsTopic(ctx, a.provider, utterance)
	}

	toolCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	slog.Info("assistant: running tool", "tool", kind.String())
	out, err := tool.Execute(toolCtx, inv)
	if err != nil {
		slog.Warn("assistant: tool failed", "tool", kind.String(), "err", err)
		return fmt.Sprintf("I couldn't get the %s information: %v.", kind, err)
	}
	return out
}

// Clear wipes the durable conversation.
func (a *Assistant) Clear() error {
	return a.conv.Clear()
}

// History exposes the stored conversation for display.
func (a *Assistant) History() []llm.Message {
	return a.conv.History()
}
