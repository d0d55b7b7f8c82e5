// Package tools provides the capability handlers that run ahead of
// generation and inject factual or system data into the prompt.
//
// Information Hiding:
// - Each tool hides its external I/O and error handling
// - Registry lookup is by closed Kind, never by free-form string
package tools

import "context"

// Kind is the closed set of tools the router can select. Dispatching
// on Kind instead of a name string makes "unknown tool" unrepresentable.
type Kind int

const (
	KindNone Kind = iota
	KindWeather
	KindNews
	KindSystemInfo
	KindScreen
	KindCamera
)

// String returns the tool name for logging and display.
func (k Kind) String() string {
	switch k {
	case KindWeather:
		return "weather"
	case KindNews:
		return "news"
	case KindSystemInfo:
		return "system_info"
	case KindScreen:
		return "screen"
	case KindCamera:
		return "camera"
	default:
		return "none"
	}
}

// Invocation carries the parameters a tool may need. The orchestrator
// fills it from the raw utterance and provider extraction calls; no
// tool may require anything the orchestrator cannot derive that way.
type Invocation struct {
	// Utterance is the raw user text, used as a hint or analysis prompt.
	Utterance string
	// City is the extracted city for the weather tool. Empty or "None"
	// means the tool's configured default.
	City string
	// Topic is the extracted news topic. Empty or "None" means top
	// headlines rather than a search.
	Topic string
}

// Tool is a stateless-per-call capability handler. An empty result with
// a nil error means the tool ran but produced nothing usable; no
// system-data annotation is added in that case. Errors are caught at
// the boundary and converted to readable text, never propagated.
type Tool interface {
	Kind() Kind
	Execute(ctx context.Context, inv Invocation) (string, error)
}
