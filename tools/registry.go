package tools

import (
	"fmt"
	"log/slog"
)

// Registry holds the tools available to the orchestrator, keyed by
// Kind. Registration happens once at construction; lookups after that
// are read-only, so no lock is needed.
type Registry struct {
	tools map[Kind]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[Kind]Tool)}
}

// Register adds a tool. Returns an error if the kind is already taken.
func (r *Registry) Register(tool Tool) error {
	kind := tool.Kind()
	if _, exists := r.tools[kind]; exists {
		return fmt.Errorf("tool %q already registered", kind)
	}
	r.tools[kind] = tool
	slog.Info("tool registered", "tool", kind.String())
	return nil
}

// Get returns the tool for a kind, if registered.
func (r *Registry) Get(kind Kind) (Tool, bool) {
	tool, ok := r.tools[kind]
	return tool, ok
}

// Kinds returns the registered kinds in enum order.
func (r *Registry) Kinds() []Kind {
	var kinds []Kind
	for k := KindWeather; k <= KindCamera; k++ {
		if _, ok := r.tools[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
