// Package registry holds the runner handlers available to workflows.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
)

// Module is the interface built-in runner packages implement to register
// themselves.
type Module interface {
	Register(r *Registry)
}

// Registry maps runner type names to their registered handlers for a
// single application instance.
type Registry struct {
	handlers map[string]*Handler
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]*Handler)}
}

// Register adds a handler for a runner type. Registering the same type
// twice panics.
func (r *Registry) Register(runnerType string, h *Handler) {
	if _, exists := r.handlers[runnerType]; exists {
		panic(fmt.Sprintf("runner type %q already registered", runnerType))
	}
	slog.Debug("Registering runner handler.", "type", runnerType)
	r.handlers[runnerType] = h
}

// Lookup returns the handler for a runner type.
func (r *Registry) Lookup(runnerType string) (*Handler, bool) {
	h, ok := r.handlers[runnerType]
	return h, ok
}

// Types returns the registered runner type names, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
