package eramap

import (
	"sync"

	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/reconciler"
)

// Hook function types for reconciliation events
type (
	// EventHook is called for each variant or fallback resolution
	EventHook func(event reconciler.Event)

	// MissingHook is called for each authoritative entry left unresolved
	MissingHook func(entry eras.Entry)
)

// hooks manages reconciliation callbacks
type hooks struct {
	mu        sync.RWMutex
	onEvent   []EventHook
	onMissing []MissingHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnEvent registers a callback for variant and fallback resolutions
func (p *pipeline) OnEvent(fn EventHook) {
	p.hooks.mu.Lock()
	defer p.hooks.mu.Unlock()
	p.hooks.onEvent = append(p.hooks.onEvent, fn)
}

// OnMissing registers a callback for unresolved entries
func (p *pipeline) OnMissing(fn MissingHook) {
	p.hooks.mu.Lock()
	defer p.hooks.mu.Unlock()
	p.hooks.onMissing = append(p.hooks.onMissing, fn)
}

// trigger fires hooks for a reconciliation result, in entry order
func (h *hooks) trigger(result *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, event := range result.Events {
		for _, hook := range h.onEvent {
			hook(event)
		}
	}
	for _, entry := range result.Missing {
		for _, hook := range h.onMissing {
			hook(entry)
		}
	}
}
