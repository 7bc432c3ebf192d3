package fieldscope

import (
	"sync"

	"github.com/agentstation/fieldscope/pkg/dataset"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// Hook function types for catalog events
type (
	// ReloadHook is called after a new engine is installed.
	ReloadHook func(old, new *lookup.Engine, origin dataset.Origin)

	// StandardChangedHook is called for each standard whose compliance
	// table differs between the old and new engine. The initial Load has
	// nothing to compare against and is not reported.
	StandardChangedHook func(standard string, before, after lookup.ComplianceCounts)
)

// Hooks provides event callback registration.
type Hooks interface {
	// OnReload registers a callback for engine swaps
	OnReload(ReloadHook)

	// OnStandardChanged registers a callback for changed compliance tables
	OnStandardChanged(StandardChangedHook)
}

// hooks manages event callbacks for catalog changes
type hooks struct {
	mu                sync.RWMutex
	onReload          []ReloadHook
	onStandardChanged []StandardChangedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnReload registers a callback for engine swaps.
func (c *client) OnReload(fn ReloadHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onReload = append(c.hooks.onReload, fn)
}

// OnStandardChanged registers a callback for changed compliance tables.
func (c *client) OnStandardChanged(fn StandardChangedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onStandardChanged = append(c.hooks.onStandardChanged, fn)
}

// triggerReload runs reload hooks, then compares compliance tables of every
// standard known to either engine. The comparison is skipped on the initial
// install.
func (h *hooks) triggerReload(old, new *lookup.Engine, origin dataset.Origin, initial bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, fn := range h.onReload {
		fn(old, new, origin)
	}
	if len(h.onStandardChanged) == 0 || initial {
		return
	}

	seen := make(map[string]bool)
	standards := append(old.Standards(), new.Standards()...)
	for _, name := range standards {
		if seen[name] {
			continue
		}
		seen[name] = true

		before := old.ComplianceTable(name)
		after := new.ComplianceTable(name)
		if sameRows(before.Rows, after.Rows) {
			continue
		}
		for _, fn := range h.onStandardChanged {
			fn(name, before.Counts(), after.Counts())
		}
	}
}

func sameRows(a, b []lookup.ComplianceRow) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
