package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Tracer provides emission tracing for debugging generated code.
// A nil *Tracer is valid and traces nothing.
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// New creates a tracer. A nil writer means stderr.
func New(enabled bool, filters []string, writer io.Writer) *Tracer {
	if writer == nil {
		writer = os.Stderr
	}
	return &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// IsEnabled returns whether tracing is enabled
func (t *Tracer) IsEnabled() bool {
	return t != nil && t.enabled
}

// matchesFilter checks if a block kind matches any of the filter patterns
func (t *Tracer) matchesFilter(kind string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, kind); matched {
			return true
		}
	}
	return false
}

// Emit logs a block being dispatched to its rule
func (t *Tracer) Emit(kind, path, level string) {
	if !t.IsEnabled() || !t.matchesFilter(kind) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] EMIT %s at %s level=%s\n", kind, path, level)
}

// Helper logs the first registration of a helper routine
func (t *Tracer) Helper(key, name string) {
	if !t.IsEnabled() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] HELPER %s => %s\n", key, name)
}

// Access logs an access plan decision
func (t *Tracer) Access(mode, anchor, op string) {
	if !t.IsEnabled() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] PLAN (%s, %s) -> %s\n", mode, anchor, op)
}

// Program logs the end of a compilation
func (t *Tracer) Program(blocks, helpers int) {
	if !t.IsEnabled() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] DONE blocks=%d helpers=%d\n", blocks, helpers)
}
