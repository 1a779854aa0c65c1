package stories

import "sync"

// Toggle is the global gate over story appends. It starts enabled and is
// flipped only through Service.SetStoryEnabled.
type Toggle struct {
	mu      sync.RWMutex
	enabled bool
}

func NewToggle() *Toggle {
	return &Toggle{enabled: true}
}

func (t *Toggle) Enabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

func (t *Toggle) set(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}
