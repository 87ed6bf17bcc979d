package daemon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/deskwm/internal/wm"
)

// saveDebounce batches bursts of changes (a drag emits one event per pointer
// move) into a single disk write.
const saveDebounce = 2 * time.Second

// Persister writes the store state to disk after changes, debounced, and
// once more on shutdown.
type Persister struct {
	store  *wm.Store
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	dirty bool
}

// NewPersister subscribes to the store and tracks whether unsaved changes
// exist. Run must be started for periodic flushing.
func NewPersister(store *wm.Store, path string, logger *slog.Logger) *Persister {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Persister{store: store, path: path, logger: logger}
	store.Subscribe(func(wm.Event) {
		p.mu.Lock()
		p.dirty = true
		p.mu.Unlock()
	})
	return p
}

// Run flushes dirty state every debounce interval until ctx is cancelled.
func (p *Persister) Run(ctx context.Context) {
	ticker := time.NewTicker(saveDebounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.SaveNow()
			return
		case <-ticker.C:
			p.flushIfDirty()
		}
	}
}

func (p *Persister) flushIfDirty() {
	p.mu.Lock()
	dirty := p.dirty
	p.dirty = false
	p.mu.Unlock()

	if !dirty {
		return
	}
	if err := p.store.SaveSnapshot(p.path); err != nil {
		p.logger.Error("state save failed", "file", p.path, "error", err)
		p.mu.Lock()
		p.dirty = true
		p.mu.Unlock()
	}
}

// SaveNow writes the state unconditionally, used at shutdown.
func (p *Persister) SaveNow() {
	if err := p.store.SaveSnapshot(p.path); err != nil {
		p.logger.Error("state save failed", "file", p.path, "error", err)
		return
	}
	p.mu.Lock()
	p.dirty = false
	p.mu.Unlock()
	p.logger.Info("state saved", "file", p.path)
}
