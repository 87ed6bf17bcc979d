package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/wm"
)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically checks for viewport drift and corrects it: when
// the work area changes (monitor hotplug, panel resize) every window is
// re-clamped so none is stranded off-screen.
type Reconciler struct {
	interval time.Duration
	store    *wm.Store
	logger   *slog.Logger

	lastBounds geometry.Rect
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, store *wm.Store) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = ReconcileInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		interval:   interval,
		store:      store,
		logger:     logger,
		lastBounds: store.ViewportBounds(),
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	bounds := r.store.ViewportBounds()
	if bounds == r.lastBounds {
		return
	}

	r.logger.Info("viewport changed, re-clamping windows",
		"old", r.lastBounds, "new", bounds)
	r.lastBounds = bounds
	r.store.ReclampAll()
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}
