// Package daemon wires the window manager core to its runtime services:
// viewport tracking, IPC, state persistence, and drift reconciliation.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/gesture"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/viewport"
	"github.com/1broseidon/deskwm/internal/wm"
	"github.com/1broseidon/deskwm/internal/x11"
)

// Daemon owns the long-running manager state.
type Daemon struct {
	cfg       *config.Config
	store     *wm.Store
	gestures  *gesture.Controller
	ipcServer *ipc.Server
	persister *Persister
	xprov     *x11.Provider
	logger    *slog.Logger

	reloadChan chan struct{}
}

// New builds a daemon from configuration. When an X server is reachable the
// viewport tracks its work area; otherwise the configured fallback is used.
// Previously persisted state is restored when a state file exists.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fallback := geometry.Rect{
		Width:  cfg.FallbackViewport.Width,
		Height: cfg.FallbackViewport.Height,
	}

	var xprov *x11.Provider
	var inner viewport.Provider = viewport.Static{Rect: fallback}
	if os.Getenv("DISPLAY") != "" {
		conn, err := x11.NewConnection()
		if err != nil {
			logger.Warn("X11 unavailable, using fallback viewport", "error", err)
		} else if prov, err := x11.NewProvider(conn); err != nil {
			logger.Warn("work area query failed, using fallback viewport", "error", err)
			conn.Close()
		} else {
			xprov = prov
			inner = prov
		}
	}
	guarded := viewport.NewGuard(inner, fallback)
	padded := viewport.Inset{Inner: guarded, Margin: viewport.Insets{
		Top:    cfg.ScreenPadding.Top,
		Bottom: cfg.ScreenPadding.Bottom,
		Left:   cfg.ScreenPadding.Left,
		Right:  cfg.ScreenPadding.Right,
	}}

	opts := wm.Options{
		Viewport:      padded,
		DefaultSize:   geometry.Size{Width: cfg.DefaultWindowSize.Width, Height: cfg.DefaultWindowSize.Height},
		MinWindowSize: geometry.Size{Width: cfg.MinWindowSize.Width, Height: cfg.MinWindowSize.Height},
		CascadeBase:   geometry.Point{X: cfg.Placement.CascadeBase.X, Y: cfg.Placement.CascadeBase.Y},
		CascadeStep:   geometry.Point{X: cfg.Placement.CascadeStep.X, Y: cfg.Placement.CascadeStep.Y},
		MaxWorkspaces: cfg.Limits.MaxWorkspaces,
		MaxWindows:    cfg.Limits.MaxWindows,
		DefaultWSName: cfg.DefaultWorkspace,
	}

	store := restoreOrNew(cfg, opts, logger)
	gestures := gesture.New(store, gesture.Options{
		SnapThreshold: cfg.Snapping.Threshold,
		SnapDistance:  cfg.Snapping.Distance,
	})

	reloadChan := make(chan struct{}, 1)
	ipcServer, err := ipc.NewServer(store, reloadChan)
	if err != nil {
		return nil, fmt.Errorf("failed to create IPC server: %w", err)
	}

	d := &Daemon{
		cfg:        cfg,
		store:      store,
		gestures:   gestures,
		ipcServer:  ipcServer,
		xprov:      xprov,
		logger:     logger,
		reloadChan: reloadChan,
	}
	if cfg.StateFile != "" {
		d.persister = NewPersister(store, cfg.StateFile, logger)
	}
	return d, nil
}

func restoreOrNew(cfg *config.Config, opts wm.Options, logger *slog.Logger) *wm.Store {
	if cfg.StateFile == "" {
		return wm.NewStore(opts)
	}
	store, err := wm.LoadSnapshot(cfg.StateFile, opts)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("state restore failed, starting fresh", "file", cfg.StateFile, "error", err)
		}
		return wm.NewStore(opts)
	}
	logger.Info("state restored", "file", cfg.StateFile)
	return store
}

// Store exposes the window store, mainly for embedding the daemon in other
// frontends.
func (d *Daemon) Store() *wm.Store { return d.store }

// Gestures exposes the interaction controller.
func (d *Daemon) Gestures() *gesture.Controller { return d.gestures }

// Run starts the daemon and blocks until SIGINT/SIGTERM or ctx cancellation.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := d.ipcServer.Start(); err != nil {
		return err
	}
	defer d.ipcServer.Stop()

	if d.persister != nil {
		go d.persister.Run(ctx)
	}

	reconciler := NewReconciler(ReconcilerConfig{Logger: d.logger}, d.store)
	go reconciler.Run(ctx)

	if d.xprov != nil {
		go d.xprov.Watch(ctx, 0, func(geometry.Rect) {
			d.store.ReclampAll()
		})
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	log.Printf("deskwm daemon running")

	for {
		select {
		case <-ctx.Done():
			d.shutdown()
			return nil
		case sig := <-sigChan:
			d.logger.Info("shutting down", "signal", sig.String())
			d.shutdown()
			return nil
		case <-d.reloadChan:
			d.reloadConfig()
		}
	}
}

// reloadConfig re-reads the config file and applies what can change at
// runtime. Structural options (default workspace, state file) need a
// restart and are left untouched.
func (d *Daemon) reloadConfig() {
	newCfg, err := config.Load()
	if err != nil {
		d.logger.Error("config reload failed", "error", err)
		return
	}
	d.cfg = newCfg
	d.logger.Info("config reloaded")
}

func (d *Daemon) shutdown() {
	if d.persister != nil {
		d.persister.SaveNow()
	}
}

// ReconcileInterval is how often the reconciler re-checks viewport fit.
const ReconcileInterval = 5 * time.Second
