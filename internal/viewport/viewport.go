// Package viewport supplies the usable screen area to the rest of the
// manager and shields it from unreliable backends.
package viewport

import (
	"log"
	"sync"

	"github.com/1broseidon/deskwm/internal/geometry"
)

// Provider reports the current usable viewport.
type Provider interface {
	Bounds() geometry.Rect
}

// Static is a fixed-bounds provider for headless runs and tests.
type Static struct {
	Rect geometry.Rect
}

func (s Static) Bounds() geometry.Rect { return s.Rect }

// DefaultBounds is used when nothing better is known.
var DefaultBounds = geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

// Guard wraps a provider and holds on to the last sane bounds it reported.
// Backends go degenerate during monitor hotplug: a zero or negative extent
// mid-reconfigure must not collapse every window, so the guard answers with
// the last known good value until the backend recovers.
type Guard struct {
	mu       sync.Mutex
	inner    Provider
	lastGood geometry.Rect
	warned   bool
}

// NewGuard wraps inner, seeding the fallback with fallback (or
// DefaultBounds when fallback is degenerate too).
func NewGuard(inner Provider, fallback geometry.Rect) *Guard {
	if !usable(fallback) {
		fallback = DefaultBounds
	}
	return &Guard{inner: inner, lastGood: fallback}
}

func (g *Guard) Bounds() geometry.Rect {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := g.inner.Bounds()
	if usable(b) {
		g.lastGood = b
		g.warned = false
		return b
	}
	if !g.warned {
		log.Printf("viewport: backend reported degenerate bounds %+v, using last known good %+v", b, g.lastGood)
		g.warned = true
	}
	return g.lastGood
}

func usable(r geometry.Rect) bool {
	return r.Width > 0 && r.Height > 0
}

// Insets reserves fixed margins at the screen edges, typically for panels
// the backend does not report.
type Insets struct {
	Top, Bottom, Left, Right int
}

// Inset shrinks an inner provider's bounds by fixed margins. When the
// margins would consume the whole viewport the inner bounds pass through
// unchanged rather than going degenerate.
type Inset struct {
	Inner  Provider
	Margin Insets
}

func (i Inset) Bounds() geometry.Rect {
	b := i.Inner.Bounds()
	r := geometry.Rect{
		X:      b.X + i.Margin.Left,
		Y:      b.Y + i.Margin.Top,
		Width:  b.Width - i.Margin.Left - i.Margin.Right,
		Height: b.Height - i.Margin.Top - i.Margin.Bottom,
	}
	if !usable(r) {
		return b
	}
	return r
}
