package viewport

import (
	"testing"

	"github.com/1broseidon/deskwm/internal/geometry"
)

type flaky struct {
	rect geometry.Rect
}

func (f *flaky) Bounds() geometry.Rect { return f.rect }

func TestGuard_PassesThroughGoodBounds(t *testing.T) {
	inner := &flaky{rect: geometry.Rect{Width: 1280, Height: 720}}
	g := NewGuard(inner, geometry.Rect{Width: 800, Height: 600})

	if got := g.Bounds(); got != inner.rect {
		t.Fatalf("expected %+v, got %+v", inner.rect, got)
	}
}

func TestGuard_HoldsLastGoodDuringDegenerateReadings(t *testing.T) {
	inner := &flaky{rect: geometry.Rect{Width: 1280, Height: 720}}
	g := NewGuard(inner, geometry.Rect{Width: 800, Height: 600})

	good := g.Bounds()

	// Monitor hotplug: the backend briefly reports nothing usable.
	inner.rect = geometry.Rect{}
	if got := g.Bounds(); got != good {
		t.Fatalf("expected last good %+v, got %+v", good, got)
	}
	inner.rect = geometry.Rect{Width: -5, Height: 720}
	if got := g.Bounds(); got != good {
		t.Fatalf("expected last good %+v, got %+v", good, got)
	}

	// Recovery picks up the new geometry immediately.
	inner.rect = geometry.Rect{Width: 2560, Height: 1440}
	if got := g.Bounds(); got != inner.rect {
		t.Fatalf("expected recovery to %+v, got %+v", inner.rect, got)
	}
}

func TestGuard_DegenerateFallbackReplaced(t *testing.T) {
	inner := &flaky{}
	g := NewGuard(inner, geometry.Rect{})

	if got := g.Bounds(); got != DefaultBounds {
		t.Fatalf("expected %+v, got %+v", DefaultBounds, got)
	}
}

func TestInset_ShrinksBounds(t *testing.T) {
	inner := &flaky{rect: geometry.Rect{Width: 1920, Height: 1080}}
	p := Inset{Inner: inner, Margin: Insets{Top: 30, Bottom: 10, Left: 5, Right: 5}}

	// 1920-5-5 = 1910 wide, 1080-30-10 = 1040 tall, origin shifted by left/top.
	want := geometry.Rect{X: 5, Y: 30, Width: 1910, Height: 1040}
	if got := p.Bounds(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestInset_OversizedMarginsPassThrough(t *testing.T) {
	inner := &flaky{rect: geometry.Rect{Width: 100, Height: 100}}
	p := Inset{Inner: inner, Margin: Insets{Left: 60, Right: 60}}

	if got := p.Bounds(); got != inner.rect {
		t.Fatalf("expected raw inner bounds %+v, got %+v", inner.rect, got)
	}
}
