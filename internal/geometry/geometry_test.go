package geometry

import "testing"

func TestClamp_MovesRectInsideBounds(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	r := Clamp(Rect{X: 1900, Y: -50, Width: 400, Height: 300}, bounds)
	// Right edge pulled back to 1920, top pulled down to 0.
	if r.X != 1520 || r.Y != 0 {
		t.Fatalf("expected (1520,0), got (%d,%d)", r.X, r.Y)
	}
	if r.Width != 400 || r.Height != 300 {
		t.Fatalf("clamp must not change size, got %dx%d", r.Width, r.Height)
	}
}

func TestClamp_Idempotent(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 800, Height: 600}
	cases := []Rect{
		{X: -100, Y: -100, Width: 300, Height: 200},
		{X: 700, Y: 550, Width: 300, Height: 200},
		{X: 100, Y: 100, Width: 300, Height: 200},
	}

	for _, c := range cases {
		once := Clamp(c, bounds)
		twice := Clamp(once, bounds)
		if once != twice {
			t.Fatalf("clamp not idempotent for %+v: %+v vs %+v", c, once, twice)
		}
	}
}

func TestClamp_OversizedPinsTopLeft(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 640, Height: 480}

	r := Clamp(Rect{X: 200, Y: 200, Width: 1000, Height: 800}, bounds)
	if r.X != 0 || r.Y != 0 {
		t.Fatalf("oversized rect should pin to origin, got (%d,%d)", r.X, r.Y)
	}
	if r.Width != 1000 || r.Height != 800 {
		t.Fatalf("oversized rect must keep its size, got %dx%d", r.Width, r.Height)
	}
}

func TestCascadePosition_StepsFromPrevious(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	base := Point{X: 40, Y: 40}
	step := Point{X: 30, Y: 30}
	size := Size{Width: 400, Height: 300}

	p := CascadePosition(Point{X: 640, Y: 300}, step, base, size, bounds)
	// One step down-right from the previous window.
	if p.X != 670 || p.Y != 330 {
		t.Fatalf("expected (670,330), got (%d,%d)", p.X, p.Y)
	}

	// The chain continues from wherever the previous window sits.
	p2 := CascadePosition(p, step, base, size, bounds)
	if p2.X != 700 || p2.Y != 360 {
		t.Fatalf("expected (700,360), got (%d,%d)", p2.X, p2.Y)
	}
}

func TestCascadePosition_WrapsWhenOffscreen(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 500, Height: 400}
	base := Point{X: 40, Y: 40}
	step := Point{X: 30, Y: 30}
	size := Size{Width: 300, Height: 200}

	// 190+30+300 > 500, so the cascade restarts at base.
	p := CascadePosition(Point{X: 190, Y: 100}, step, base, size, bounds)
	if p.X != 40 || p.Y != 40 {
		t.Fatalf("expected wrap to (40,40), got (%d,%d)", p.X, p.Y)
	}
}

func TestCenterPosition(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	p := CenterPosition(Size{Width: 800, Height: 601}, bounds)
	// (1920-800)/2 = 560, (1080-601)/2 = 239 (floored).
	if p.X != 560 || p.Y != 239 {
		t.Fatalf("expected (560,239), got (%d,%d)", p.X, p.Y)
	}
}

func TestSnap_LeftEdgeWithinThreshold(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	size := Size{Width: 400, Height: 300}

	p := Snap(Point{X: 15, Y: 500}, size, bounds, 20, 20)
	if p.X != 20 {
		t.Fatalf("expected x snapped to 20, got %d", p.X)
	}
	if p.Y != 500 {
		t.Fatalf("y should be untouched, got %d", p.Y)
	}
}

func TestSnap_RightAndBottomEdges(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	size := Size{Width: 200, Height: 100}

	// Right edge at 990, within 20 of 1000 → x = 1000-20-200 = 780.
	// Bottom edge at 795, within 20 of 800 → y = 800-20-100 = 680.
	p := Snap(Point{X: 790, Y: 695}, size, bounds, 20, 20)
	if p.X != 780 || p.Y != 680 {
		t.Fatalf("expected (780,680), got (%d,%d)", p.X, p.Y)
	}
}

func TestSnap_OutsideThresholdUnchanged(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	size := Size{Width: 400, Height: 300}

	p := Snap(Point{X: 300, Y: 400}, size, bounds, 20, 20)
	if p.X != 300 || p.Y != 400 {
		t.Fatalf("expected (300,400), got (%d,%d)", p.X, p.Y)
	}
}

func TestClampSize(t *testing.T) {
	min := Size{Width: 100, Height: 80}
	max := Size{Width: 1600, Height: 0} // height unbounded
	viewport := Size{Width: 1920, Height: 1080}

	s := ClampSize(Size{Width: 50, Height: 2000}, min, max, viewport)
	if s.Width != 100 {
		t.Fatalf("width should clamp up to min 100, got %d", s.Width)
	}
	if s.Height != 1080 {
		t.Fatalf("height should cap at viewport 1080, got %d", s.Height)
	}

	s = ClampSize(Size{Width: 1800, Height: 500}, min, max, viewport)
	if s.Width != 1600 {
		t.Fatalf("width should cap at max 1600, got %d", s.Width)
	}
}

func TestClampSize_MinLargerThanViewportOverflows(t *testing.T) {
	min := Size{Width: 800, Height: 600}
	viewport := Size{Width: 640, Height: 480}

	s := ClampSize(Size{Width: 300, Height: 300}, min, Size{}, viewport)
	// Minimum wins over the viewport cap; the window overflows.
	if s.Width != 800 || s.Height != 600 {
		t.Fatalf("expected 800x600, got %dx%d", s.Width, s.Height)
	}
}

func TestRegionRect_Quarters(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1001, Height: 801}

	tl := RegionRect(RegionTopLeft, bounds)
	if tl != (Rect{X: 0, Y: 0, Width: 500, Height: 400}) {
		t.Fatalf("top-left: %+v", tl)
	}

	br := RegionRect(RegionBottomRight, bounds)
	// Odd pixel lands on the right/bottom piece: 501x401 at (500,400).
	if br != (Rect{X: 500, Y: 400, Width: 501, Height: 401}) {
		t.Fatalf("bottom-right: %+v", br)
	}
}

func TestRegionRect_HalvesCoverBounds(t *testing.T) {
	bounds := Rect{X: 100, Y: 50, Width: 801, Height: 601}

	left := RegionRect(RegionLeftHalf, bounds)
	right := RegionRect(RegionRightHalf, bounds)
	if left.Width+right.Width != bounds.Width {
		t.Fatalf("halves must cover the full width: %d + %d != %d", left.Width, right.Width, bounds.Width)
	}
	if right.X != left.X+left.Width {
		t.Fatalf("halves must abut: right.X=%d, expected %d", right.X, left.X+left.Width)
	}
}
