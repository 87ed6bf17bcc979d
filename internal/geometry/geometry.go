package geometry

// Point is a position in screen coordinates. Coordinates may go negative
// while a drag is in flight; committed positions are clamped.
type Point struct {
	X int
	Y int
}

// Size is a window extent in pixels. Width and height are always positive
// once validated.
type Size struct {
	Width  int
	Height int
}

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Pos returns the rect's origin as a Point.
func (r Rect) Pos() Point {
	return Point{X: r.X, Y: r.Y}
}

// Dim returns the rect's extent as a Size.
func (r Rect) Dim() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains reports whether the point (x, y) lies within the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Clamp moves, and if necessary shrinks, rect so it lies fully within
// bounds. A rect larger than bounds is pinned to the top-left of bounds and
// keeps its size — oversized windows overflow rather than being rejected, so
// the user can still reach them. Clamping an already-clamped rect is a no-op.
func Clamp(rect, bounds Rect) Rect {
	out := rect

	if out.X+out.Width > bounds.X+bounds.Width {
		out.X = bounds.X + bounds.Width - out.Width
	}
	if out.Y+out.Height > bounds.Y+bounds.Height {
		out.Y = bounds.Y + bounds.Height - out.Height
	}
	if out.X < bounds.X {
		out.X = bounds.X
	}
	if out.Y < bounds.Y {
		out.Y = bounds.Y
	}

	return out
}

// CascadePosition returns the default placement for a new window: one
// cascade step down-right from the previous window, so each default-placed
// window is visibly offset from the one before it. The cascade restarts at
// the base offset when the stepped window would no longer fit inside bounds.
func CascadePosition(prev Point, step Point, base Point, size Size, bounds Rect) Point {
	pos := Point{X: prev.X + step.X, Y: prev.Y + step.Y}

	if pos.X+size.Width > bounds.X+bounds.Width || pos.Y+size.Height > bounds.Y+bounds.Height {
		pos = Point{X: bounds.X + base.X, Y: bounds.Y + base.Y}
	}

	return pos
}

// CenterPosition returns the position that centers a window of the given
// size within bounds, floored to integer pixels.
func CenterPosition(size Size, bounds Rect) Point {
	return Point{
		X: bounds.X + (bounds.Width-size.Width)/2,
		Y: bounds.Y + (bounds.Height-size.Height)/2,
	}
}

// Snap forces any window edge that is within threshold pixels of a bounds
// edge to sit exactly snapDistance pixels from that edge. It is evaluated on
// every pointer move during a drag, not only on commit, so the snap is
// visible live.
func Snap(pos Point, size Size, bounds Rect, threshold, snapDistance int) Point {
	out := pos

	if abs(out.X-bounds.X) <= threshold {
		out.X = bounds.X + snapDistance
	}
	if abs((bounds.X+bounds.Width)-(out.X+size.Width)) <= threshold {
		out.X = bounds.X + bounds.Width - snapDistance - size.Width
	}
	if abs(out.Y-bounds.Y) <= threshold {
		out.Y = bounds.Y + snapDistance
	}
	if abs((bounds.Y+bounds.Height)-(out.Y+size.Height)) <= threshold {
		out.Y = bounds.Y + bounds.Height - snapDistance - size.Height
	}

	return out
}

// ClampSize constrains size to [min, max] per axis. A zero max axis means
// unbounded. boundsMax additionally caps each axis at the viewport extent
// unless min already exceeds it — a window whose minimum is larger than the
// screen keeps its minimum and overflows.
func ClampSize(size, min, max Size, boundsMax Size) Size {
	out := size

	if out.Width < min.Width {
		out.Width = min.Width
	}
	if out.Height < min.Height {
		out.Height = min.Height
	}
	if max.Width > 0 && out.Width > max.Width {
		out.Width = max.Width
	}
	if max.Height > 0 && out.Height > max.Height {
		out.Height = max.Height
	}
	if boundsMax.Width > 0 && out.Width > boundsMax.Width && min.Width <= boundsMax.Width {
		out.Width = boundsMax.Width
	}
	if boundsMax.Height > 0 && out.Height > boundsMax.Height && min.Height <= boundsMax.Height {
		out.Height = boundsMax.Height
	}

	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
