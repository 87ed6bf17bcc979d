package geometry

// SnapRegion identifies a preset half or quarter of the viewport.
type SnapRegion string

const (
	RegionLeftHalf    SnapRegion = "left-half"
	RegionRightHalf   SnapRegion = "right-half"
	RegionTopHalf     SnapRegion = "top-half"
	RegionBottomHalf  SnapRegion = "bottom-half"
	RegionTopLeft     SnapRegion = "top-left"
	RegionTopRight    SnapRegion = "top-right"
	RegionBottomLeft  SnapRegion = "bottom-left"
	RegionBottomRight SnapRegion = "bottom-right"
	RegionFull        SnapRegion = "full"
)

// ValidRegion reports whether r names a known snap region.
func ValidRegion(r SnapRegion) bool {
	switch r {
	case RegionLeftHalf, RegionRightHalf, RegionTopHalf, RegionBottomHalf,
		RegionTopLeft, RegionTopRight, RegionBottomLeft, RegionBottomRight,
		RegionFull:
		return true
	}
	return false
}

// RegionRect returns the geometry for a snap region within bounds. Halves
// split on one axis, quarters on both; integer division leaves any odd pixel
// on the right/bottom piece.
func RegionRect(region SnapRegion, bounds Rect) Rect {
	halfW := bounds.Width / 2
	halfH := bounds.Height / 2

	switch region {
	case RegionLeftHalf:
		return Rect{X: bounds.X, Y: bounds.Y, Width: halfW, Height: bounds.Height}
	case RegionRightHalf:
		return Rect{X: bounds.X + halfW, Y: bounds.Y, Width: bounds.Width - halfW, Height: bounds.Height}
	case RegionTopHalf:
		return Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: halfH}
	case RegionBottomHalf:
		return Rect{X: bounds.X, Y: bounds.Y + halfH, Width: bounds.Width, Height: bounds.Height - halfH}
	case RegionTopLeft:
		return Rect{X: bounds.X, Y: bounds.Y, Width: halfW, Height: halfH}
	case RegionTopRight:
		return Rect{X: bounds.X + halfW, Y: bounds.Y, Width: bounds.Width - halfW, Height: halfH}
	case RegionBottomLeft:
		return Rect{X: bounds.X, Y: bounds.Y + halfH, Width: halfW, Height: bounds.Height - halfH}
	case RegionBottomRight:
		return Rect{X: bounds.X + halfW, Y: bounds.Y + halfH, Width: bounds.Width - halfW, Height: bounds.Height - halfH}
	default:
		return bounds
	}
}
