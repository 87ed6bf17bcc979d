package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/deskwm/internal/geometry"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	Bounds geometry.Rect
}

// Monitors retrieves all active monitors using XRandR
func (c *Connection) Monitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:   i,
			Name: outputName,
			Bounds: geometry.Rect{
				X:      int(crtcInfo.X),
				Y:      int(crtcInfo.Y),
				Width:  int(crtcInfo.Width),
				Height: int(crtcInfo.Height),
			},
		})
	}

	return monitors, nil
}

// WorkArea returns the usable area of the primary monitor: its geometry
// minus any dock/panel struts, falling back to the EWMH work area when no
// window advertises struts.
func (c *Connection) WorkArea() (geometry.Rect, error) {
	monitors, err := c.Monitors()
	if err != nil {
		return geometry.Rect{}, err
	}
	if len(monitors) == 0 {
		return geometry.Rect{}, fmt.Errorf("no monitors found")
	}

	// Prefer the monitor under the pointer, else the first.
	area := monitors[0].Bounds
	if mon := c.monitorForPointer(monitors); mon != nil {
		area = mon.Bounds
	}

	if adjusted, ok := c.applyDockStruts(area); ok {
		return adjusted, nil
	}
	return c.applyEWMHWorkArea(area), nil
}

// applyEWMHWorkArea intersects the monitor with _NET_WORKAREA for the
// current desktop.
func (c *Connection) applyEWMHWorkArea(area geometry.Rect) geometry.Rect {
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return area
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}
	wa := workArea[desktopIndex]

	x1 := max(area.X, int(wa.X))
	y1 := max(area.Y, int(wa.Y))
	x2 := min(area.X+area.Width, int(wa.X)+int(wa.Width))
	y2 := min(area.Y+area.Height, int(wa.Y)+int(wa.Height))

	if x2 > x1 && y2 > y1 {
		return geometry.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
	}
	return area
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

// applyDockStruts shrinks the monitor area by every dock window's reserved
// strut. Returns false when no dock reserves space, so the caller can fall
// back to _NET_WORKAREA.
func (c *Connection) applyDockStruts(area geometry.Rect) (geometry.Rect, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return area, false
	}
	rootWidth := int(rootGeom.Width)
	rootHeight := int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return area, false
	}

	var struts dockStruts
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}

		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			accumulateStruts(area, rootWidth, rootHeight, sp, &struts)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			sp := &ewmh.WmStrutPartial{
				Left:         s.Left,
				Right:        s.Right,
				Top:          s.Top,
				Bottom:       s.Bottom,
				LeftStartY:   0,
				LeftEndY:     uint(rootHeight - 1),
				RightStartY:  0,
				RightEndY:    uint(rootHeight - 1),
				TopStartX:    0,
				TopEndX:      uint(rootWidth - 1),
				BottomStartX: 0,
				BottomEndX:   uint(rootWidth - 1),
			}
			accumulateStruts(area, rootWidth, rootHeight, sp, &struts)
		}
	}

	if struts.left == 0 && struts.right == 0 && struts.top == 0 && struts.bottom == 0 {
		return area, false
	}

	area.X += struts.left
	area.Y += struts.top
	area.Width -= struts.left + struts.right
	area.Height -= struts.top + struts.bottom

	if area.Width < 1 {
		area.Width = 1
	}
	if area.Height < 1 {
		area.Height = 1
	}

	return area, true
}

// accumulateStruts folds one window's strut reservation into acc, counting
// only the part that overlaps this monitor.
func accumulateStruts(area geometry.Rect, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	monX1 := area.X
	monY1 := area.Y
	monX2 := area.X + area.Width
	monY2 := area.Y + area.Height

	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		x1 := int(sp.TopStartX)
		x2 := int(sp.TopEndX) + 1
		if isect := intersectionSize(monX1, monY1, monX2, monY2, x1, 0, x2, int(sp.Top)); isect.h > 0 {
			acc.top = max(acc.top, isect.h)
		}
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		x1 := int(sp.BottomStartX)
		x2 := int(sp.BottomEndX) + 1
		if isect := intersectionSize(monX1, monY1, monX2, monY2, x1, rootHeight-int(sp.Bottom), x2, rootHeight); isect.h > 0 {
			acc.bottom = max(acc.bottom, isect.h)
		}
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		y1 := int(sp.LeftStartY)
		y2 := int(sp.LeftEndY) + 1
		if isect := intersectionSize(monX1, monY1, monX2, monY2, 0, y1, int(sp.Left), y2); isect.w > 0 {
			acc.left = max(acc.left, isect.w)
		}
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		y1 := int(sp.RightStartY)
		y2 := int(sp.RightEndY) + 1
		if isect := intersectionSize(monX1, monY1, monX2, monY2, rootWidth-int(sp.Right), y1, rootWidth, y2); isect.w > 0 {
			acc.right = max(acc.right, isect.w)
		}
	}
}

type intersection struct {
	w int
	h int
}

func intersectionSize(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) intersection {
	x1 := max(ax1, bx1)
	y1 := max(ay1, by1)
	x2 := min(ax2, bx2)
	y2 := min(ay2, by2)

	if x2 <= x1 || y2 <= y1 {
		return intersection{}
	}
	return intersection{w: x2 - x1, h: y2 - y1}
}

func (c *Connection) monitorForPointer(monitors []Monitor) *Monitor {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil
	}

	for i := range monitors {
		mon := &monitors[i]
		if mon.Bounds.Contains(int(pointer.RootX), int(pointer.RootY)) {
			return mon
		}
	}
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
