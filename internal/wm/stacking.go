package wm

import "sort"

// FocusEligible reports whether a window can hold input focus: it must be
// visible and not minimized.
func FocusEligible(w *Window) bool {
	return w != nil && w.Visible && !w.Minimized
}

// StackOrder returns the given windows sorted bottom-to-top by z-index.
// The input slice is not modified.
func StackOrder(windows []Window) []Window {
	out := make([]Window, len(windows))
	copy(out, windows)
	sort.Slice(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// DeriveFocus picks the window that should receive focus when none is
// explicitly chosen: the topmost focus-eligible window, or 0 when no window
// qualifies.
func DeriveFocus(windows []Window) WindowID {
	best := WindowID(0)
	bestZ := -1
	for i := range windows {
		w := &windows[i]
		if !FocusEligible(w) {
			continue
		}
		if w.Z > bestZ {
			bestZ = w.Z
			best = w.ID
		}
	}
	return best
}

// renormalizeZ rewrites z-indices on every workspace to a dense 0..n-1 run
// preserving relative order, then resets the allocation counter past the
// highest surviving z. Densifying a single workspace is not enough: a high z
// parked on an inactive workspace would keep the counter above the trigger
// and renormalize on every raise. Must be called with the store lock held.
func (s *Store) renormalizeZLocked() {
	s.nextZ = 0
	for _, wsID := range s.wsOrder {
		ws := s.workspaces[wsID]
		wins := make([]*Window, 0, len(ws.Windows))
		for _, id := range ws.Windows {
			wins = append(wins, s.windows[id])
		}
		sort.Slice(wins, func(i, j int) bool { return wins[i].Z < wins[j].Z })
		for i, w := range wins {
			w.Z = i
		}
		if len(wins) > s.nextZ {
			s.nextZ = len(wins)
		}
	}
}

// raiseLocked assigns the window the next z-index, making it topmost on its
// workspace. Z values grow monotonically; renormalization keeps them dense.
func (s *Store) raiseLocked(w *Window) {
	w.Z = s.nextZ
	s.nextZ++
	if s.nextZ > zRenormalizeAt {
		s.renormalizeZLocked()
	}
}

// zRenormalizeAt bounds z growth; well below any practical overflow but
// cheap enough to renormalize eagerly.
const zRenormalizeAt = 1 << 20
