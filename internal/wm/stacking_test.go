package wm

import "testing"

func TestStackOrder_SortsByZ(t *testing.T) {
	wins := []Window{
		{ID: 1, Z: 5},
		{ID: 2, Z: 1},
		{ID: 3, Z: 3},
	}

	out := StackOrder(wins)
	if out[0].ID != 2 || out[1].ID != 3 || out[2].ID != 1 {
		t.Fatalf("unexpected order: %v %v %v", out[0].ID, out[1].ID, out[2].ID)
	}
	// Input untouched.
	if wins[0].ID != 1 {
		t.Fatalf("input slice must not be reordered")
	}
}

func TestDeriveFocus_PicksTopmostEligible(t *testing.T) {
	wins := []Window{
		{ID: 1, Z: 0, Visible: true},
		{ID: 2, Z: 2, Visible: true, Minimized: true},
		{ID: 3, Z: 1, Visible: true},
		{ID: 4, Z: 3, Visible: false},
	}

	// 2 is minimized and 4 is hidden, so the topmost eligible is 3.
	if got := DeriveFocus(wins); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestDeriveFocus_NoEligible(t *testing.T) {
	wins := []Window{
		{ID: 1, Z: 0, Visible: true, Minimized: true},
		{ID: 2, Z: 1, Visible: false},
	}

	if got := DeriveFocus(wins); got != 0 {
		t.Fatalf("expected no focus candidate, got %d", got)
	}
}

func TestRenormalizeZ_ResetsCounterAcrossWorkspaces(t *testing.T) {
	s, _ := testStore()
	a := mustCreate(t, s, "a")
	other, err := s.CreateWorkspace("other")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}
	if err := s.SwitchWorkspace(other.ID); err != nil {
		t.Fatalf("SwitchWorkspace: %v", err)
	}
	b := mustCreate(t, s, "b")

	// Park a near-trigger z on the now-inactive workspace and push the
	// counter over the edge so the next raise renormalizes.
	s.mu.Lock()
	s.windows[a.ID].Z = zRenormalizeAt
	s.nextZ = zRenormalizeAt + 1
	s.mu.Unlock()

	if err := s.FocusWindow(b.ID); err != nil {
		t.Fatalf("FocusWindow: %v", err)
	}

	// Both workspaces are dense again, so the counter restarts low instead
	// of staying pinned above the trigger by the parked window.
	gotA, _ := s.Window(a.ID)
	if gotA.Z != 0 {
		t.Fatalf("parked window should densify to 0, got %d", gotA.Z)
	}
	c := mustCreate(t, s, "c")
	if c.Z >= zRenormalizeAt {
		t.Fatalf("counter should amortize after renormalization, got z=%d", c.Z)
	}
}

func TestFocusEligible(t *testing.T) {
	if FocusEligible(nil) {
		t.Fatalf("nil window must not be eligible")
	}
	if !FocusEligible(&Window{Visible: true}) {
		t.Fatalf("visible normal window must be eligible")
	}
	if FocusEligible(&Window{Visible: true, Minimized: true}) {
		t.Fatalf("minimized window must not be eligible")
	}
	if FocusEligible(&Window{Visible: false}) {
		t.Fatalf("hidden window must not be eligible")
	}
}
