package wm

// EventKind names a category of state change emitted by the store.
type EventKind string

const (
	EventWindowCreated     EventKind = "window-created"
	EventWindowMoved       EventKind = "window-moved"
	EventWindowResized     EventKind = "window-resized"
	EventWindowFocused     EventKind = "window-focused"
	EventWindowMinimized   EventKind = "window-minimized"
	EventWindowMaximized   EventKind = "window-maximized"
	EventWindowRestored    EventKind = "window-restored"
	EventWindowShown       EventKind = "window-shown"
	EventWindowHidden      EventKind = "window-hidden"
	EventWindowRetitled    EventKind = "window-retitled"
	EventWindowClosed      EventKind = "window-closed"
	EventStackChanged      EventKind = "stack-changed"
	EventWorkspaceCreated  EventKind = "workspace-created"
	EventWorkspaceSwitched EventKind = "workspace-switched"
	EventWorkspaceDeleted  EventKind = "workspace-deleted"
	EventWorkspaceRenamed  EventKind = "workspace-renamed"
	EventWindowReassigned  EventKind = "window-reassigned"
)

// Event describes one committed state change. Window is zero for
// workspace-only events and vice versa.
type Event struct {
	Kind      EventKind
	Window    WindowID
	Workspace WorkspaceID
}

// Listener receives events after the originating operation has committed.
// Listeners run outside the store lock, in registration order, and may call
// back into the store.
type Listener func(Event)

// Subscribe registers a listener for all future events.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// emit queues an event for delivery once the current operation unlocks.
// Must be called with the lock held.
func (s *Store) emit(kind EventKind, win WindowID, ws WorkspaceID) {
	s.pending = append(s.pending, Event{Kind: kind, Window: win, Workspace: ws})
}

// flush delivers queued events to listeners. Must be called after the lock
// is released; the caller owns the snapshot of listeners it was given.
func (s *Store) flush(events []Event, listeners []Listener) {
	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}
