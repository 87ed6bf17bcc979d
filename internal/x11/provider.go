package x11

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/1broseidon/deskwm/internal/geometry"
)

// Provider exposes the X11 work area as a viewport source. Bounds returns
// the last polled value; Watch keeps it fresh and notifies on change.
type Provider struct {
	conn *Connection

	mu   sync.Mutex
	last geometry.Rect
}

// NewProvider queries the work area once so Bounds is immediately useful.
func NewProvider(conn *Connection) (*Provider, error) {
	area, err := conn.WorkArea()
	if err != nil {
		return nil, err
	}
	return &Provider{conn: conn, last: area}, nil
}

// Bounds returns the most recently observed work area.
func (p *Provider) Bounds() geometry.Rect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Watch polls the work area until ctx is cancelled and invokes onChange
// whenever it differs from the previous reading. Monitor hotplug and panel
// changes land within one interval; an interval <= 0 defaults to 2s.
func (p *Provider) Watch(ctx context.Context, interval time.Duration, onChange func(geometry.Rect)) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			area, err := p.conn.WorkArea()
			if err != nil {
				log.Printf("x11: work area query failed: %v", err)
				continue
			}

			p.mu.Lock()
			changed := area != p.last
			p.last = area
			p.mu.Unlock()

			if changed && onChange != nil {
				log.Printf("x11: work area changed to %+v", area)
				onChange(area)
			}
		}
	}
}
