package viewport

import (
	"sync"
)

// RedrawScheduler coalesces repaint requests: any number of state mutations
// inside one frame produce a single repaint, via a dirty flag and a
// deferred schedule hook (the UI layer supplies the frame trigger).
type RedrawScheduler struct {
	mu        sync.Mutex
	scheduled bool
	repaint   func()
	schedule  func(func())
}

// NewRedrawScheduler creates a scheduler. deferFn runs its argument on the
// next frame (or event-loop turn); repaint performs the actual paint.
func NewRedrawScheduler(deferFn func(func()), repaint func()) *RedrawScheduler {
	return &RedrawScheduler{
		repaint:  repaint,
		schedule: deferFn,
	}
}

// Invalidate requests a repaint. Calls made while one is already pending
// are absorbed into it.
func (s *RedrawScheduler) Invalidate() {
	s.mu.Lock()
	if s.scheduled {
		s.mu.Unlock()
		return
	}
	s.scheduled = true
	s.mu.Unlock()

	s.schedule(func() {
		s.mu.Lock()
		s.scheduled = false
		s.mu.Unlock()
		s.repaint()
	})
}
