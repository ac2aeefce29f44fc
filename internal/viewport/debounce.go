package viewport

import (
	"sync"
	"time"
)

// DefaultSaveDelay is the inactivity window before a field edit is
// persisted; keeps the write volume at roughly one per editing pause
// instead of one per keystroke.
const DefaultSaveDelay = time.Second

// Debouncer delays a callback until edits to one target go quiet. Each new
// edit to the same target cancels and replaces the pending timer; an edit
// to a different target cancels the previous target's timer outright, so a
// stale save can never land on the wrong part.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	targetID string
	seq      uint64
}

// NewDebouncer creates a debouncer with the given inactivity window.
// A non-positive delay falls back to DefaultSaveDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &Debouncer{delay: delay}
}

// Schedule queues fn to run after the inactivity window. Only the last
// schedule within the window survives.
func (d *Debouncer) Schedule(targetID string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.targetID = targetID
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A reschedule or cancel may have raced the timer firing.
		if d.seq != seq || d.targetID != targetID {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.targetID = ""
		d.mu.Unlock()
		fn()
	})
}

// CancelTarget drops the pending callback if it is for the given target.
// Called when the active part changes or is deleted.
func (d *Debouncer) CancelTarget(targetID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.targetID != targetID {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.targetID = ""
}

// Cancel drops any pending callback, e.g. on unmount.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.targetID = ""
}

// Pending returns the target id of the queued callback, or "".
func (d *Debouncer) Pending() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.targetID
}
