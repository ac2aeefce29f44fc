package viewport

import (
	"sync"
	"time"

	"part-annotator/pkg/geometry"
)

// Interaction defaults; overridable through ControllerConfig.
const (
	// DefaultClickThreshold is the cumulative pointer travel (pixels) that
	// turns a press into a drag instead of a click.
	DefaultClickThreshold = 3.0
	// DefaultClickDelay is how long a single click is held back so a
	// double click can claim the pointer sequence first.
	DefaultClickDelay = 250 * time.Millisecond
)

// TargetKind identifies what a drag operates on.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetViewport
	TargetPart
)

// ControllerConfig holds tunable interaction parameters. Zero values fall
// back to the package defaults.
type ControllerConfig struct {
	ClickThreshold float64
	ClickDelay     time.Duration
}

func (c ControllerConfig) withDefaults() ControllerConfig {
	if c.ClickThreshold <= 0 {
		c.ClickThreshold = DefaultClickThreshold
	}
	if c.ClickDelay <= 0 {
		c.ClickDelay = DefaultClickDelay
	}
	return c
}

// Controller owns pointer-event handling for the viewport: drag-to-pan,
// wheel-to-zoom toward the cursor, and click-vs-drag disambiguation on
// part markers. Positions are container-local pixels.
type Controller struct {
	model *Model
	norm  *Normalizer
	cfg   ControllerConfig

	isDragging bool
	targetKind TargetKind
	targetPart string
	startPos   geometry.Point2D
	lastPos    geometry.Point2D
	travel     float64
	moved      bool

	clickMu      sync.Mutex
	clickTimer   *time.Timer
	pendingClick string

	// OnViewChanged fires after any pan or zoom mutation.
	OnViewChanged func()
	// OnPartMoved fires for every drag frame with the marker's new
	// percentage position. Not debounced; redraws are coalesced downstream.
	OnPartMoved func(id string, xPct, yPct float64)
	// OnPartClicked fires when a press/release on a marker stays under the
	// click threshold, after the double-click window has passed.
	OnPartClicked func(id string)
	// OnPartToggled fires on marker double click instead of OnPartClicked.
	OnPartToggled func(id string)
}

// NewController creates an interaction controller bound to a transform
// model and coordinate normalizer.
func NewController(model *Model, norm *Normalizer, cfg ControllerConfig) *Controller {
	return &Controller{
		model: model,
		norm:  norm,
		cfg:   cfg.withDefaults(),
	}
}

// IsDragging reports whether a pointer sequence is in progress.
func (c *Controller) IsDragging() bool {
	return c.isDragging
}

// PointerDown begins a drag sequence. An empty partID targets the viewport
// (pan); otherwise the identified marker is the potential drag/click target.
// Only the primary button drags; other buttons are ignored.
func (c *Controller) PointerDown(pos geometry.Point2D, partID string, primary bool) {
	if !primary || c.isDragging {
		return
	}

	// A second press on the marker with a click pending is the first half
	// of a double click; hold the single click back.
	c.clickMu.Lock()
	if partID != "" && c.pendingClick == partID && c.clickTimer != nil {
		c.clickTimer.Stop()
		c.clickTimer = nil
		c.pendingClick = ""
	}
	c.clickMu.Unlock()

	c.isDragging = true
	c.startPos = pos
	c.lastPos = pos
	c.travel = 0
	c.moved = false
	if partID == "" {
		c.targetKind = TargetViewport
		c.targetPart = ""
	} else {
		c.targetKind = TargetPart
		c.targetPart = partID
	}
}

// PointerMove processes pointer motion. Events arriving after the drag has
// ended are stale and ignored.
func (c *Controller) PointerMove(pos geometry.Point2D) {
	if !c.isDragging {
		return
	}

	dx := pos.X - c.lastPos.X
	dy := pos.Y - c.lastPos.Y
	c.travel += pos.Distance(c.lastPos)
	c.lastPos = pos
	if c.travel > c.cfg.ClickThreshold {
		c.moved = true
	}

	switch c.targetKind {
	case TargetViewport:
		c.model.PanBy(dx, dy)
		if c.OnViewChanged != nil {
			c.OnViewChanged()
		}
	case TargetPart:
		xPct, yPct := c.norm.ToRelative(pos)
		if c.OnPartMoved != nil {
			c.OnPartMoved(c.targetPart, xPct, yPct)
		}
	}
}

// PointerUp finishes the drag sequence. A sequence that never exceeded the
// click threshold on a marker counts as a click; otherwise the drag is
// simply finalized. State resets unconditionally.
func (c *Controller) PointerUp() {
	if !c.isDragging {
		return
	}

	if c.targetKind == TargetPart && !c.moved {
		c.scheduleClick(c.targetPart)
	}

	c.isDragging = false
	c.targetKind = TargetNone
	c.targetPart = ""
	c.travel = 0
	c.moved = false
}

// PointerLeave terminates a drag when the pointer exits the container, so
// a release outside the widget cannot leave a stuck drag.
func (c *Controller) PointerLeave() {
	c.PointerUp()
}

// DoubleClick toggles a marker's bulk-selection membership. It claims the
// pointer sequence: any pending single click on the marker is cancelled.
func (c *Controller) DoubleClick(partID string) {
	if partID == "" {
		return
	}

	c.clickMu.Lock()
	if c.clickTimer != nil {
		c.clickTimer.Stop()
		c.clickTimer = nil
	}
	c.pendingClick = ""
	c.clickMu.Unlock()

	if c.OnPartToggled != nil {
		c.OnPartToggled(partID)
	}
}

// Wheel zooms toward the pointer position.
func (c *Controller) Wheel(delta float64, pos geometry.Point2D) {
	c.model.ZoomAt(delta, pos)
	if c.OnViewChanged != nil {
		c.OnViewChanged()
	}
}

// Reset drops any in-flight drag and pending click, e.g. on mode exit.
func (c *Controller) Reset() {
	c.isDragging = false
	c.targetKind = TargetNone
	c.targetPart = ""
	c.travel = 0
	c.moved = false

	c.clickMu.Lock()
	if c.clickTimer != nil {
		c.clickTimer.Stop()
		c.clickTimer = nil
	}
	c.pendingClick = ""
	c.clickMu.Unlock()
}

func (c *Controller) scheduleClick(partID string) {
	c.clickMu.Lock()
	defer c.clickMu.Unlock()

	if c.clickTimer != nil {
		c.clickTimer.Stop()
	}
	c.pendingClick = partID
	c.clickTimer = time.AfterFunc(c.cfg.ClickDelay, func() {
		c.clickMu.Lock()
		id := c.pendingClick
		c.pendingClick = ""
		c.clickTimer = nil
		c.clickMu.Unlock()

		if id != "" && c.OnPartClicked != nil {
			c.OnPartClicked(id)
		}
	})
}
