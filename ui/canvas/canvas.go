// Package canvas provides the annotation canvas with pan, zoom, and part markers.
package canvas

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"part-annotator/internal/app"
	"part-annotator/internal/imageres"
	"part-annotator/internal/part"
	"part-annotator/internal/viewport"
	"part-annotator/pkg/geometry"
)

const (
	markerRadius = 10.0
	// frameInterval throttles repaints to roughly animation-frame cadence.
	frameInterval = 16 * time.Millisecond
)

// MarkerCanvas displays the reference image under the current transform and
// the part markers at their container-relative positions. Pointer events
// are translated into the viewport interaction controller's vocabulary.
type MarkerCanvas struct {
	widget.BaseWidget

	state *app.State
	model *viewport.Model
	norm  *viewport.Normalizer
	ctrl  *viewport.Controller

	raster   *fynecanvas.Raster
	sched    *viewport.RedrawScheduler
	lastSize geometry.Size
}

// New creates a marker canvas bound to the application state.
func New(state *app.State, cfg viewport.Config, ctrlCfg viewport.ControllerConfig) *MarkerCanvas {
	mc := &MarkerCanvas{
		state: state,
		model: viewport.NewModel(cfg),
		norm:  viewport.NewNormalizer(),
	}
	mc.ctrl = viewport.NewController(mc.model, mc.norm, ctrlCfg)

	mc.raster = fynecanvas.NewRaster(mc.draw)
	mc.raster.ScaleMode = fynecanvas.ImageScalePixels
	mc.raster.SetMinSize(fyne.NewSize(400, 300))

	mc.sched = viewport.NewRedrawScheduler(
		func(fn func()) { time.AfterFunc(frameInterval, fn) },
		mc.raster.Refresh,
	)

	mc.ctrl.OnViewChanged = mc.sched.Invalidate
	mc.ctrl.OnPartMoved = func(id string, xPct, yPct float64) {
		state.Collection().UpdatePart(id, part.Patch{XPct: part.Float(xPct), YPct: part.Float(yPct)})
	}
	mc.ctrl.OnPartClicked = func(id string) {
		state.Collection().SetActive(id)
	}
	mc.ctrl.OnPartToggled = func(id string) {
		state.Collection().ToggleBulk(id)
	}

	state.On(app.EventPartsChanged, func(interface{}) { mc.sched.Invalidate() })
	state.On(app.EventGroupsChanged, func(interface{}) { mc.sched.Invalidate() })
	state.On(app.EventSelectionChanged, func(interface{}) { mc.sched.Invalidate() })
	state.On(app.EventImageLoaded, func(interface{}) {
		// A replaced image re-derives its fit on the next draw.
		mc.model.Reset()
		mc.sched.Invalidate()
	})
	state.On(app.EventImageFailed, func(interface{}) { mc.sched.Invalidate() })
	state.On(app.EventModeChanged, func(interface{}) {
		mc.ctrl.Reset()
		mc.sched.Invalidate()
	})

	mc.ExtendBaseWidget(mc)
	return mc
}

// CreateRenderer implements fyne.Widget.
func (mc *MarkerCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(mc.raster)
}

// Invalidate schedules a coalesced repaint.
func (mc *MarkerCanvas) Invalidate() {
	mc.sched.Invalidate()
}

// ZoomIn zooms one notch toward the container center.
func (mc *MarkerCanvas) ZoomIn() {
	mc.ctrl.Wheel(1, mc.center())
}

// ZoomOut zooms one notch away from the container center.
func (mc *MarkerCanvas) ZoomOut() {
	mc.ctrl.Wheel(-1, mc.center())
}

// ResetView restores the fit-to-container transform.
func (mc *MarkerCanvas) ResetView() {
	mc.model.Reset()
	mc.sched.Invalidate()
}

// Zoom returns the current image scale factor.
func (mc *MarkerCanvas) Zoom() float64 {
	return mc.model.Current().Scale
}

func (mc *MarkerCanvas) center() geometry.Point2D {
	return geometry.NewPoint2D(mc.lastSize.Width/2, mc.lastSize.Height/2)
}

func eventPoint(pos fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(pos.X), float64(pos.Y))
}

// hitTest returns the topmost marker under the point, or "".
func (mc *MarkerCanvas) hitTest(p geometry.Point2D) string {
	parts := mc.state.Collection().Parts()
	for i := len(parts) - 1; i >= 0; i-- {
		center := mc.norm.ToAbsolute(parts[i].XPct, parts[i].YPct)
		hit := geometry.Circle{Center: center, Radius: markerRadius}
		if hit.Contains(p) {
			return parts[i].ID
		}
	}
	return ""
}

// interactive reports whether pan/zoom is available in the current mode.
func (mc *MarkerCanvas) interactive() bool {
	return mc.state.Mode() != viewport.ModeUpload
}

// editable reports whether marker interaction is available.
func (mc *MarkerCanvas) editable() bool {
	return mc.state.Mode() == viewport.ModeAnnotation
}

// MouseDown implements desktop.Mouseable. Marker hits are resolved here so
// the controller can distinguish a viewport pan from a marker drag.
func (mc *MarkerCanvas) MouseDown(ev *desktop.MouseEvent) {
	if !mc.interactive() {
		return
	}
	pos := eventPoint(ev.Position)
	partID := ""
	if mc.editable() {
		partID = mc.hitTest(pos)
	}
	mc.ctrl.PointerDown(pos, partID, ev.Button == desktop.MouseButtonPrimary)
}

// MouseUp implements desktop.Mouseable.
func (mc *MarkerCanvas) MouseUp(*desktop.MouseEvent) {
	mc.ctrl.PointerUp()
}

// Dragged implements fyne.Draggable.
func (mc *MarkerCanvas) Dragged(ev *fyne.DragEvent) {
	mc.ctrl.PointerMove(eventPoint(ev.Position))
}

// DragEnd implements fyne.Draggable.
func (mc *MarkerCanvas) DragEnd() {
	mc.ctrl.PointerUp()
}

// DoubleTapped toggles the marker under the cursor in the bulk selection.
func (mc *MarkerCanvas) DoubleTapped(ev *fyne.PointEvent) {
	if !mc.editable() {
		return
	}
	mc.ctrl.DoubleClick(mc.hitTest(eventPoint(ev.Position)))
}

// Tapped implements fyne.Tappable; required alongside DoubleTapped so the
// driver delivers tap events, but click semantics live in the controller.
func (mc *MarkerCanvas) Tapped(*fyne.PointEvent) {}

// Scrolled implements fyne.Scrollable: wheel zooms toward the cursor.
func (mc *MarkerCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if !mc.interactive() {
		return
	}
	pivot := eventPoint(ev.Position)
	if ev.Scrolled.DY > 0 {
		mc.ctrl.Wheel(1, pivot)
	} else if ev.Scrolled.DY < 0 {
		mc.ctrl.Wheel(-1, pivot)
	}
}

// MouseIn implements desktop.Hoverable.
func (mc *MarkerCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable. Drag motion arrives via Dragged.
func (mc *MarkerCanvas) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable. Leaving the container terminates
// any in-flight drag so it cannot get stuck.
func (mc *MarkerCanvas) MouseOut() {
	mc.ctrl.PointerLeave()
}

// draw is the raster drawing function.
func (mc *MarkerCanvas) draw(w, h int) image.Image {
	size := geometry.NewSize(float64(w), float64(h))
	if size != mc.lastSize && !size.IsZero() {
		// Resize: only the normalizer's denominator updates; stored
		// percentages and any in-flight drag carry straight on.
		mc.lastSize = size
		mc.norm.SetContainerSize(size)
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fillBackground(output)

	res := mc.state.Image()
	if res != nil && res.Status() == imageres.StatusReady {
		if !mc.model.Fitted() {
			mc.model.Fit(size, res.NaturalSize())
		}
		drawImage(output, res.Image(), mc.model.Current())
	}

	if mc.state.Mode() != viewport.ModeUpload {
		mc.drawMarkers(output)
	}

	return output
}

func (mc *MarkerCanvas) drawMarkers(output *image.RGBA) {
	coll := mc.state.Collection()
	activeID := coll.Active()

	groups := make(map[string]part.Group)
	for _, g := range coll.Groups() {
		groups[g.ID] = g
	}

	for _, p := range coll.Parts() {
		center := mc.norm.ToAbsolute(p.XPct, p.YPct)
		drawMarker(output, center, p, groups[p.GroupID],
			p.ID == activeID, coll.IsBulkSelected(p.ID))
	}
}
