// Package viewport provides the coordinate-transform model, interaction
// controller, and mode state machine for the annotation canvas. Everything
// here is UI-toolkit free so the interaction logic is testable headless.
package viewport

import (
	"part-annotator/pkg/geometry"
)

// Default transform limits; overridable through Config.
const (
	DefaultZoomMin  = 0.25
	DefaultZoomMax  = 4.0
	DefaultZoomStep = 0.1
)

// Transform maps image-intrinsic pixels to container pixels:
// containerX = TranslateX + imageX*Scale.
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Affine returns the transform as an affine matrix.
func (t Transform) Affine() geometry.AffineTransform {
	return geometry.ScaleTranslate(t.Scale, t.TranslateX, t.TranslateY)
}

// ImageToScreen maps an image-space point into container space.
func (t Transform) ImageToScreen(p geometry.Point2D) geometry.Point2D {
	return t.Affine().Apply(p)
}

// ScreenToImage maps a container-space point back into image space.
func (t Transform) ScreenToImage(p geometry.Point2D) geometry.Point2D {
	inv, ok := t.Affine().Inverse()
	if !ok {
		return p
	}
	return inv.Apply(p)
}

// Config holds tunable transform parameters. Zero values fall back to the
// package defaults, preserving the stock behavior.
type Config struct {
	ZoomMin  float64
	ZoomMax  float64
	ZoomStep float64 // scale change per wheel notch (0.1 = 10%)
}

func (c Config) withDefaults() Config {
	if c.ZoomMin <= 0 {
		c.ZoomMin = DefaultZoomMin
	}
	if c.ZoomMax <= 0 {
		c.ZoomMax = DefaultZoomMax
	}
	if c.ZoomStep <= 0 {
		c.ZoomStep = DefaultZoomStep
	}
	return c
}

// Model owns the current zoom/pan state for one viewport.
type Model struct {
	cfg     Config
	current Transform
	fitted  bool
}

// NewModel creates a transform model with the given configuration.
func NewModel(cfg Config) *Model {
	return &Model{
		cfg:     cfg.withDefaults(),
		current: Transform{Scale: 1},
	}
}

// Current returns the active transform.
func (m *Model) Current() Transform {
	return m.current
}

// Fitted reports whether an initial fit has been computed.
func (m *Model) Fitted() bool {
	return m.fitted
}

// Fit initializes the transform so the image fits inside the container,
// centered, never upscaling past 100%. A zero-sized image means the bitmap
// has not decoded yet; the previous transform is retained.
func (m *Model) Fit(container, img geometry.Size) {
	if img.IsZero() || container.IsZero() {
		return
	}

	scale := container.Width / img.Width
	if s := container.Height / img.Height; s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}

	m.current = Transform{
		Scale:      scale,
		TranslateX: (container.Width - img.Width*scale) / 2,
		TranslateY: (container.Height - img.Height*scale) / 2,
	}
	m.fitted = true
}

// Reset clears the transform back to an unfitted identity. The next Fit
// call re-derives it; used when the image is replaced.
func (m *Model) Reset() {
	m.current = Transform{Scale: 1}
	m.fitted = false
}

// ZoomAt changes the scale by delta notches while keeping the image point
// under the pivot visually fixed. Positive delta zooms in.
func (m *Model) ZoomAt(delta float64, pivot geometry.Point2D) {
	oldScale := m.current.Scale
	newScale := geometry.Clamp(oldScale*(1+delta*m.cfg.ZoomStep), m.cfg.ZoomMin, m.cfg.ZoomMax)
	if newScale == oldScale {
		return
	}

	ratio := newScale / oldScale
	m.current = Transform{
		Scale:      newScale,
		TranslateX: pivot.X - (pivot.X-m.current.TranslateX)*ratio,
		TranslateY: pivot.Y - (pivot.Y-m.current.TranslateY)*ratio,
	}
}

// PanBy translates the view by a pointer delta. Pan is intentionally
// unclamped; the image may be dragged fully out of view.
func (m *Model) PanBy(dx, dy float64) {
	m.current.TranslateX += dx
	m.current.TranslateY += dy
}
