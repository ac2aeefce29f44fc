package viewport

import (
	"part-annotator/pkg/geometry"
)

// ToRelative converts a container-local pixel position into percentage
// coordinates (0-100). A zero-sized container means the layout has not been
// measured yet; the origin is returned rather than dividing by zero.
func ToRelative(px, py float64, container geometry.Size) (xPct, yPct float64) {
	if container.IsZero() {
		return 0, 0
	}
	xPct = geometry.Clamp(px/container.Width*100, 0, 100)
	yPct = geometry.Clamp(py/container.Height*100, 0, 100)
	return xPct, yPct
}

// ToAbsolute converts percentage coordinates back to container-local pixels.
func ToAbsolute(xPct, yPct float64, container geometry.Size) (px, py float64) {
	return xPct / 100 * container.Width, yPct / 100 * container.Height
}

// Normalizer converts between persisted percentage coordinates and
// container-local pixels. Markers are stored in percentage space so a
// container resize only changes the render-time conversion, never the
// stored positions.
type Normalizer struct {
	container geometry.Size
}

// NewNormalizer creates a normalizer with no measured container yet.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// SetContainerSize records a new container size from the resize event
// stream. Safe to call mid-drag; only the conversion denominator changes.
func (n *Normalizer) SetContainerSize(size geometry.Size) {
	n.container = size
}

// ContainerSize returns the last observed container size.
func (n *Normalizer) ContainerSize() geometry.Size {
	return n.container
}

// ToRelative converts container pixels to percentage coordinates.
func (n *Normalizer) ToRelative(p geometry.Point2D) (xPct, yPct float64) {
	return ToRelative(p.X, p.Y, n.container)
}

// ToAbsolute converts percentage coordinates to container pixels.
func (n *Normalizer) ToAbsolute(xPct, yPct float64) geometry.Point2D {
	px, py := ToAbsolute(xPct, yPct, n.container)
	return geometry.Point2D{X: px, Y: py}
}
