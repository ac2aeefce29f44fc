package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"part-annotator/internal/part"
	"part-annotator/internal/viewport"
	"part-annotator/pkg/colorutil"
	"part-annotator/pkg/geometry"
)

var backgroundColor = color.RGBA{R: 32, G: 32, B: 36, A: 255}

const (
	activeRingRadius = markerRadius + 3
	bulkRingRadius   = markerRadius + 6
	labelOffsetY     = markerRadius + 6
)

func fillBackground(output *image.RGBA) {
	draw.Draw(output, output.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
}

// drawImage blits the source image under the current transform using
// nearest-neighbor sampling. Iterating output pixels and inverse-mapping
// into source space leaves no holes at any zoom level.
func drawImage(output *image.RGBA, src image.Image, t viewport.Transform) {
	if src == nil || t.Scale <= 0 {
		return
	}
	srcBounds := src.Bounds()
	bounds := output.Bounds()

	// Restrict iteration to the transformed image footprint.
	topLeft := t.ImageToScreen(geometry.NewPoint2D(0, 0))
	bottomRight := t.ImageToScreen(geometry.NewPoint2D(
		float64(srcBounds.Dx()), float64(srcBounds.Dy())))

	minX := max(bounds.Min.X, int(topLeft.X))
	minY := max(bounds.Min.Y, int(topLeft.Y))
	maxX := min(bounds.Max.X, int(bottomRight.X)+1)
	maxY := min(bounds.Max.Y, int(bottomRight.Y)+1)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			imgPt := t.ScreenToImage(geometry.NewPoint2D(float64(x), float64(y)))
			srcX := srcBounds.Min.X + int(imgPt.X)
			srcY := srcBounds.Min.Y + int(imgPt.Y)
			if srcX < srcBounds.Min.X || srcX >= srcBounds.Max.X ||
				srcY < srcBounds.Min.Y || srcY >= srcBounds.Max.Y {
				continue
			}
			output.Set(x, y, src.At(srcX, srcY))
		}
	}
}

// drawMarker renders one part marker: a filled dot, selection rings, and a
// name label underneath. Group color wins over the part's own color.
func drawMarker(output *image.RGBA, center geometry.Point2D, p part.Part, group part.Group, active, bulk bool) {
	fill := colorutil.ParseHex(p.Color, colorutil.Red)
	if group.ID != "" {
		fill = colorutil.ParseHex(group.Color, fill)
	}

	fillCircle(output, center, markerRadius, fill)
	strokeCircle(output, center, markerRadius, colorutil.White)
	if active {
		strokeCircle(output, center, activeRingRadius, colorutil.Yellow)
	}
	if bulk {
		strokeCircle(output, center, bulkRingRadius, colorutil.Blue)
	}

	if p.Name != "" {
		drawLabel(output, p.Name, int(center.X), int(center.Y+labelOffsetY))
	}
}

// fillCircle draws a filled circle clipped to the output bounds.
func fillCircle(output *image.RGBA, center geometry.Point2D, radius float64, col color.RGBA) {
	circlePixels(output, center, radius, func(dist2, r2, _ float64) bool {
		return dist2 <= r2
	}, col)
}

// strokeCircle draws a 2 pixel ring clipped to the output bounds.
func strokeCircle(output *image.RGBA, center geometry.Point2D, radius float64, col color.RGBA) {
	circlePixels(output, center, radius, func(dist2, r2, inner2 float64) bool {
		return dist2 <= r2 && dist2 >= inner2
	}, col)
}

func circlePixels(output *image.RGBA, center geometry.Point2D, radius float64, keep func(dist2, r2, inner2 float64) bool, col color.RGBA) {
	bounds := output.Bounds()
	r2 := radius * radius
	inner2 := (radius - 2) * (radius - 2)

	minX := int(center.X - radius - 1)
	maxX := int(center.X + radius + 1)
	minY := int(center.Y - radius - 1)
	maxY := int(center.Y + radius + 1)

	for y := minY; y <= maxY; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := minX; x <= maxX; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := float64(x) - center.X
			dy := float64(y) - center.Y
			if keep(dx*dx+dy*dy, r2, inner2) {
				output.Set(x, y, col)
			}
		}
	}
}

// drawLabel renders text horizontally centered on x at baseline y.
func drawLabel(output *image.RGBA, text string, x, y int) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()

	d := font.Drawer{
		Dst:  output,
		Src:  image.NewUniform(colorutil.White),
		Face: face,
		Dot:  fixed.P(x-width/2, y+face.Ascent),
	}
	d.DrawString(text)
}
