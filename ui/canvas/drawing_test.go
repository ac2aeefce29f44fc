package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"part-annotator/internal/part"
	"part-annotator/internal/viewport"
	"part-annotator/pkg/colorutil"
	"part-annotator/pkg/geometry"
)

func solidImage(w, h int, col color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, col)
		}
	}
	return img
}

func TestDrawImageIdentity(t *testing.T) {
	output := image.NewRGBA(image.Rect(0, 0, 20, 20))
	fillBackground(output)

	src := solidImage(10, 10, colorutil.Green)
	drawImage(output, src, viewport.Transform{Scale: 1})

	assert.Equal(t, colorutil.Green, output.RGBAAt(5, 5))
	// Outside the image footprint the background survives.
	assert.Equal(t, backgroundColor, output.RGBAAt(15, 15))
}

func TestDrawImageTranslated(t *testing.T) {
	output := image.NewRGBA(image.Rect(0, 0, 40, 40))
	fillBackground(output)

	src := solidImage(10, 10, colorutil.Blue)
	drawImage(output, src, viewport.Transform{Scale: 2, TranslateX: 10, TranslateY: 10})

	assert.Equal(t, backgroundColor, output.RGBAAt(5, 5))
	assert.Equal(t, colorutil.Blue, output.RGBAAt(15, 15))
	assert.Equal(t, colorutil.Blue, output.RGBAAt(29, 29))
	assert.Equal(t, backgroundColor, output.RGBAAt(35, 35))
}

func TestDrawMarkerFillAndRings(t *testing.T) {
	output := image.NewRGBA(image.Rect(0, 0, 60, 60))
	fillBackground(output)

	p := part.Part{ID: "p1", Color: "#dc322f"}
	drawMarker(output, geometry.NewPoint2D(30, 30), p, part.Group{}, true, false)

	assert.Equal(t, colorutil.Red, output.RGBAAt(30, 30))
	// The active ring sits just outside the marker radius.
	assert.Equal(t, colorutil.Yellow, output.RGBAAt(30, 30-int(activeRingRadius)))
}

func TestDrawMarkerGroupColorWins(t *testing.T) {
	output := image.NewRGBA(image.Rect(0, 0, 60, 60))
	fillBackground(output)

	p := part.Part{ID: "p1", Color: "#dc322f", GroupID: "g1"}
	g := part.Group{ID: "g1", Color: "#268bd2"}
	drawMarker(output, geometry.NewPoint2D(30, 30), p, g, false, false)

	assert.Equal(t, colorutil.Blue, output.RGBAAt(30, 30))
}

func TestFillCircleClipsToBounds(t *testing.T) {
	output := image.NewRGBA(image.Rect(0, 0, 10, 10))
	// Center outside the image must not panic.
	fillCircle(output, geometry.NewPoint2D(-5, -5), 8, colorutil.Magenta)
	assert.Equal(t, colorutil.Magenta, output.RGBAAt(0, 0))
}
