package canvas

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"part-annotator/internal/app"
	"part-annotator/internal/viewport"
)

func TestScrollZoomsAtPointerEvenAtOrigin(t *testing.T) {
	test.NewApp()
	state := app.NewState()
	mc := New(state, viewport.Config{}, viewport.ControllerConfig{})

	// A wheel event in the exact top-left corner pivots there, not at
	// the container center.
	mc.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 1}})

	tr := mc.model.Current()
	assert.InDelta(t, 1.1, tr.Scale, 1e-9)
	assert.InDelta(t, 0.0, tr.TranslateX, 1e-9)
	assert.InDelta(t, 0.0, tr.TranslateY, 1e-9)
}

func TestScrollIgnoredInUploadMode(t *testing.T) {
	test.NewApp()
	state := app.NewState()
	mc := New(state, viewport.Config{}, viewport.ControllerConfig{})

	assert.NoError(t, state.EnterMode(viewport.ModeUpload))
	mc.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 1}})

	assert.Equal(t, 1.0, mc.model.Current().Scale)
}
