package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"part-annotator/internal/app"
	"part-annotator/internal/imageres"
	"part-annotator/internal/viewport"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp"}

// ImagePanel handles reference image selection while in upload mode.
type ImagePanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	nameLabel   *widget.Label
	sizeLabel   *widget.Label
	statusLabel *widget.Label
	openButton  *widget.Button
	doneButton  *widget.Button
}

// NewImagePanel creates a new image panel.
func NewImagePanel(state *app.State) *ImagePanel {
	ip := &ImagePanel{state: state}

	ip.nameLabel = widget.NewLabel("No image loaded")
	ip.nameLabel.Wrapping = fyne.TextWrapWord
	ip.sizeLabel = widget.NewLabel("")
	ip.statusLabel = widget.NewLabel("")

	ip.openButton = widget.NewButton("Open Image...", ip.onOpen)
	ip.doneButton = widget.NewButton("Back to Preview", func() {
		// Upload back to preview is always a legal edge.
		_ = state.EnterMode(viewport.ModePreview)
	})

	ip.container = container.NewVBox(
		widget.NewLabelWithStyle("Reference Image", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		ip.nameLabel,
		ip.sizeLabel,
		ip.statusLabel,
		ip.openButton,
		ip.doneButton,
	)

	state.On(app.EventImageLoading, func(_ interface{}) { ip.refresh() })
	state.On(app.EventImageLoaded, func(_ interface{}) { ip.refresh() })
	state.On(app.EventImageFailed, func(_ interface{}) { ip.refresh() })
	state.On(app.EventProjectLoaded, func(_ interface{}) { ip.refresh() })

	ip.refresh()
	return ip
}

// Container returns the panel container.
func (ip *ImagePanel) Container() fyne.CanvasObject {
	return ip.container
}

// SetWindow sets the parent window for the file dialog.
func (ip *ImagePanel) SetWindow(w fyne.Window) {
	ip.window = w
}

func (ip *ImagePanel) onOpen() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		ip.state.LoadImage(path)
	}, ip.window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	fd.Show()
}

func (ip *ImagePanel) refresh() {
	res := ip.state.Image()
	if res == nil {
		ip.nameLabel.SetText("No image loaded")
		ip.sizeLabel.SetText("")
		ip.statusLabel.SetText("")
		return
	}

	ip.nameLabel.SetText(res.DisplayName())
	switch res.Status() {
	case imageres.StatusReady:
		size := res.NaturalSize()
		ip.sizeLabel.SetText(fmt.Sprintf("%.0f x %.0f px", size.Width, size.Height))
		ip.statusLabel.SetText("Loaded")
	case imageres.StatusError:
		ip.sizeLabel.SetText("")
		ip.statusLabel.SetText(fmt.Sprintf("Load failed: %v", res.Err()))
	default:
		ip.sizeLabel.SetText("")
		ip.statusLabel.SetText("Loading...")
	}
}
