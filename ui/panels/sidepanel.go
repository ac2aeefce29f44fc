// Package panels provides UI panels for the application.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"part-annotator/internal/app"
	"part-annotator/internal/viewport"
	"part-annotator/ui/canvas"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.MarkerCanvas
	container *container.AppTabs

	imagePanel   *ImagePanel
	partsPanel   *PartsPanel
	detailsPanel *DetailsPanel
	groupsPanel  *GroupsPanel
	bulkPanel    *BulkPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, cvs *canvas.MarkerCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: cvs,
	}

	sp.imagePanel = NewImagePanel(state)
	sp.partsPanel = NewPartsPanel(state)
	sp.detailsPanel = NewDetailsPanel(state)
	sp.groupsPanel = NewGroupsPanel(state)
	sp.bulkPanel = NewBulkPanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Image", sp.imagePanel.Container()),
		container.NewTabItem("Parts", sp.partsPanel.Container()),
		container.NewTabItem("Details", sp.detailsPanel.Container()),
		container.NewTabItem("Groups", sp.groupsPanel.Container()),
		container.NewTabItem("Bulk", sp.bulkPanel.Container()),
	)

	// Keep the visible tab in step with the viewport mode.
	state.On(app.EventModeChanged, func(data interface{}) {
		sp.syncTab()
	})
	// A marker click lands the user on the part's details.
	state.On(app.EventSelectionChanged, func(_ interface{}) {
		if state.Collection().Active() != "" {
			sp.container.SelectIndex(2)
		}
	})

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.imagePanel.SetWindow(w)
	sp.groupsPanel.SetWindow(w)
	sp.bulkPanel.SetWindow(w)
}

func (sp *SidePanel) syncTab() {
	switch sp.state.Mode() {
	case viewport.ModeUpload:
		sp.container.SelectIndex(0)
	case viewport.ModeAnnotation:
		sp.container.SelectIndex(1)
	}
}
