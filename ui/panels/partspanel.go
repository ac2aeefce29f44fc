package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"part-annotator/internal/app"
	"part-annotator/internal/part"
	"part-annotator/internal/viewport"
)

// PartsPanel lists the annotation parts and owns add/remove actions.
type PartsPanel struct {
	state     *app.State
	container fyne.CanvasObject

	templates      []part.Template
	templateSelect *widget.Select
	list           *widget.List
	countLabel     *widget.Label
	deleteButton   *widget.Button

	// Snapshot backing the list; rebuilt on every parts event so list
	// callbacks never index into a stale slice.
	parts []part.Part

	syncing bool
}

// NewPartsPanel creates a new parts panel.
func NewPartsPanel(state *app.State) *PartsPanel {
	pp := &PartsPanel{
		state:     state,
		templates: part.BuiltinTemplates(),
	}
	pp.parts = state.Collection().Parts()

	names := append([]string{"Blank"}, part.TemplateNames(pp.templates)...)
	pp.templateSelect = widget.NewSelect(names, nil)
	pp.templateSelect.SetSelectedIndex(0)

	addButton := widget.NewButton("Add Part", pp.onAdd)
	pp.deleteButton = widget.NewButton("Delete", pp.onDelete)
	pp.deleteButton.Disable()

	pp.countLabel = widget.NewLabel("")

	pp.list = widget.NewList(
		func() int { return len(pp.parts) },
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(pp.parts) {
				return
			}
			p := pp.parts[id]
			label := p.Name
			if label == "" {
				label = "(unnamed)"
			}
			if p.Finish != "" {
				label = fmt.Sprintf("%s - %s", label, p.Finish)
			}
			obj.(*widget.Label).SetText(label)
		},
	)
	pp.list.OnSelected = func(id widget.ListItemID) {
		if pp.syncing || id < 0 || id >= len(pp.parts) {
			return
		}
		state.Collection().SetActive(pp.parts[id].ID)
	}
	pp.list.OnUnselected = func(widget.ListItemID) {
		if pp.syncing {
			return
		}
		state.Collection().SetActive("")
	}

	pp.container = container.NewBorder(
		container.NewVBox(
			container.NewGridWithColumns(2, pp.templateSelect, addButton),
			container.NewGridWithColumns(2, pp.countLabel, pp.deleteButton),
		),
		nil, nil, nil,
		pp.list,
	)

	state.On(app.EventPartsChanged, func(_ interface{}) { pp.refresh() })
	state.On(app.EventProjectLoaded, func(_ interface{}) { pp.refresh() })
	state.On(app.EventSelectionChanged, func(_ interface{}) { pp.syncSelection() })

	pp.refresh()
	return pp
}

// Container returns the panel container.
func (pp *PartsPanel) Container() fyne.CanvasObject {
	return pp.container
}

func (pp *PartsPanel) onAdd() {
	var tmpl *part.Template
	if idx := pp.templateSelect.SelectedIndex(); idx > 0 && idx <= len(pp.templates) {
		tmpl = &pp.templates[idx-1]
	}
	pp.state.Collection().AddPart(tmpl)

	// Adding a part implies the user wants to edit it.
	if pp.state.Mode() == viewport.ModePreview {
		_ = pp.state.EnterMode(viewport.ModeAnnotation)
	}
}

func (pp *PartsPanel) onDelete() {
	active := pp.state.Collection().Active()
	if active == "" {
		return
	}
	pp.state.Collection().RemovePart(active)
}

func (pp *PartsPanel) refresh() {
	pp.parts = pp.state.Collection().Parts()
	pp.countLabel.SetText(fmt.Sprintf("%d parts", len(pp.parts)))
	pp.list.Refresh()
	pp.syncSelection()
}

// syncSelection mirrors the collection's active part into the list widget.
func (pp *PartsPanel) syncSelection() {
	active := pp.state.Collection().Active()

	pp.syncing = true
	defer func() { pp.syncing = false }()

	if active == "" {
		pp.list.UnselectAll()
		pp.deleteButton.Disable()
		return
	}
	for i, p := range pp.parts {
		if p.ID == active {
			pp.list.Select(i)
			pp.deleteButton.Enable()
			return
		}
	}
	pp.list.UnselectAll()
	pp.deleteButton.Disable()
}
