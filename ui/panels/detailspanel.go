package panels

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"part-annotator/internal/app"
	"part-annotator/internal/part"
	"part-annotator/internal/viewport"
)

const noGroupLabel = "(no group)"

// DetailsPanel edits the attributes of the active part. Field edits are
// debounced so a typing burst persists once, after the user pauses; the
// pending write is dropped if the active part changes underneath it.
type DetailsPanel struct {
	state     *app.State
	container fyne.CanvasObject
	debounce  *viewport.Debouncer

	header       *widget.Label
	nameEntry    *widget.Entry
	finishEntry  *widget.Entry
	colorEntry   *widget.Entry
	textureEntry *widget.Entry
	notesEntry   *widget.Entry
	groupSelect  *widget.Select
	form         *widget.Form

	// The part whose values are in the entries. Guarded by loading while
	// the entries are being programmatically repopulated.
	editingID string
	loading   bool

	// Edits accumulated during the debounce window. Each field keeps its
	// last value; the flush writes the whole burst in one UpdatePart call.
	pendingMu sync.Mutex
	pending   part.Patch
	pendingID string
}

// NewDetailsPanel creates a new details panel.
func NewDetailsPanel(state *app.State) *DetailsPanel {
	dp := &DetailsPanel{
		state:    state,
		debounce: viewport.NewDebouncer(viewport.DefaultSaveDelay),
	}

	dp.header = widget.NewLabel("No part selected")

	dp.nameEntry = widget.NewEntry()
	dp.finishEntry = widget.NewEntry()
	dp.colorEntry = widget.NewEntry()
	dp.colorEntry.PlaceHolder = "#rrggbb"
	dp.textureEntry = widget.NewEntry()
	dp.notesEntry = widget.NewMultiLineEntry()
	dp.notesEntry.SetMinRowsVisible(3)

	dp.nameEntry.OnChanged = dp.fieldChanged(func(v string) part.Patch {
		return part.Patch{Name: part.String(v)}
	})
	dp.finishEntry.OnChanged = dp.fieldChanged(func(v string) part.Patch {
		return part.Patch{Finish: part.String(v)}
	})
	dp.colorEntry.OnChanged = dp.fieldChanged(func(v string) part.Patch {
		return part.Patch{Color: part.String(v)}
	})
	dp.textureEntry.OnChanged = dp.fieldChanged(func(v string) part.Patch {
		return part.Patch{Texture: part.String(v)}
	})
	dp.notesEntry.OnChanged = dp.fieldChanged(func(v string) part.Patch {
		return part.Patch{Notes: part.String(v)}
	})

	// Group membership applies immediately; it is a pick, not a typing burst.
	dp.groupSelect = widget.NewSelect([]string{noGroupLabel}, func(selected string) {
		if dp.loading || dp.editingID == "" {
			return
		}
		if selected == noGroupLabel {
			state.Collection().Ungroup(dp.editingID)
			return
		}
		for _, g := range state.Collection().Groups() {
			if g.Name == selected {
				state.Collection().AssignToGroup([]string{dp.editingID}, g.ID)
				return
			}
		}
	})

	dp.form = widget.NewForm(
		widget.NewFormItem("Name", dp.nameEntry),
		widget.NewFormItem("Finish", dp.finishEntry),
		widget.NewFormItem("Color", dp.colorEntry),
		widget.NewFormItem("Texture", dp.textureEntry),
		widget.NewFormItem("Group", dp.groupSelect),
		widget.NewFormItem("Notes", dp.notesEntry),
	)

	dp.container = container.NewVBox(dp.header, dp.form)

	state.On(app.EventSelectionChanged, func(_ interface{}) { dp.loadActive() })
	state.On(app.EventPartsChanged, func(_ interface{}) { dp.partsChanged() })
	state.On(app.EventGroupsChanged, func(_ interface{}) { dp.refreshGroupOptions() })
	state.On(app.EventProjectLoaded, func(_ interface{}) {
		dp.refreshGroupOptions()
		dp.loadActive()
	})

	dp.refreshGroupOptions()
	dp.loadActive()
	return dp
}

// Container returns the panel container.
func (dp *DetailsPanel) Container() fyne.CanvasObject {
	return dp.container
}

// fieldChanged builds an entry callback that merges the edit into the
// pending patch and (re)arms the debounce timer for the part.
func (dp *DetailsPanel) fieldChanged(build func(string) part.Patch) func(string) {
	return func(value string) {
		if dp.loading || dp.editingID == "" {
			return
		}
		id := dp.editingID

		dp.pendingMu.Lock()
		if dp.pendingID != id {
			dp.pending = part.Patch{}
			dp.pendingID = id
		}
		dp.pending = dp.pending.Merge(build(value))
		dp.pendingMu.Unlock()

		dp.debounce.Schedule(id, func() { dp.flushPending(id) })
	}
}

// flushPending writes the accumulated patch for the part in one call.
func (dp *DetailsPanel) flushPending(id string) {
	dp.pendingMu.Lock()
	if dp.pendingID != id {
		dp.pendingMu.Unlock()
		return
	}
	patch := dp.pending
	dp.pending = part.Patch{}
	dp.pendingID = ""
	dp.pendingMu.Unlock()

	dp.state.Collection().UpdatePart(id, patch)
}

// dropPending discards accumulated edits for the part, alongside the
// debounce cancellation, so a stale burst cannot land on another part.
func (dp *DetailsPanel) dropPending(id string) {
	dp.pendingMu.Lock()
	if dp.pendingID == id {
		dp.pending = part.Patch{}
		dp.pendingID = ""
	}
	dp.pendingMu.Unlock()
}

// loadActive repopulates the form from the collection's active part.
func (dp *DetailsPanel) loadActive() {
	active := dp.state.Collection().Active()
	if active == dp.editingID {
		return
	}
	// Whatever was queued for the old part must not land on the new one.
	dp.debounce.CancelTarget(dp.editingID)
	dp.dropPending(dp.editingID)
	dp.editingID = active

	dp.loading = true
	defer func() { dp.loading = false }()

	p, ok := dp.state.Collection().PartByID(active)
	if !ok {
		dp.editingID = ""
		dp.header.SetText("No part selected")
		dp.nameEntry.SetText("")
		dp.finishEntry.SetText("")
		dp.colorEntry.SetText("")
		dp.textureEntry.SetText("")
		dp.notesEntry.SetText("")
		dp.groupSelect.SetSelected(noGroupLabel)
		return
	}

	dp.header.SetText("Part details")
	dp.nameEntry.SetText(p.Name)
	dp.finishEntry.SetText(p.Finish)
	dp.colorEntry.SetText(p.Color)
	dp.textureEntry.SetText(p.Texture)
	dp.notesEntry.SetText(p.Notes)

	groupName := noGroupLabel
	if g, ok := dp.state.Collection().GroupByID(p.GroupID); ok {
		groupName = g.Name
	}
	dp.groupSelect.SetSelected(groupName)
}

// partsChanged handles the edited part disappearing out from under the form.
func (dp *DetailsPanel) partsChanged() {
	if dp.editingID == "" {
		return
	}
	if _, ok := dp.state.Collection().PartByID(dp.editingID); !ok {
		dp.debounce.CancelTarget(dp.editingID)
		dp.dropPending(dp.editingID)
		dp.editingID = ""
		dp.loadActive()
	}
}

func (dp *DetailsPanel) refreshGroupOptions() {
	groups := dp.state.Collection().Groups()
	options := make([]string, 0, len(groups)+1)
	options = append(options, noGroupLabel)
	for _, g := range groups {
		options = append(options, g.Name)
	}

	dp.loading = true
	dp.groupSelect.Options = options
	dp.groupSelect.Refresh()
	dp.loading = false
}
