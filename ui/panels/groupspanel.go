package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"part-annotator/internal/app"
	"part-annotator/internal/part"
)

// GroupsPanel lists part groups and owns create/remove/assign actions.
type GroupsPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	nameEntry    *widget.Entry
	colorEntry   *widget.Entry
	list         *widget.List
	removeButton *widget.Button
	assignButton *widget.Button

	groups     []part.Group
	selectedID string
}

// NewGroupsPanel creates a new groups panel.
func NewGroupsPanel(state *app.State) *GroupsPanel {
	gp := &GroupsPanel{state: state}
	gp.groups = state.Collection().Groups()

	gp.nameEntry = widget.NewEntry()
	gp.nameEntry.PlaceHolder = "Group name"
	gp.colorEntry = widget.NewEntry()
	gp.colorEntry.PlaceHolder = "#rrggbb"

	createButton := widget.NewButton("Create Group", gp.onCreate)

	gp.removeButton = widget.NewButton("Remove", gp.onRemove)
	gp.removeButton.Disable()
	gp.assignButton = widget.NewButton("Assign Selection", gp.onAssign)
	gp.assignButton.Disable()

	gp.list = widget.NewList(
		func() int { return len(gp.groups) },
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(gp.groups) {
				return
			}
			g := gp.groups[id]
			count := gp.state.Collection().CountInGroup(g.ID)
			obj.(*widget.Label).SetText(fmt.Sprintf("%s (%d)", g.Name, count))
		},
	)
	gp.list.OnSelected = func(id widget.ListItemID) {
		if id < 0 || id >= len(gp.groups) {
			return
		}
		gp.selectedID = gp.groups[id].ID
		gp.removeButton.Enable()
		gp.syncAssign()
	}
	gp.list.OnUnselected = func(widget.ListItemID) {
		gp.selectedID = ""
		gp.removeButton.Disable()
		gp.assignButton.Disable()
	}

	gp.container = container.NewBorder(
		container.NewVBox(
			gp.nameEntry,
			container.NewGridWithColumns(2, gp.colorEntry, createButton),
			container.NewGridWithColumns(2, gp.assignButton, gp.removeButton),
		),
		nil, nil, nil,
		gp.list,
	)

	state.On(app.EventGroupsChanged, func(_ interface{}) { gp.refresh() })
	state.On(app.EventPartsChanged, func(_ interface{}) { gp.list.Refresh() })
	state.On(app.EventProjectLoaded, func(_ interface{}) { gp.refresh() })
	state.On(app.EventSelectionChanged, func(_ interface{}) { gp.syncAssign() })

	return gp
}

// Container returns the panel container.
func (gp *GroupsPanel) Container() fyne.CanvasObject {
	return gp.container
}

// SetWindow sets the parent window for confirmation dialogs.
func (gp *GroupsPanel) SetWindow(w fyne.Window) {
	gp.window = w
}

func (gp *GroupsPanel) onCreate() {
	name := gp.nameEntry.Text
	if name == "" {
		return
	}
	gp.state.Collection().CreateGroup(name, gp.colorEntry.Text)
	gp.nameEntry.SetText("")
	gp.colorEntry.SetText("")
}

func (gp *GroupsPanel) onRemove() {
	if gp.selectedID == "" {
		return
	}
	id := gp.selectedID
	count := gp.state.Collection().CountInGroup(id)
	if count == 0 {
		gp.state.Collection().RemoveGroup(id)
		return
	}
	// Members survive removal; they just lose the membership.
	msg := fmt.Sprintf("Remove this group? Its %d parts are kept and become ungrouped.", count)
	dialog.ShowConfirm("Remove Group", msg, func(ok bool) {
		if ok {
			gp.state.Collection().RemoveGroup(id)
		}
	}, gp.window)
}

// onAssign puts the current bulk selection (or the active part when there is
// no bulk selection) into the selected group.
func (gp *GroupsPanel) onAssign() {
	if gp.selectedID == "" {
		return
	}
	ids := gp.assignableIDs()
	if len(ids) == 0 {
		return
	}
	gp.state.Collection().AssignToGroup(ids, gp.selectedID)
}

func (gp *GroupsPanel) assignableIDs() []string {
	if ids := gp.state.Collection().BulkSelected(); len(ids) > 0 {
		return ids
	}
	if active := gp.state.Collection().Active(); active != "" {
		return []string{active}
	}
	return nil
}

func (gp *GroupsPanel) syncAssign() {
	if gp.selectedID != "" && len(gp.assignableIDs()) > 0 {
		gp.assignButton.Enable()
	} else {
		gp.assignButton.Disable()
	}
}

func (gp *GroupsPanel) refresh() {
	gp.groups = gp.state.Collection().Groups()

	// Drop selection state for a group that no longer exists.
	if gp.selectedID != "" {
		if _, ok := gp.state.Collection().GroupByID(gp.selectedID); !ok {
			gp.selectedID = ""
			gp.removeButton.Disable()
			gp.assignButton.Disable()
			gp.list.UnselectAll()
		}
	}
	gp.list.Refresh()
}
