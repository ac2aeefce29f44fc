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

// BulkPanel applies attribute edits to every bulk-selected part at once.
// Only non-empty fields are written, so a bulk finish change leaves each
// part's color and texture alone.
type BulkPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	countLabel   *widget.Label
	finishEntry  *widget.Entry
	colorEntry   *widget.Entry
	textureEntry *widget.Entry
	applyButton  *widget.Button
	deleteButton *widget.Button
	clearButton  *widget.Button
}

// NewBulkPanel creates a new bulk edit panel.
func NewBulkPanel(state *app.State) *BulkPanel {
	bp := &BulkPanel{state: state}

	bp.countLabel = widget.NewLabel("Nothing selected")
	bp.finishEntry = widget.NewEntry()
	bp.colorEntry = widget.NewEntry()
	bp.colorEntry.PlaceHolder = "#rrggbb"
	bp.textureEntry = widget.NewEntry()

	bp.applyButton = widget.NewButton("Apply to Selection", bp.onApply)
	bp.deleteButton = widget.NewButton("Delete Selection", bp.onDelete)
	bp.clearButton = widget.NewButton("Clear Selection", func() {
		state.Collection().ClearBulk()
	})

	bp.container = container.NewVBox(
		widget.NewLabelWithStyle("Bulk Edit", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		bp.countLabel,
		widget.NewForm(
			widget.NewFormItem("Finish", bp.finishEntry),
			widget.NewFormItem("Color", bp.colorEntry),
			widget.NewFormItem("Texture", bp.textureEntry),
		),
		bp.applyButton,
		bp.deleteButton,
		bp.clearButton,
	)

	state.On(app.EventSelectionChanged, func(_ interface{}) { bp.refresh() })
	state.On(app.EventPartsChanged, func(_ interface{}) { bp.refresh() })

	bp.refresh()
	return bp
}

// Container returns the panel container.
func (bp *BulkPanel) Container() fyne.CanvasObject {
	return bp.container
}

// SetWindow sets the parent window for confirmation dialogs.
func (bp *BulkPanel) SetWindow(w fyne.Window) {
	bp.window = w
}

func (bp *BulkPanel) onApply() {
	ids := bp.state.Collection().BulkSelected()
	if len(ids) == 0 {
		return
	}

	var patch part.Patch
	if v := bp.finishEntry.Text; v != "" {
		patch.Finish = part.String(v)
	}
	if v := bp.colorEntry.Text; v != "" {
		patch.Color = part.String(v)
	}
	if v := bp.textureEntry.Text; v != "" {
		patch.Texture = part.String(v)
	}
	if patch.Finish == nil && patch.Color == nil && patch.Texture == nil {
		return
	}

	bp.state.Collection().BulkApply(patch, ids)
}

func (bp *BulkPanel) onDelete() {
	ids := bp.state.Collection().BulkSelected()
	if len(ids) == 0 {
		return
	}
	msg := fmt.Sprintf("Delete %d selected parts?", len(ids))
	dialog.ShowConfirm("Delete Parts", msg, func(ok bool) {
		if ok {
			bp.state.Collection().BulkDelete(ids)
		}
	}, bp.window)
}

func (bp *BulkPanel) refresh() {
	count := len(bp.state.Collection().BulkSelected())
	if count == 0 {
		bp.countLabel.SetText("Nothing selected")
		bp.applyButton.Disable()
		bp.deleteButton.Disable()
		bp.clearButton.Disable()
		return
	}
	bp.countLabel.SetText(fmt.Sprintf("%d parts selected", count))
	bp.applyButton.Enable()
	bp.deleteButton.Enable()
	bp.clearButton.Enable()
}
