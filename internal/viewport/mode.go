package viewport

import (
	"fmt"
)

// Mode identifies which interactions and overlays are active.
type Mode int

const (
	// ModePreview is the read-only display; markers are shown but inert.
	ModePreview Mode = iota
	// ModeUpload has the image-selection UI active and no marker interaction.
	ModeUpload
	// ModeAnnotation is full interactive editing.
	ModeAnnotation
)

func (m Mode) String() string {
	switch m {
	case ModePreview:
		return "Preview"
	case ModeUpload:
		return "Upload"
	case ModeAnnotation:
		return "Annotation"
	default:
		return "Unknown"
	}
}

// ModeMachine validates transitions between viewport modes. No mode is
// terminal; the machine lives as long as the window.
type ModeMachine struct {
	current  Mode
	onChange func(old, new Mode)
}

// NewModeMachine creates a machine at the initial mode: annotation when
// parts already exist (resuming an edit session), preview otherwise.
func NewModeMachine(hasParts bool) *ModeMachine {
	m := &ModeMachine{current: ModePreview}
	if hasParts {
		m.current = ModeAnnotation
	}
	return m
}

// OnChange registers a callback invoked after each successful transition.
func (m *ModeMachine) OnChange(fn func(old, new Mode)) {
	m.onChange = fn
}

// Current returns the active mode.
func (m *ModeMachine) Current() Mode {
	return m.current
}

// Enter transitions to the target mode. Only the documented edges are
// allowed: preview<->upload, preview<->annotation.
func (m *ModeMachine) Enter(target Mode) error {
	if target == m.current {
		return nil
	}

	allowed := false
	switch m.current {
	case ModePreview:
		allowed = target == ModeUpload || target == ModeAnnotation
	case ModeUpload:
		allowed = target == ModePreview
	case ModeAnnotation:
		allowed = target == ModePreview
	}
	if !allowed {
		return fmt.Errorf("invalid mode transition %s -> %s", m.current, target)
	}

	old := m.current
	m.current = target
	if m.onChange != nil {
		m.onChange(old, target)
	}
	return nil
}
