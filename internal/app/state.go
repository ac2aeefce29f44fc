// Package app provides application lifecycle management and events.
package app

import (
	"path/filepath"
	"strings"
	"sync"

	"part-annotator/internal/imageres"
	"part-annotator/internal/part"
	"part-annotator/internal/project"
	"part-annotator/internal/viewport"
)

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventPartsChanged
	EventGroupsChanged
	EventSelectionChanged
	EventImageLoading
	EventImageLoaded
	EventImageFailed
	EventModeChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the part collection, the reference
// image, the viewport mode machine, and the current project binding.
type State struct {
	mu sync.RWMutex

	projectPath string
	modified    bool

	collection *part.Collection
	modes      *viewport.ModeMachine
	image      *imageres.Resource

	listeners map[EventType][]EventListener
}

// NewState creates a new application state with an empty collection.
func NewState() *State {
	s := &State{
		collection: part.NewCollection(),
		listeners:  make(map[EventType][]EventListener),
	}
	s.modes = viewport.NewModeMachine(false)
	s.modes.OnChange(s.modeChanged)

	s.collection.OnPartsChanged(func(parts []part.Part) {
		s.SetModified(true)
		s.Emit(EventPartsChanged, parts)
	})
	s.collection.OnGroupsChanged(func(groups []part.Group) {
		s.SetModified(true)
		s.Emit(EventGroupsChanged, groups)
	})
	s.collection.OnSelectionChanged(func() {
		s.Emit(EventSelectionChanged, nil)
	})

	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Collection returns the part/group collection.
func (s *State) Collection() *part.Collection {
	return s.collection
}

// Image returns the current reference image resource, or nil.
func (s *State) Image() *imageres.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image
}

// Mode returns the current viewport mode.
func (s *State) Mode() viewport.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modes.Current()
}

// EnterMode requests a viewport mode transition.
func (s *State) EnterMode(target viewport.Mode) error {
	s.mu.RLock()
	modes := s.modes
	s.mu.RUnlock()
	return modes.Enter(target)
}

func (s *State) modeChanged(old, new viewport.Mode) {
	s.Emit(EventModeChanged, new)
}

// ProjectPath returns the bound project file path, or "".
func (s *State) ProjectPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectPath
}

// Modified reports whether there are unsaved changes.
func (s *State) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	changed := s.modified != modified
	s.modified = modified
	s.mu.Unlock()
	if changed {
		s.Emit(EventModified, modified)
	}
}

// Reset clears the loaded project, parts, and image and returns the
// viewport mode to preview.
func (s *State) Reset() {
	s.collection.Replace(nil, nil)

	s.mu.Lock()
	s.projectPath = ""
	s.modified = false
	s.image = nil
	s.modes = viewport.NewModeMachine(false)
	s.modes.OnChange(s.modeChanged)
	s.mu.Unlock()

	s.Emit(EventPartsChanged, []part.Part(nil))
	s.Emit(EventGroupsChanged, []part.Group(nil))
	s.Emit(EventModified, false)
}

// LoadProject loads a project from the specified path: parts and groups
// replace the collection, the viewport mode resumes annotation when parts
// already exist, and the reference image decode is kicked off.
func (s *State) LoadProject(path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return err
	}

	s.collection.Replace(proj.Parts, proj.Groups)

	s.mu.Lock()
	s.projectPath = path
	s.modified = false
	s.modes = viewport.NewModeMachine(len(proj.Parts) > 0)
	s.modes.OnChange(s.modeChanged)
	s.mu.Unlock()

	if imgPath := proj.GetImagePath(path); imgPath != "" {
		s.LoadImage(imgPath)
	}

	s.Emit(EventProjectLoaded, path)
	return nil
}

// SaveProject saves the current state to the specified path.
func (s *State) SaveProject(path string) error {
	s.mu.RLock()
	img := s.image
	s.mu.RUnlock()

	proj := project.New(projectName(path))
	proj.Parts = s.collection.Parts()
	proj.Groups = s.collection.Groups()
	if img != nil {
		proj.SetImage(path, img.SourceRef())
	}

	if err := proj.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.projectPath = path
	s.modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	s.Emit(EventModified, false)
	return nil
}

// LoadImage starts decoding a reference image. Existing parts are kept and
// re-anchor to the new natural size; the viewport resets its transform on
// the loaded event.
func (s *State) LoadImage(path string) {
	res := imageres.Open(path, func(r *imageres.Resource) {
		if r.Status() == imageres.StatusError {
			s.Emit(EventImageFailed, r.Err())
			return
		}
		s.Emit(EventImageLoaded, r)
	})

	s.mu.Lock()
	s.image = res
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventImageLoading, res)
}

// projectName derives a display name from the project file path.
func projectName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
