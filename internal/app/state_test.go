package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"part-annotator/internal/part"
	"part-annotator/internal/project"
	"part-annotator/internal/viewport"
)

func TestPartMutationsEmitAndMarkModified(t *testing.T) {
	s := NewState()

	var partsEvents int
	s.On(EventPartsChanged, func(interface{}) { partsEvents++ })

	p := s.Collection().AddPart(nil)
	assert.Equal(t, 1, partsEvents)
	assert.True(t, s.Modified())

	s.Collection().UpdatePart(p.ID, part.Patch{Name: part.String("Armrest")})
	assert.Equal(t, 2, partsEvents)
}

func TestModeTransitionsEmit(t *testing.T) {
	s := NewState()
	require.Equal(t, viewport.ModePreview, s.Mode())

	var got viewport.Mode
	s.On(EventModeChanged, func(data interface{}) { got = data.(viewport.Mode) })

	require.NoError(t, s.EnterMode(viewport.ModeAnnotation))
	assert.Equal(t, viewport.ModeAnnotation, got)
	assert.Equal(t, viewport.ModeAnnotation, s.Mode())

	assert.Error(t, s.EnterMode(viewport.ModeUpload))
}

func TestSaveLoadProjectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sofa.partproj")

	s := NewState()
	g := s.Collection().CreateGroup("Cushions", "#884422")
	p := s.Collection().AddPart(nil)
	s.Collection().AssignToGroup([]string{p.ID}, g.ID)

	require.NoError(t, s.SaveProject(path))
	assert.False(t, s.Modified())
	assert.Equal(t, path, s.ProjectPath())

	s2 := NewState()
	require.NoError(t, s2.LoadProject(path))
	assert.Equal(t, 1, s2.Collection().Len())
	assert.Equal(t, viewport.ModeAnnotation, s2.Mode(), "existing parts resume annotation")
	assert.False(t, s2.Modified())

	got, found := s2.Collection().PartByID(p.ID)
	require.True(t, found)
	assert.Equal(t, g.ID, got.GroupID)
}

func TestLoadEmptyProjectStartsInPreview(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.partproj")
	require.NoError(t, project.New("empty").Save(path))

	s := NewState()
	require.NoError(t, s.LoadProject(path))
	assert.Equal(t, viewport.ModePreview, s.Mode())
}

func TestLoadImageFailureEmits(t *testing.T) {
	s := NewState()

	failed := make(chan struct{})
	s.On(EventImageFailed, func(interface{}) { close(failed) })

	s.LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	<-failed
	require.NotNil(t, s.Image())
}
