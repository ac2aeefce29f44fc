package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"part-annotator/internal/part"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chair.partproj")

	proj := New("Lounge Chair")
	proj.Parts = []part.Part{
		{ID: "p1", XPct: 25, YPct: 75, Name: "Left leg", Finish: "Satin", Color: "#3b3b3b", Texture: "Wood", GroupID: "g1"},
		{ID: "p2", XPct: 50, YPct: 50, Name: "Seat", Notes: "check fabric sample"},
	}
	proj.Groups = []part.Group{{ID: "g1", Name: "Legs", Color: "#804000"}}
	proj.SetImage(path, filepath.Join(dir, "images", "chair.png"))

	require.NoError(t, proj.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Lounge Chair", loaded.Name)
	assert.Equal(t, proj.Parts, loaded.Parts)
	assert.Equal(t, proj.Groups, loaded.Groups)
	assert.Equal(t, filepath.Join("images", "chair.png"), loaded.ImagePath)
	assert.Equal(t, filepath.Join(dir, "images", "chair.png"), loaded.GetImagePath(path))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.partproj"))
	assert.Error(t, err)
}

func TestGetImagePathEmpty(t *testing.T) {
	proj := New("empty")
	assert.Empty(t, proj.GetImagePath("/somewhere/p.partproj"))
}
