package imageres

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ref.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
	return path
}

func TestOpenDecodesAndNotifies(t *testing.T) {
	path := writeTestPNG(t, 640, 360)

	done := make(chan *Resource, 1)
	r := Open(path, func(res *Resource) { done <- res })

	select {
	case res := <-done:
		assert.Same(t, r, res)
	case <-time.After(5 * time.Second):
		t.Fatal("decode notification never arrived")
	}

	assert.Equal(t, StatusReady, r.Status())
	assert.NoError(t, r.Err())
	require.NotNil(t, r.Image())
	assert.Equal(t, 640.0, r.NaturalSize().Width)
	assert.Equal(t, 360.0, r.NaturalSize().Height)
	assert.Equal(t, "ref.png", r.DisplayName())
	assert.NotEmpty(t, r.ID())
}

func TestOpenMissingFile(t *testing.T) {
	done := make(chan struct{})
	r := Open(filepath.Join(t.TempDir(), "nope.png"), func(*Resource) { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("failure notification never arrived")
	}

	assert.Equal(t, StatusError, r.Status())
	assert.Error(t, r.Err())
	assert.Nil(t, r.Image())
	assert.True(t, r.NaturalSize().IsZero(), "render layer must see zero dims and skip drawing")
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	done := make(chan struct{})
	r := Open(path, func(*Resource) { close(done) })

	<-done
	assert.Equal(t, StatusError, r.Status())
	assert.Error(t, r.Err())
}
