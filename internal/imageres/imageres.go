// Package imageres provides reference-image loading for the annotation
// viewport. Decoding runs off the UI thread; the render layer skips drawing
// until the load-complete notification arrives.
package imageres

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"part-annotator/pkg/geometry"
)

// Status tracks the load lifecycle of a resource.
type Status int

const (
	StatusPending Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusLoading:
		return "Loading"
	case StatusReady:
		return "Ready"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Resource is a reference image with its intrinsic dimensions. Immutable
// once loaded; replacing the image means creating a new Resource.
type Resource struct {
	mu sync.RWMutex

	id          string
	sourceRef   string
	displayName string

	img    image.Image
	width  int
	height int

	status Status
	err    error
}

// Open starts decoding the image at path and returns immediately. onDone is
// invoked exactly once from the decode goroutine, for success and failure
// alike; callers hop back to the UI thread themselves if they need to.
func Open(path string, onDone func(*Resource)) *Resource {
	r := &Resource{
		id:          uuid.NewString(),
		sourceRef:   path,
		displayName: filepath.Base(path),
		status:      StatusLoading,
	}

	go func() {
		img, err := decodeFile(path)

		r.mu.Lock()
		if err != nil {
			r.status = StatusError
			r.err = err
		} else {
			r.img = img
			b := img.Bounds()
			r.width = b.Dx()
			r.height = b.Dy()
			r.status = StatusReady
		}
		r.mu.Unlock()

		if onDone != nil {
			onDone(r)
		}
	}()

	return r
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	_ = format
	return img, nil
}

// ID returns the resource identifier.
func (r *Resource) ID() string {
	return r.id
}

// SourceRef returns the opaque source reference (a file path here).
func (r *Resource) SourceRef() string {
	return r.sourceRef
}

// DisplayName returns the user-facing name.
func (r *Resource) DisplayName() string {
	return r.displayName
}

// Status returns the current load status.
func (r *Resource) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Err returns the decode error, if the load failed.
func (r *Resource) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// Image returns the decoded bitmap, or nil while not ready.
func (r *Resource) Image() image.Image {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.img
}

// NaturalSize returns the intrinsic pixel dimensions, zero until ready.
func (r *Resource) NaturalSize() geometry.Size {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return geometry.NewSize(float64(r.width), float64(r.height))
}
