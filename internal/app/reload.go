package app

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// Reloader watches the running executable and reports when a newer build
// has replaced it, so a development session can be restarted into fresh
// code without hunting for the window to close.
type Reloader struct {
	execPath string
	baseline time.Time
	interval time.Duration
	stop     chan struct{}
	onUpdate func()
}

// NewReloader creates a reloader watching the current executable.
func NewReloader(interval time.Duration) (*Reloader, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolving executable: %w", err)
	}
	// go build writes a new file; a stale symlink would watch the old one.
	if real, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = real
	}
	return newReloaderAt(execPath, interval)
}

func newReloaderAt(path string, interval time.Duration) (*Reloader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &Reloader{
		execPath: path,
		baseline: info.ModTime(),
		interval: interval,
	}, nil
}

// OnUpdate sets the callback invoked when a newer binary is detected.
// It runs on the watcher goroutine.
func (r *Reloader) OnUpdate(fn func()) {
	r.onUpdate = fn
}

// Start begins watching in a background goroutine. The watcher stops
// itself after the first detection; call Start again to resume.
func (r *Reloader) Start() {
	r.stop = make(chan struct{})
	go r.watch(r.stop)
}

// Stop ends the watch.
func (r *Reloader) Stop() {
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
}

func (r *Reloader) watch(stop chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if r.updated() {
				if r.onUpdate != nil {
					r.onUpdate()
				}
				return
			}
		}
	}
}

func (r *Reloader) updated() bool {
	info, err := os.Stat(r.execPath)
	if err != nil {
		return false
	}
	return info.ModTime().After(r.baseline)
}

// ExecPath returns the path being watched.
func (r *Reloader) ExecPath() string {
	return r.execPath
}

// ResetBaseline accepts the current binary as the watched version. Called
// when the user declines a restart, so they are not prompted again for the
// same build.
func (r *Reloader) ResetBaseline() {
	if info, err := os.Stat(r.execPath); err == nil {
		r.baseline = info.ModTime()
	}
}

// Restart replaces the current process with a fresh instance of the
// binary, preserving arguments and environment. Does not return on
// success.
func (r *Reloader) Restart() error {
	return syscall.Exec(r.execPath, os.Args, os.Environ())
}
