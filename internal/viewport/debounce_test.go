package viewport

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerFiresAfterQuiet(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	d.Schedule("p1", func() { fired.Add(1) })

	assert.Equal(t, "p1", d.Pending())
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.Empty(t, d.Pending())
}

func TestDebouncerOnlyLastEditSurvives(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var got atomic.Value
	for _, name := range []string{"a", "ab", "abc"} {
		name := name
		d.Schedule("p1", func() { got.Store(name) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "abc", got.Load())
}

func TestDebouncerCancelTarget(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	d.Schedule("p1", func() { fired.Add(1) })
	d.CancelTarget("p1")

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, fired.Load(), "target change must drop the stale save")
}

func TestDebouncerCancelTargetMismatch(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	d.Schedule("p1", func() { fired.Add(1) })
	d.CancelTarget("p2")

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncerRescheduleSwitchesTarget(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var p1 atomic.Int32
	var p2 atomic.Int32
	d.Schedule("p1", func() { p1.Add(1) })
	d.Schedule("p2", func() { p2.Add(1) })

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, p1.Load(), "switching targets cancels the previous timer outright")
	assert.Equal(t, int32(1), p2.Load())
}

func TestDebouncerCancelAll(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	d.Schedule("p1", func() { fired.Add(1) })
	d.Cancel()

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, fired.Load())
}
