package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialMode(t *testing.T) {
	assert.Equal(t, ModePreview, NewModeMachine(false).Current())
	assert.Equal(t, ModeAnnotation, NewModeMachine(true).Current(), "existing parts resume an edit session")
}

func TestAllowedTransitions(t *testing.T) {
	m := NewModeMachine(false)

	require.NoError(t, m.Enter(ModeUpload))
	require.NoError(t, m.Enter(ModePreview))
	require.NoError(t, m.Enter(ModeAnnotation))
	require.NoError(t, m.Enter(ModePreview))
}

func TestRejectedTransitions(t *testing.T) {
	m := NewModeMachine(false)
	require.NoError(t, m.Enter(ModeUpload))

	assert.Error(t, m.Enter(ModeAnnotation), "upload must return to preview first")
	assert.Equal(t, ModeUpload, m.Current())

	require.NoError(t, m.Enter(ModePreview))
	require.NoError(t, m.Enter(ModeAnnotation))
	assert.Error(t, m.Enter(ModeUpload))
}

func TestEnterSameModeIsNoOp(t *testing.T) {
	m := NewModeMachine(false)

	calls := 0
	m.OnChange(func(old, new Mode) { calls++ })

	require.NoError(t, m.Enter(ModePreview))
	assert.Zero(t, calls)
}

func TestOnChangeFires(t *testing.T) {
	m := NewModeMachine(false)

	var gotOld, gotNew Mode
	m.OnChange(func(old, new Mode) { gotOld, gotNew = old, new })

	require.NoError(t, m.Enter(ModeAnnotation))
	assert.Equal(t, ModePreview, gotOld)
	assert.Equal(t, ModeAnnotation, gotNew)
}
