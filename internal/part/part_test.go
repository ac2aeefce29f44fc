package part

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsAndFillsID(t *testing.T) {
	p := Part{XPct: 150, YPct: -20}
	p.Normalize()

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 100.0, p.XPct)
	assert.Equal(t, 0.0, p.YPct)
}

func TestPatchMergeLaterFieldWins(t *testing.T) {
	merged := Patch{Name: String("first")}.
		Merge(Patch{Finish: String("Matte")}).
		Merge(Patch{Name: String("second")})

	assert.Equal(t, "second", *merged.Name)
	assert.Equal(t, "Matte", *merged.Finish)
	assert.Nil(t, merged.Color)
}

func TestPatchMergeKeepsUntouchedFields(t *testing.T) {
	base := Patch{Color: String("#ffffff"), XPct: Float(10)}
	merged := base.Merge(Patch{Notes: String("note")})

	assert.Equal(t, "#ffffff", *merged.Color)
	assert.Equal(t, 10.0, *merged.XPct)
	assert.Equal(t, "note", *merged.Notes)
}
