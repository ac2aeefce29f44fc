package part

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPartDefaultsToCenter(t *testing.T) {
	c := NewCollection()

	var emitted [][]Part
	c.OnPartsChanged(func(parts []Part) { emitted = append(emitted, parts) })

	p := c.AddPart(nil)
	assert.Equal(t, 50.0, p.XPct)
	assert.Equal(t, 50.0, p.YPct)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, p.ID, c.Active(), "new part becomes active")

	require.Len(t, emitted, 1, "one persistence call per mutation")
	require.Len(t, emitted[0], 1)
}

func TestAddPartFromTemplate(t *testing.T) {
	c := NewCollection()
	tmpl := BuiltinTemplates()[0]

	p := c.AddPart(&tmpl)
	assert.Equal(t, tmpl.Name, p.Name)
	assert.Equal(t, tmpl.Finish, p.Finish)
	assert.Equal(t, tmpl.Color, p.Color)
	assert.Equal(t, tmpl.Texture, p.Texture)
	assert.Equal(t, 50.0, p.XPct)
}

func TestUpdatePartClampsCoordinates(t *testing.T) {
	c := NewCollection()
	p := c.AddPart(nil)

	ok := c.UpdatePart(p.ID, Patch{XPct: Float(150)})
	require.True(t, ok)
	got, found := c.PartByID(p.ID)
	require.True(t, found)
	assert.Equal(t, 100.0, got.XPct)

	c.UpdatePart(p.ID, Patch{XPct: Float(-20), YPct: Float(101)})
	got, _ = c.PartByID(p.ID)
	assert.Equal(t, 0.0, got.XPct)
	assert.Equal(t, 100.0, got.YPct)
}

func TestUpdateMissingPartIsDropped(t *testing.T) {
	c := NewCollection()

	calls := 0
	c.OnPartsChanged(func([]Part) { calls++ })

	ok := c.UpdatePart("gone", Patch{Name: String("late edit")})
	assert.False(t, ok)
	assert.Zero(t, calls, "dropped update must not emit a persistence call")
}

func TestRemovePartClearsSelection(t *testing.T) {
	c := NewCollection()
	p := c.AddPart(nil)
	c.ToggleBulk(p.ID)

	c.RemovePart(p.ID)
	assert.Empty(t, c.Active())
	assert.Empty(t, c.BulkSelected())
	assert.Zero(t, c.Len())
}

func TestBulkApplyEmitsOnce(t *testing.T) {
	c := NewCollection()
	p1 := c.AddPart(nil)
	p2 := c.AddPart(nil)
	p3 := c.AddPart(nil)

	var emitted [][]Part
	c.OnPartsChanged(func(parts []Part) { emitted = append(emitted, parts) })

	c.BulkApply(Patch{Color: String("#fff")}, []string{p1.ID, p2.ID, p3.ID})

	require.Len(t, emitted, 1, "bulk apply is a single batch")
	for _, p := range emitted[0] {
		assert.Equal(t, "#fff", p.Color)
	}
}

func TestBulkApplyUnknownIDsEmitNothing(t *testing.T) {
	c := NewCollection()

	calls := 0
	c.OnPartsChanged(func([]Part) { calls++ })

	c.BulkApply(Patch{Color: String("#fff")}, []string{"a", "b"})
	assert.Zero(t, calls)
}

func TestBulkDelete(t *testing.T) {
	c := NewCollection()
	p1 := c.AddPart(nil)
	p2 := c.AddPart(nil)
	p3 := c.AddPart(nil)
	c.ToggleBulk(p1.ID)
	c.ToggleBulk(p2.ID)

	var emitted [][]Part
	c.OnPartsChanged(func(parts []Part) { emitted = append(emitted, parts) })

	c.BulkDelete([]string{p1.ID, p2.ID})

	require.Len(t, emitted, 1)
	require.Len(t, emitted[0], 1)
	assert.Equal(t, p3.ID, emitted[0][0].ID)
	assert.Empty(t, c.BulkSelected())
}

func TestUngroupThenRegroup(t *testing.T) {
	c := NewCollection()
	g1 := c.CreateGroup("Legs", "#804000")
	g2 := c.CreateGroup("Arms", "#004080")

	p := c.AddPart(nil)
	c.AssignToGroup([]string{p.ID}, g1.ID)
	assert.Equal(t, 1, c.CountInGroup(g1.ID))

	c.Ungroup(p.ID)
	got, _ := c.PartByID(p.ID)
	assert.Empty(t, got.GroupID)
	assert.Zero(t, c.CountInGroup(g1.ID))

	c.AssignToGroup([]string{p.ID}, g2.ID)
	got, _ = c.PartByID(p.ID)
	assert.Equal(t, g2.ID, got.GroupID)
	assert.Equal(t, 1, c.CountInGroup(g2.ID))
	assert.Zero(t, c.CountInGroup(g1.ID))
}

func TestRemoveGroupClearsMembership(t *testing.T) {
	c := NewCollection()
	g := c.CreateGroup("Seat", "#222222")
	p := c.AddPart(nil)
	c.AssignToGroup([]string{p.ID}, g.ID)

	c.RemoveGroup(g.ID)

	got, found := c.PartByID(p.ID)
	require.True(t, found, "deleting a group must not delete its parts")
	assert.Empty(t, got.GroupID)
	assert.Empty(t, c.Groups())
}

func TestAssignToMissingGroupIsIgnored(t *testing.T) {
	c := NewCollection()
	p := c.AddPart(nil)

	c.AssignToGroup([]string{p.ID}, "no-such-group")
	got, _ := c.PartByID(p.ID)
	assert.Empty(t, got.GroupID)
}

func TestReplaceNormalizesRecords(t *testing.T) {
	c := NewCollection()
	c.Replace([]Part{
		{XPct: 240, YPct: -3, Name: "imported"},
	}, nil)

	parts := c.Parts()
	require.Len(t, parts, 1)
	assert.NotEmpty(t, parts[0].ID, "missing id is defaulted")
	assert.Equal(t, 100.0, parts[0].XPct)
	assert.Equal(t, 0.0, parts[0].YPct)
}

func TestToggleBulk(t *testing.T) {
	c := NewCollection()
	p := c.AddPart(nil)

	c.ToggleBulk(p.ID)
	assert.True(t, c.IsBulkSelected(p.ID))
	c.ToggleBulk(p.ID)
	assert.False(t, c.IsBulkSelected(p.ID))
}

func TestSelectionCallback(t *testing.T) {
	c := NewCollection()
	p := c.AddPart(nil)

	calls := 0
	c.OnSelectionChanged(func() { calls++ })

	c.SetActive(p.ID) // already active, no change
	assert.Zero(t, calls)

	c.SetActive("")
	assert.Equal(t, 1, calls)

	c.ToggleBulk(p.ID)
	assert.Equal(t, 2, calls)
}
