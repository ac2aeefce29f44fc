// Package part provides annotation part and group types plus the in-memory
// collection that owns selection state and feeds the persistence callbacks.
package part

import (
	"github.com/google/uuid"

	"part-annotator/pkg/geometry"
)

// Part represents a single annotation marker placed on the reference image.
// Positions are stored as percentages of the container (0-100), not absolute
// pixels, so markers survive container resizes without drift.
type Part struct {
	ID      string  `json:"id"`
	XPct    float64 `json:"x_pct"`
	YPct    float64 `json:"y_pct"`
	Name    string  `json:"name"`
	Finish  string  `json:"finish"`
	Color   string  `json:"color"`
	Texture string  `json:"texture"`
	Notes   string  `json:"notes,omitempty"`
	GroupID string  `json:"group_id,omitempty"`
}

// Normalize clamps coordinates into range and fills in a missing ID.
// Out-of-contract input from a collaborator is defaulted, never rejected.
func (p *Part) Normalize() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.XPct = geometry.Clamp(p.XPct, 0, 100)
	p.YPct = geometry.Clamp(p.YPct, 0, 100)
}

// Group represents a named, colored group that parts may belong to.
type Group struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Patch describes a partial update to a part. Nil fields are left unchanged.
type Patch struct {
	XPct    *float64
	YPct    *float64
	Name    *string
	Finish  *string
	Color   *string
	Texture *string
	Notes   *string
	GroupID *string
}

// apply merges the patch into the part, clamping coordinates on write.
func (patch Patch) apply(p *Part) {
	if patch.XPct != nil {
		p.XPct = geometry.Clamp(*patch.XPct, 0, 100)
	}
	if patch.YPct != nil {
		p.YPct = geometry.Clamp(*patch.YPct, 0, 100)
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Finish != nil {
		p.Finish = *patch.Finish
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.Texture != nil {
		p.Texture = *patch.Texture
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	if patch.GroupID != nil {
		p.GroupID = *patch.GroupID
	}
}

// Merge overlays other onto the patch: every field other sets wins,
// fields other leaves nil keep their current value. Used to accumulate an
// editing burst into one write.
func (patch Patch) Merge(other Patch) Patch {
	if other.XPct != nil {
		patch.XPct = other.XPct
	}
	if other.YPct != nil {
		patch.YPct = other.YPct
	}
	if other.Name != nil {
		patch.Name = other.Name
	}
	if other.Finish != nil {
		patch.Finish = other.Finish
	}
	if other.Color != nil {
		patch.Color = other.Color
	}
	if other.Texture != nil {
		patch.Texture = other.Texture
	}
	if other.Notes != nil {
		patch.Notes = other.Notes
	}
	if other.GroupID != nil {
		patch.GroupID = other.GroupID
	}
	return patch
}

// Float returns a *float64 for building patches inline.
func Float(v float64) *float64 { return &v }

// String returns a *string for building patches inline.
func String(v string) *string { return &v }
