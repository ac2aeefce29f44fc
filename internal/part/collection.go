package part

import (
	"sync"

	"github.com/google/uuid"
)

// PartsFunc receives the complete part list after every mutating operation.
type PartsFunc func(parts []Part)

// GroupsFunc receives the complete group list after every group mutation.
type GroupsFunc func(groups []Group)

// Collection is the in-memory part/group store. Every mutating operation
// updates state first, then invokes exactly one persistence callback with the
// full resulting list; the external layer reconciles and stores it.
type Collection struct {
	mu sync.RWMutex

	parts  []Part
	groups []Group

	activeID string
	bulk     map[string]struct{}

	onParts     PartsFunc
	onGroups    GroupsFunc
	onSelection func()
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{
		bulk: make(map[string]struct{}),
	}
}

// OnPartsChanged registers the persistence callback for part mutations.
func (c *Collection) OnPartsChanged(fn PartsFunc) {
	c.onParts = fn
}

// OnGroupsChanged registers the persistence callback for group mutations.
func (c *Collection) OnGroupsChanged(fn GroupsFunc) {
	c.onGroups = fn
}

// OnSelectionChanged registers a callback for active/bulk selection changes.
func (c *Collection) OnSelectionChanged(fn func()) {
	c.onSelection = fn
}

// Replace installs parts and groups supplied by the persistence layer.
// Malformed records are defensively normalized. No callback is emitted;
// the data just came from the collaborator.
func (c *Collection) Replace(parts []Part, groups []Group) {
	c.mu.Lock()
	c.parts = make([]Part, len(parts))
	for i := range parts {
		p := parts[i]
		p.Normalize()
		c.parts[i] = p
	}
	c.groups = append([]Group(nil), groups...)
	c.activeID = ""
	c.bulk = make(map[string]struct{})
	c.mu.Unlock()
}

// Parts returns a snapshot of the current part list.
func (c *Collection) Parts() []Part {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Part(nil), c.parts...)
}

// Groups returns a snapshot of the current group list.
func (c *Collection) Groups() []Group {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Group(nil), c.groups...)
}

// PartByID returns the part with the given id.
func (c *Collection) PartByID(id string) (Part, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.parts {
		if c.parts[i].ID == id {
			return c.parts[i], true
		}
	}
	return Part{}, false
}

// GroupByID returns the group with the given id.
func (c *Collection) GroupByID(id string) (Group, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.groups {
		if c.groups[i].ID == id {
			return c.groups[i], true
		}
	}
	return Group{}, false
}

// CountInGroup returns the number of parts assigned to a group.
func (c *Collection) CountInGroup(groupID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for i := range c.parts {
		if c.parts[i].GroupID == groupID {
			n++
		}
	}
	return n
}

// Len returns the number of parts.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.parts)
}

// AddPart inserts a new part at the container center and makes it active.
// A template, when given, supplies the attribute defaults.
func (c *Collection) AddPart(tmpl *Template) Part {
	p := Part{
		ID:   uuid.NewString(),
		XPct: 50,
		YPct: 50,
		Name: "New part",
	}
	if tmpl != nil {
		p.Name = tmpl.Name
		p.Finish = tmpl.Finish
		p.Color = tmpl.Color
		p.Texture = tmpl.Texture
	}

	c.mu.Lock()
	c.parts = append(c.parts, p)
	c.activeID = p.ID
	snapshot := append([]Part(nil), c.parts...)
	c.mu.Unlock()

	c.emitParts(snapshot)
	c.emitSelection()
	return p
}

// UpdatePart merges the patch into the identified part. Updates targeting a
// part that no longer exists are silently dropped; a pending debounced edit
// may race a deletion and that is not an error.
func (c *Collection) UpdatePart(id string, patch Patch) bool {
	c.mu.Lock()
	idx := -1
	for i := range c.parts {
		if c.parts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	patch.apply(&c.parts[idx])
	snapshot := append([]Part(nil), c.parts...)
	c.mu.Unlock()

	c.emitParts(snapshot)
	return true
}

// RemovePart deletes a part and clears any selection referencing it.
func (c *Collection) RemovePart(id string) {
	c.mu.Lock()
	idx := -1
	for i := range c.parts {
		if c.parts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	c.parts = append(c.parts[:idx], c.parts[idx+1:]...)

	selectionChanged := false
	if c.activeID == id {
		c.activeID = ""
		selectionChanged = true
	}
	if _, ok := c.bulk[id]; ok {
		delete(c.bulk, id)
		selectionChanged = true
	}
	snapshot := append([]Part(nil), c.parts...)
	c.mu.Unlock()

	c.emitParts(snapshot)
	if selectionChanged {
		c.emitSelection()
	}
}

// BulkApply applies one patch to every listed part in a single batch.
// Exactly one persistence callback is emitted for the whole batch.
func (c *Collection) BulkApply(patch Patch, ids []string) {
	c.mu.Lock()
	changed := false
	for _, id := range ids {
		for i := range c.parts {
			if c.parts[i].ID == id {
				patch.apply(&c.parts[i])
				changed = true
				break
			}
		}
	}
	snapshot := append([]Part(nil), c.parts...)
	c.mu.Unlock()

	if changed {
		c.emitParts(snapshot)
	}
}

// BulkDelete removes all listed parts atomically and clears the selection.
func (c *Collection) BulkDelete(ids []string) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	c.mu.Lock()
	kept := c.parts[:0]
	removed := 0
	for _, p := range c.parts {
		if _, ok := drop[p.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	if removed == 0 {
		c.mu.Unlock()
		return
	}
	c.parts = kept
	if _, ok := drop[c.activeID]; ok {
		c.activeID = ""
	}
	c.bulk = make(map[string]struct{})
	snapshot := append([]Part(nil), c.parts...)
	c.mu.Unlock()

	c.emitParts(snapshot)
	c.emitSelection()
}

// CreateGroup adds a new group and returns it.
func (c *Collection) CreateGroup(name, color string) Group {
	g := Group{ID: uuid.NewString(), Name: name, Color: color}

	c.mu.Lock()
	c.groups = append(c.groups, g)
	snapshot := append([]Group(nil), c.groups...)
	c.mu.Unlock()

	c.emitGroups(snapshot)
	return g
}

// RemoveGroup deletes a group. Member parts are not deleted; their group
// reference is cleared instead.
func (c *Collection) RemoveGroup(id string) {
	c.mu.Lock()
	idx := -1
	for i := range c.groups {
		if c.groups[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	c.groups = append(c.groups[:idx], c.groups[idx+1:]...)

	partsChanged := false
	for i := range c.parts {
		if c.parts[i].GroupID == id {
			c.parts[i].GroupID = ""
			partsChanged = true
		}
	}
	groupSnapshot := append([]Group(nil), c.groups...)
	partSnapshot := append([]Part(nil), c.parts...)
	c.mu.Unlock()

	c.emitGroups(groupSnapshot)
	if partsChanged {
		c.emitParts(partSnapshot)
	}
}

// AssignToGroup sets the group for every listed part in one batch.
func (c *Collection) AssignToGroup(ids []string, groupID string) {
	c.mu.Lock()
	found := false
	for i := range c.groups {
		if c.groups[i].ID == groupID {
			found = true
			break
		}
	}
	if !found {
		c.mu.Unlock()
		return
	}
	changed := false
	for _, id := range ids {
		for i := range c.parts {
			if c.parts[i].ID == id {
				c.parts[i].GroupID = groupID
				changed = true
				break
			}
		}
	}
	snapshot := append([]Part(nil), c.parts...)
	c.mu.Unlock()

	if changed {
		c.emitParts(snapshot)
	}
}

// Ungroup clears a part's group membership without deleting the part.
func (c *Collection) Ungroup(partID string) {
	c.UpdatePart(partID, Patch{GroupID: String("")})
}

// SetActive selects the part shown in the details panel. Empty clears it.
func (c *Collection) SetActive(id string) {
	c.mu.Lock()
	if c.activeID == id {
		c.mu.Unlock()
		return
	}
	c.activeID = id
	c.mu.Unlock()
	c.emitSelection()
}

// Active returns the id of the active part, or "" when none.
func (c *Collection) Active() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeID
}

// ToggleBulk flips a part's membership in the bulk-edit selection.
func (c *Collection) ToggleBulk(id string) {
	c.mu.Lock()
	if _, ok := c.bulk[id]; ok {
		delete(c.bulk, id)
	} else {
		c.bulk[id] = struct{}{}
	}
	c.mu.Unlock()
	c.emitSelection()
}

// IsBulkSelected reports whether a part is in the bulk-edit selection.
func (c *Collection) IsBulkSelected(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bulk[id]
	return ok
}

// BulkSelected returns the ids in the bulk-edit selection.
func (c *Collection) BulkSelected() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.bulk))
	for i := range c.parts {
		if _, ok := c.bulk[c.parts[i].ID]; ok {
			ids = append(ids, c.parts[i].ID)
		}
	}
	return ids
}

// ClearBulk empties the bulk-edit selection.
func (c *Collection) ClearBulk() {
	c.mu.Lock()
	if len(c.bulk) == 0 {
		c.mu.Unlock()
		return
	}
	c.bulk = make(map[string]struct{})
	c.mu.Unlock()
	c.emitSelection()
}

func (c *Collection) emitParts(snapshot []Part) {
	if c.onParts != nil {
		c.onParts(snapshot)
	}
}

func (c *Collection) emitGroups(snapshot []Group) {
	if c.onGroups != nil {
		c.onGroups(snapshot)
	}
}

func (c *Collection) emitSelection() {
	if c.onSelection != nil {
		c.onSelection()
	}
}
