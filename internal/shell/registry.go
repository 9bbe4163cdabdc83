package shell

import (
	"sort"
	"time"
)

// Entry is one live window: the native window and the renderer bound to it.
// Both handles are owned by the entry and closed when it is removed.
type Entry struct {
	ID       WindowID
	Window   Window
	Renderer Renderer
	Title    string
	Created  time.Time
}

// WindowInfo is a read-only copy of an entry.
type WindowInfo struct {
	ID      WindowID  `json:"id"`
	Title   string    `json:"title"`
	Created time.Time `json:"created"`
}

// Registry maps window identity to entry. It is not safe for concurrent use;
// the Loop is its only writer.
type Registry struct {
	entries map[WindowID]*Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[WindowID]*Entry)}
}

// Insert adds e. An entry with the same ID must not already exist.
func (r *Registry) Insert(e *Entry) error {
	if _, ok := r.entries[e.ID]; ok {
		return &WindowError{Op: "register", ID: e.ID, Kind: KindDuplicate}
	}
	r.entries[e.ID] = e
	return nil
}

// Remove deletes and returns the entry for id.
func (r *Registry) Remove(id WindowID) (*Entry, bool) {
	e, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	return e, ok
}

func (r *Registry) Get(id WindowID) (*Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// Snapshot returns the live windows ordered by ID.
func (r *Registry) Snapshot() []WindowInfo {
	out := make([]WindowInfo, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, WindowInfo{ID: e.ID, Title: e.Title, Created: e.Created})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// IDs returns the live window IDs in ascending order.
func (r *Registry) IDs() []WindowID {
	ids := make([]WindowID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
