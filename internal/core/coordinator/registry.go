package coordinator

import (
	"fmt"
	"slices"

	"github.com/penwyp/go-interval-timer/internal/core/machine"
	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/util"
)

type entry struct {
	timer   *model.Timer
	machine *machine.Machine
}

// Registry holds the running timers in start order. It has a single writer,
// the coordinator, and no locking.
type Registry struct {
	entries map[int]*entry
	order   []int
	// Strict turns a double removal into a panic instead of a warning
	Strict bool
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[int]*entry)}
}

// Add inserts e and reports whether it was new. An existing id is kept.
func (r *Registry) Add(e *entry) bool {
	id := e.timer.ID
	if _, ok := r.entries[id]; ok {
		return false
	}
	r.entries[id] = e
	r.order = append(r.order, id)
	return true
}

func (r *Registry) Get(id int) *entry {
	return r.entries[id]
}

func (r *Registry) Has(id int) bool {
	_, ok := r.entries[id]
	return ok
}

// Remove deletes id and returns its entry
func (r *Registry) Remove(id int) *entry {
	e, ok := r.entries[id]
	if !ok {
		if r.Strict {
			panic(fmt.Sprintf("registry: timer %d removed twice", id))
		}
		util.LogWarnf("Registry: removing timer %d which is not running", id)
		return nil
	}
	delete(r.entries, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return e
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// IDs returns running ids in start order
func (r *Registry) IDs() []int {
	return slices.Clone(r.order)
}

// WithIndicator counts timers that want their own indicator
func (r *Registry) WithIndicator() int {
	n := 0
	for _, e := range r.entries {
		if e.timer.Notify {
			n++
		}
	}
	return n
}

// First returns the earliest started entry, or nil
func (r *Registry) First() *entry {
	if len(r.order) == 0 {
		return nil
	}
	return r.entries[r.order[0]]
}
