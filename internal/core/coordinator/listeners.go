package coordinator

import (
	"slices"
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/model"
)

// Listener observes timer lifecycle events. Listeners are compared by
// equality on removal, so register pointers.
type Listener interface {
	Begin(id int)
	Started(id int, pos model.Position)
	Paused(id int)
	Updated(id int, value time.Duration)
	Finished(id int)
	End(id int, forced bool)
}

// NopListener ignores every event. Embed it to handle only some.
type NopListener struct{}

func (NopListener) Begin(int)                   {}
func (NopListener) Started(int, model.Position) {}
func (NopListener) Paused(int)                  {}
func (NopListener) Updated(int, time.Duration)  {}
func (NopListener) Finished(int)                {}
func (NopListener) End(int, bool)               {}

// listenerSet fans events out to per-id and all-id subscribers
type listenerSet struct {
	byID map[int][]Listener
	all  []Listener
}

func newListenerSet() *listenerSet {
	return &listenerSet{byID: make(map[int][]Listener)}
}

func (s *listenerSet) add(id int, l Listener) {
	s.byID[id] = append(s.byID[id], l)
}

func (s *listenerSet) remove(id int, l Listener) {
	list := s.byID[id]
	if i := slices.Index(list, l); i >= 0 {
		list = slices.Delete(list, i, i+1)
	}
	if len(list) == 0 {
		delete(s.byID, id)
		return
	}
	s.byID[id] = list
}

func (s *listenerSet) addAll(l Listener) {
	s.all = append(s.all, l)
}

func (s *listenerSet) removeAll(l Listener) {
	if i := slices.Index(s.all, l); i >= 0 {
		s.all = slices.Delete(s.all, i, i+1)
	}
}

func (s *listenerSet) clear() {
	s.byID = make(map[int][]Listener)
	s.all = nil
}

// each calls fn for the subscribers of id, then for all-id subscribers. It
// iterates over copies so listeners may unsubscribe from inside fn.
func (s *listenerSet) each(id int, fn func(Listener)) {
	for _, l := range slices.Clone(s.byID[id]) {
		fn(l)
	}
	for _, l := range slices.Clone(s.all) {
		fn(l)
	}
}
