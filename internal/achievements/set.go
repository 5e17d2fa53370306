package achievements

import "slices"

// Set is the collection of unlocked achievement ids. It only grows.
type Set struct {
	ids   []string
	index map[string]struct{}
}

// NewSet builds a set from persisted ids. Duplicates are dropped; unknown
// ids are kept so newer profiles survive a round trip.
func NewSet(ids ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was new.
func (s *Set) Add(id string) bool {
	if s.Has(id) {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// Has reports whether id is unlocked.
func (s *Set) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of unlocked ids.
func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the unlocked ids in unlock order.
func (s *Set) IDs() []string {
	return slices.Clone(s.ids)
}
