package picker

import "imagepicker/internal/domain"

// UnknownIndex marks a picked source whose position in the item list was not recovered
const UnknownIndex = -1

// PickedSet maps a picked source to its position index. Values are snapshots:
// With and Without return a new set and leave the receiver untouched, so a set
// handed to a callback never changes underneath it. The zero value is empty.
type PickedSet struct {
	order []string
	index map[string]int
}

// Len returns the number of picked sources
func (s PickedSet) Len() int {
	return len(s.order)
}

// Has reports whether src is picked
func (s PickedSet) Has(src string) bool {
	_, ok := s.index[src]
	return ok
}

// Index returns the position index stored for src
func (s PickedSet) Index(src string) (int, bool) {
	idx, ok := s.index[src]
	return idx, ok
}

// With returns a copy of the set with src mapped to idx. An existing entry keeps
// its slot and takes the new index.
func (s PickedSet) With(src string, idx int) PickedSet {
	next := s.clone(1)
	if _, ok := next.index[src]; !ok {
		next.order = append(next.order, src)
	}
	next.index[src] = idx
	return next
}

// Without returns a copy of the set with src removed
func (s PickedSet) Without(src string) PickedSet {
	if !s.Has(src) {
		return s.clone(0)
	}
	next := PickedSet{
		order: make([]string, 0, len(s.order)-1),
		index: make(map[string]int, len(s.index)-1),
	}
	for _, key := range s.order {
		if key == src {
			continue
		}
		next.order = append(next.order, key)
		next.index[key] = s.index[key]
	}
	return next
}

// Picks returns the entries in the set's own iteration order
func (s PickedSet) Picks() []domain.Pick {
	picks := make([]domain.Pick, 0, len(s.order))
	for _, src := range s.order {
		picks = append(picks, domain.Pick{Source: src, PositionIndex: s.index[src]})
	}
	return picks
}

func (s PickedSet) clone(extra int) PickedSet {
	next := PickedSet{
		order: make([]string, len(s.order), len(s.order)+extra),
		index: make(map[string]int, len(s.index)+extra),
	}
	copy(next.order, s.order)
	for k, v := range s.index {
		next.index[k] = v
	}
	return next
}

// NewPickedSet builds a set from picks; a repeated source keeps the last index
func NewPickedSet(picks ...domain.Pick) PickedSet {
	set := PickedSet{index: make(map[string]int, len(picks))}
	for _, p := range picks {
		if _, ok := set.index[p.Source]; !ok {
			set.order = append(set.order, p.Source)
		}
		set.index[p.Source] = p.PositionIndex
	}
	return set
}
