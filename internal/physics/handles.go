package physics

// BodyID is a stable handle into the World's body arena. Zero means none.
// IDs are never reused, so a handle to a removed body simply stops resolving.
type BodyID uint32

// bodySet is an insertion-ordered set of handles with O(1) add and remove.
// Removal swaps the last element into the hole.
type bodySet struct {
	ids   []BodyID
	index map[BodyID]int
}

func newBodySet() bodySet {
	return bodySet{index: make(map[BodyID]int)}
}

func (s *bodySet) add(id BodyID) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	return true
}

func (s *bodySet) remove(id BodyID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	last := len(s.ids) - 1
	moved := s.ids[last]
	s.ids[i] = moved
	s.index[moved] = i
	s.ids = s.ids[:last]
	delete(s.index, id)
	return true
}

func (s *bodySet) contains(id BodyID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *bodySet) len() int {
	return len(s.ids)
}

// snapshot copies the handles so callers can mutate the set while iterating.
func (s *bodySet) snapshot() []BodyID {
	return append([]BodyID(nil), s.ids...)
}
