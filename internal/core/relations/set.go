package relations

// handleSet is an insertion-ordered set of handles. Removal swaps the last
// element into the freed position, so order is only stable while growing.
type handleSet struct {
	items []handle
	index map[handle]int
}

func newHandleSet() *handleSet {
	return &handleSet{index: make(map[handle]int)}
}

func (s *handleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *handleSet) Has(h handle) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[h]
	return ok
}

// Add reports whether h was inserted.
func (s *handleSet) Add(h handle) bool {
	if _, ok := s.index[h]; ok {
		return false
	}
	s.index[h] = len(s.items)
	s.items = append(s.items, h)
	return true
}

// Delete reports whether h was present.
func (s *handleSet) Delete(h handle) bool {
	i, ok := s.index[h]
	if !ok {
		return false
	}
	last := len(s.items) - 1
	if i != last {
		moved := s.items[last]
		s.items[i] = moved
		s.index[moved] = i
	}
	s.items = s.items[:last]
	delete(s.index, h)
	return true
}

func (s *handleSet) Items() []handle {
	if s == nil {
		return nil
	}
	return s.items
}
