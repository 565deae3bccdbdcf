package iteratable

// Set is a set of items, implemented in a way that lets clients extend the
// set while they iterate over it. Algorithms on LR item sets (closures in
// particular) are fixpoint constructions of the kind "for every item already
// in S, possibly add further items to S", and this type makes them read just
// like that.
//
// Sets are not safe for concurrent use.
type Set struct {
	items []interface{}
	inx   int // iteration cursor
}

// NewSet creates a new set with a capacity hint. A hint of 0 is fine.
func NewSet(size int) *Set {
	if size < 0 {
		size = 0
	}
	return &Set{
		items: make([]interface{}, 0, size),
		inx:   -1,
	}
}

// Add adds an item to the set, if it is not already present.
// Items appended during an active iteration will be visited, too.
func (s *Set) Add(item interface{}) {
	if s == nil || item == nil {
		return
	}
	if s.Contains(item) {
		return
	}
	s.items = append(s.items, item)
}

// Remove removes an item from the set, if present. Removing an item during
// an active iteration is allowed; the iteration will not skip items.
func (s *Set) Remove(item interface{}) {
	if s == nil {
		return
	}
	for i, m := range s.items {
		if m == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			if i <= s.inx {
				s.inx--
			}
			return
		}
	}
}

// Contains returns true if item is present in the set.
func (s *Set) Contains(item interface{}) bool {
	if s == nil {
		return false
	}
	for _, m := range s.items {
		if m == item {
			return true
		}
	}
	return false
}

// Size returns the number of items in the set.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Empty returns true if the set contains no items.
func (s *Set) Empty() bool {
	return s.Size() == 0
}

// First returns an arbitrary but stable first item of the set, nil for an
// empty set.
func (s *Set) First() interface{} {
	if s.Size() == 0 {
		return nil
	}
	return s.items[0]
}

// Values returns the items of the set as a slice. The slice is a copy and
// may be modified by the caller.
func (s *Set) Values() []interface{} {
	if s == nil {
		return []interface{}{}
	}
	vals := make([]interface{}, len(s.items))
	copy(vals, s.items)
	return vals
}

// Copy makes a copy of a set.
func (s *Set) Copy() *Set {
	if s == nil {
		return nil
	}
	c := NewSet(len(s.items))
	c.items = append(c.items, s.items...)
	return c
}

// Equals returns true if both sets contain exactly the same items,
// irrespective of order.
func (s *Set) Equals(other *Set) bool {
	if s.Size() != other.Size() {
		return false
	}
	for _, m := range s.items {
		if !other.Contains(m) {
			return false
		}
	}
	return true
}

// Union adds all items of other to this set. The receiver is modified and
// returned.
func (s *Set) Union(other *Set) *Set {
	if s == nil || other == nil {
		return s
	}
	for _, m := range other.items {
		s.Add(m)
	}
	return s
}

// Difference removes all items of other from this set. The receiver is
// modified and returned.
func (s *Set) Difference(other *Set) *Set {
	if s == nil || other == nil {
		return s
	}
	for _, m := range other.items {
		s.Remove(m)
	}
	return s
}

// Subset removes all items not matching the predicate from this set.
// The receiver is modified and returned.
func (s *Set) Subset(predicate func(interface{}) bool) *Set {
	if s == nil {
		return nil
	}
	for i := 0; i < len(s.items); {
		if !predicate(s.items[i]) {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			i++
		}
	}
	return s
}

// Each calls a function for every item of the set.
func (s *Set) Each(f func(item interface{})) {
	if s == nil {
		return
	}
	for _, m := range s.items {
		f(m)
	}
}

// IterateOnce starts a single pass over the items of the set. Items added
// during the pass will be visited as well, which makes loops of the form
//
//	S.IterateOnce()
//	for S.Next() {
//	    item := S.Item()
//	    // possibly S.Add(…)
//	}
//
// a natural encoding of closure fixpoints.
func (s *Set) IterateOnce() {
	if s == nil {
		return
	}
	s.inx = -1
}

// Next advances the iteration to the next item. It returns false when the
// set is exhausted.
func (s *Set) Next() bool {
	if s == nil {
		return false
	}
	s.inx++
	return s.inx < len(s.items)
}

// Item returns the item at the current iteration position.
func (s *Set) Item() interface{} {
	if s == nil || s.inx < 0 || s.inx >= len(s.items) {
		return nil
	}
	return s.items[s.inx]
}
