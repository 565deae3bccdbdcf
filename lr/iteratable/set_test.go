package iteratable

import "testing"

func TestSetAddRemove(t *testing.T) {
	S := NewSet(0)
	S.Add("a")
	S.Add("b")
	S.Add("a")
	if S.Size() != 2 {
		t.Errorf("set should have 2 items, has %d", S.Size())
	}
	S.Remove("a")
	if S.Contains("a") {
		t.Errorf("item 'a' should have been removed")
	}
	if S.Size() != 1 {
		t.Errorf("set should have 1 item, has %d", S.Size())
	}
}

func TestSetUnionDifference(t *testing.T) {
	S := NewSet(0)
	S.Add(1)
	S.Add(2)
	R := NewSet(0)
	R.Add(2)
	R.Add(3)
	S.Union(R)
	if S.Size() != 3 {
		t.Errorf("union should have 3 items, has %d", S.Size())
	}
	S.Difference(R)
	if S.Size() != 1 || !S.Contains(1) {
		t.Errorf("difference should be {1}, is %v", S.Values())
	}
}

func TestSetSubset(t *testing.T) {
	S := NewSet(0)
	for i := 1; i <= 6; i++ {
		S.Add(i)
	}
	S.Subset(func(el interface{}) bool {
		return el.(int)%2 == 0
	})
	if S.Size() != 3 {
		t.Errorf("subset of even numbers should have 3 items, has %d", S.Size())
	}
}

func TestSetEquals(t *testing.T) {
	S := NewSet(0)
	S.Add("x")
	S.Add("y")
	R := NewSet(0)
	R.Add("y")
	R.Add("x")
	if !S.Equals(R) {
		t.Errorf("sets with equal content should be equal")
	}
	R.Add("z")
	if S.Equals(R) {
		t.Errorf("sets of different size should not be equal")
	}
}

// Iteration has to visit items which are appended while the iteration is
// running. Closure computations rely on this.
func TestSetSelfExtendingIteration(t *testing.T) {
	S := NewSet(0)
	S.Add(1)
	visited := 0
	S.IterateOnce()
	for S.Next() {
		n := S.Item().(int)
		visited++
		if n < 5 {
			S.Add(n + 1)
		}
	}
	if visited != 5 {
		t.Errorf("iteration should have visited 5 items, visited %d", visited)
	}
	if S.Size() != 5 {
		t.Errorf("set should have grown to 5 items, has %d", S.Size())
	}
}

func TestSetRemoveDuringIteration(t *testing.T) {
	S := NewSet(0)
	for i := 1; i <= 4; i++ {
		S.Add(i)
	}
	var visited []int
	S.IterateOnce()
	for S.Next() {
		n := S.Item().(int)
		visited = append(visited, n)
		if n == 2 {
			S.Remove(1) // remove an item before the cursor
		}
	}
	if len(visited) != 4 {
		t.Errorf("iteration should have visited all 4 items, visited %v", visited)
	}
}
