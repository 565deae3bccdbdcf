/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for parser tables (GOTO-table and ACTION-table).
Every entry in the table is either a single int32 or a pair (int32,int32).
Parse tables are mostly empty, so entries are stored COO-style as sorted
(row, column, value) triplets.

	https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package sparse

import (
	"fmt"
	"math"
	"sort"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//	M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//	M.Set(2, 3, 4711)              // set a value
//	v := M.Value(2, 3)             // returns 4711
//	M.Add(2, 3, 123)               // add a second value at the same position
//	cnt := M.ValueCount()          // still returns 1 (one position set)
//	v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Positions may hold up to two values. The second value exists for parse
// table construction, where a conflicting second entry must be remembered
// long enough to report it.
//
// Values cannot be deleted, but may be overwritten with the null-value.
// Space for null-values is not re-claimed.
type IntMatrix struct {
	values  []triplet
	rowcnt  uint
	colcnt  uint
	nullval int32
}

// Triplet values to store. Triplets are kept sorted by (row, col).
type triplet struct {
	row, col uint
	value    intPair
}

// NewIntMatrix creates a new matrix of size m x n. The 3rd argument is a
// null-value, indicating empty entries (use DefaultNullValue if you haven't
// any specific requirements).
func NewIntMatrix(m, n uint, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue int32 = math.MinInt32

// M returns the row count.
func (m *IntMatrix) M() uint {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() uint {
	return m.colcnt
}

// NullValue returns this matrix' null value.
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Value returns the primary value at position (i,j), or NullValue.
func (m *IntMatrix) Value(i, j uint) int32 {
	if at, ok := m.find(i, j); ok {
		return m.values[at].value.a
	}
	return m.nullval
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue).
func (m *IntMatrix) Values(i, j uint) (int32, int32) {
	if at, ok := m.find(i, j); ok {
		return m.values[at].value.a, m.values[at].value.b
	}
	return m.nullval, m.nullval
}

// Columns returns all columns of row i holding a value, in ascending order.
func (m *IntMatrix) Columns(i uint) []uint {
	var cols []uint
	at := sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, 0)
	})
	for ; at < len(m.values) && m.values[at].row == i; at++ {
		if m.values[at].value.a != m.nullval {
			cols = append(cols, m.values[at].col)
		}
	}
	return cols
}

// Set a value in the matrix at position (i,j), overwriting any previous
// values at this position.
func (m *IntMatrix) Set(i, j uint, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, false)
}

// Add a value in the matrix at position (i,j). The first value added at a
// position becomes the primary value, one more is kept as the secondary.
func (m *IntMatrix) Add(i, j uint, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, true)
}

func (m *IntMatrix) setOrAdd(i, j uint, value int32, doAdd bool) *IntMatrix {
	at, ok := m.find(i, j)
	if ok { // value already present
		if doAdd {
			v := m.values[at].value
			m.values[at].value = addIntValue(v, value, m.nullval)
		} else {
			m.values[at].value = newIntPair(value, m.nullval)
		}
		return m
	}
	tnew := triplet{row: i, col: j, value: newIntPair(value, m.nullval)}
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // shift greater triplets one to the right
	m.values[at] = tnew
	return m
}

// find locates the triplet for (i,j) with a binary search. It returns the
// index of the triplet and true, or the insertion position and false.
func (m *IntMatrix) find(i, j uint) (int, bool) {
	at := sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
	if at < len(m.values) && m.values[at].storedAt(i, j) {
		return at, true
	}
	return at, false
}

func addIntValue(v intPair, n int32, nullval int32) intPair {
	if v.a == nullval {
		v.a = n
	} else if v.b == nullval {
		v.b = n
	} else {
		v.b = n // entry is full, overwrite second
	}
	return v
}

func (t *triplet) storedLeftOf(i, j uint) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j uint) bool {
	return t.row == i && t.col == j
}

// we will store 2 int32 in one position
type intPair struct {
	a int32
	b int32
}

func (pr intPair) String() string {
	return fmt.Sprintf("[%d,%d]", pr.a, pr.b)
}

func newIntPair(a, b int32) intPair {
	return intPair{a, b}
}
