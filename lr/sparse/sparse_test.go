package sparse

import "testing"

func TestMatrixSetAndGet(t *testing.T) {
	M := NewIntMatrix(10, 10, DefaultNullValue)
	M.Set(2, 3, 4711)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected value at (2,3) to be 4711, is %d", v)
	}
	if v := M.Value(3, 2); v != DefaultNullValue {
		t.Errorf("expected empty position to read as null-value, is %d", v)
	}
	if cnt := M.ValueCount(); cnt != 1 {
		t.Errorf("expected 1 position to be set, counted %d", cnt)
	}
}

func TestMatrixAddSecondValue(t *testing.T) {
	M := NewIntMatrix(5, 5, DefaultNullValue)
	M.Add(1, 1, 7)
	M.Add(1, 1, 8)
	a, b := M.Values(1, 1)
	if a != 7 || b != 8 {
		t.Errorf("expected pair (7,8) at (1,1), got (%d,%d)", a, b)
	}
	if cnt := M.ValueCount(); cnt != 1 {
		t.Errorf("pair should occupy a single position, counted %d", cnt)
	}
}

func TestMatrixInsertionOrder(t *testing.T) {
	M := NewIntMatrix(8, 8, DefaultNullValue)
	M.Set(5, 1, 50)
	M.Set(0, 7, 7)
	M.Set(5, 0, 49)
	M.Set(2, 2, 22)
	probes := []struct {
		i, j uint
		v    int32
	}{
		{0, 7, 7}, {2, 2, 22}, {5, 0, 49}, {5, 1, 50},
	}
	for _, p := range probes {
		if v := M.Value(p.i, p.j); v != p.v {
			t.Errorf("expected %d at (%d,%d), got %d", p.v, p.i, p.j, v)
		}
	}
}

func TestMatrixColumns(t *testing.T) {
	M := NewIntMatrix(4, 20, DefaultNullValue)
	M.Set(2, 9, 1)
	M.Set(2, 4, 1)
	M.Set(1, 5, 1)
	M.Set(3, 0, 1)
	cols := M.Columns(2)
	if len(cols) != 2 || cols[0] != 4 || cols[1] != 9 {
		t.Errorf("expected columns [4 9] for row 2, got %v", cols)
	}
	if cols := M.Columns(0); len(cols) != 0 {
		t.Errorf("expected no columns for empty row, got %v", cols)
	}
}
