package view

import (
	"reflect"
	"testing"

	"github.com/dshills/vimview/internal/debugger"
)

func TestLocationCacheDedup(t *testing.T) {
	var c LocationCache
	l1 := debugger.Location{File: "/src/a.c", Line: 42}
	l2 := debugger.Location{File: "/src/b.c", Line: 7}

	if !c.ShouldUpdate(l1) {
		t.Error("first update should be true")
	}
	if c.ShouldUpdate(l1) {
		t.Error("repeated location should be suppressed")
	}
	if !c.ShouldUpdate(l2) {
		t.Error("different location should pass")
	}
	if !c.ShouldUpdate(l1) {
		t.Error("returning to an earlier location should pass")
	}
}

func TestLocationCacheLineChangeOnly(t *testing.T) {
	var c LocationCache
	c.ShouldUpdate(debugger.Location{File: "/src/a.c", Line: 42})
	if !c.ShouldUpdate(debugger.Location{File: "/src/a.c", Line: 43}) {
		t.Error("same file different line should pass")
	}
}

func TestLocationCacheForce(t *testing.T) {
	var c LocationCache
	loc := debugger.Location{File: "/src/a.c", Line: 42}
	c.Force(loc)
	if c.ShouldUpdate(loc) {
		t.Error("forced location should be recorded as shown")
	}
	got, ok := c.Last()
	if !ok || got != loc {
		t.Errorf("Last = %v/%v, want %v/true", got, ok, loc)
	}
}

func TestLocationCacheReset(t *testing.T) {
	var c LocationCache
	loc := debugger.Location{File: "/src/a.c", Line: 42}
	c.ShouldUpdate(loc)
	c.Reset()
	if _, ok := c.Last(); ok {
		t.Error("Last should report nothing after Reset")
	}
	if !c.ShouldUpdate(loc) {
		t.Error("location should pass after Reset")
	}
}

func TestMarkerTablePlaceRemove(t *testing.T) {
	tbl := NewMarkerTable()

	m := tbl.Place(3, "/src/a.c", 10)
	if m.Breakpoint != 3 || m.File != "/src/a.c" || m.Line != 10 {
		t.Errorf("Place = %+v", m)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len = %d, want 1", tbl.Len())
	}

	got, ok := tbl.Get(3)
	if !ok || got != m {
		t.Errorf("Get = %+v/%v, want %+v/true", got, ok, m)
	}

	removed, ok := tbl.Remove(3)
	if !ok || removed.SignID != m.SignID {
		t.Errorf("Remove = %+v/%v", removed, ok)
	}
	if _, ok := tbl.Get(3); ok {
		t.Error("marker should be gone after Remove")
	}
	if _, ok := tbl.Remove(3); ok {
		t.Error("second Remove should report false")
	}
}

func TestMarkerTableIDsNeverReused(t *testing.T) {
	tbl := NewMarkerTable()
	seen := make(map[int]bool)

	// Interleave creates and deletes; no two live markers may ever share
	// an id, and retired ids never come back.
	for i := 1; i <= 50; i++ {
		m := tbl.Place(i, "/src/a.c", i)
		if seen[m.SignID] {
			t.Fatalf("sign id %d reused", m.SignID)
		}
		seen[m.SignID] = true
		if i%3 == 0 {
			tbl.Remove(i)
		}
	}

	// Replacing an entry retires the old id too.
	m1 := tbl.Place(1, "/src/a.c", 1)
	m2 := tbl.Place(1, "/src/a.c", 2)
	if m1.SignID == m2.SignID {
		t.Error("replacement reused the retired sign id")
	}
}

func TestMarkerTableDiff(t *testing.T) {
	tbl := NewMarkerTable()
	tbl.Place(1, "/src/a.c", 10)
	tbl.Place(2, "/src/a.c", 11)

	toAdd, toRemove := tbl.Diff([]int{1, 3})
	if !reflect.DeepEqual(toAdd, []int{3}) {
		t.Errorf("toAdd = %v, want [3]", toAdd)
	}
	if !reflect.DeepEqual(toRemove, []int{2}) {
		t.Errorf("toRemove = %v, want [2]", toRemove)
	}
}

func TestMarkerTableDiffEmpty(t *testing.T) {
	tbl := NewMarkerTable()
	toAdd, toRemove := tbl.Diff(nil)
	if len(toAdd) != 0 || len(toRemove) != 0 {
		t.Errorf("Diff on empty table = %v/%v", toAdd, toRemove)
	}
}

func TestMarkerTableMarkersOrdered(t *testing.T) {
	tbl := NewMarkerTable()
	tbl.Place(5, "/src/a.c", 1)
	tbl.Place(2, "/src/b.c", 2)
	tbl.Place(9, "/src/c.c", 3)

	markers := tbl.Markers()
	if len(markers) != 3 {
		t.Fatalf("Markers len = %d, want 3", len(markers))
	}
	for i, want := range []int{2, 5, 9} {
		if markers[i].Breakpoint != want {
			t.Errorf("markers[%d].Breakpoint = %d, want %d", i, markers[i].Breakpoint, want)
		}
	}
}
