package view

import (
	"sort"

	"github.com/dshills/vimview/internal/debugger"
)

// LocationCache remembers the last location shown in the editor.
//
// The cache is optimistic: ShouldUpdate records the new location before
// the caller attempts the send, and a failed send is not rolled back.
type LocationCache struct {
	last  debugger.Location
	valid bool
}

// ShouldUpdate reports whether loc differs from the last shown location,
// recording loc as shown when it does.
func (c *LocationCache) ShouldUpdate(loc debugger.Location) bool {
	if c.valid && c.last == loc {
		return false
	}
	c.last = loc
	c.valid = true
	return true
}

// Force records loc as shown regardless of the previous value. Used by
// explicit user commands, which bypass suppression.
func (c *LocationCache) Force(loc debugger.Location) {
	c.last = loc
	c.valid = true
}

// Last returns the last shown location, if any.
func (c *LocationCache) Last() (debugger.Location, bool) {
	return c.last, c.valid
}

// Reset forgets the last shown location.
func (c *LocationCache) Reset() {
	c.last = debugger.Location{}
	c.valid = false
}

// Marker is a Vim sign standing in for one debugger breakpoint.
type Marker struct {
	// Breakpoint is the debugger's breakpoint number.
	Breakpoint int

	// SignID is the engine-assigned sign id.
	SignID int

	// File and Line locate the sign.
	File string
	Line int
}

// MarkerTable owns the breakpoint-number-to-sign mapping for a session.
//
// Sign ids increase monotonically and are never reused while an entry is
// live. At most one marker exists per breakpoint number.
type MarkerTable struct {
	markers map[int]Marker
	nextID  int
}

// firstSignID keeps vimview's sign ids out of the range other Vim plugins
// typically start at.
const firstSignID = 5001

// NewMarkerTable creates an empty marker table.
func NewMarkerTable() *MarkerTable {
	return &MarkerTable{
		markers: make(map[int]Marker),
		nextID:  firstSignID,
	}
}

// Place allocates a marker for breakpoint num at file:line. An existing
// marker for num is replaced, its id retired.
func (t *MarkerTable) Place(num int, file string, line int) Marker {
	m := Marker{
		Breakpoint: num,
		SignID:     t.nextID,
		File:       file,
		Line:       line,
	}
	t.nextID++
	t.markers[num] = m
	return m
}

// Remove drops the marker for breakpoint num, returning it for sign
// removal. The mapping entry is dropped whether or not the caller manages
// to remove the sign remotely.
func (t *MarkerTable) Remove(num int) (Marker, bool) {
	m, ok := t.markers[num]
	if ok {
		delete(t.markers, num)
	}
	return m, ok
}

// Get returns the live marker for breakpoint num, if any.
func (t *MarkerTable) Get(num int) (Marker, bool) {
	m, ok := t.markers[num]
	return m, ok
}

// Len returns the number of live markers.
func (t *MarkerTable) Len() int {
	return len(t.markers)
}

// Markers returns the live markers ordered by breakpoint number.
func (t *MarkerTable) Markers() []Marker {
	nums := make([]int, 0, len(t.markers))
	for num := range t.markers {
		nums = append(nums, num)
	}
	sort.Ints(nums)

	out := make([]Marker, 0, len(nums))
	for _, num := range nums {
		out = append(out, t.markers[num])
	}
	return out
}

// Diff compares the live mapping against the debugger's current
// breakpoint-number set. toAdd are numbers with no live marker; toRemove
// are live marker numbers no longer present. Both are sorted. Callers
// apply removals before additions so an eagerly-recycling server cannot
// collide ids.
func (t *MarkerTable) Diff(current []int) (toAdd, toRemove []int) {
	present := make(map[int]bool, len(current))
	for _, num := range current {
		present[num] = true
		if _, ok := t.markers[num]; !ok {
			toAdd = append(toAdd, num)
		}
	}
	for num := range t.markers {
		if !present[num] {
			toRemove = append(toRemove, num)
		}
	}
	sort.Ints(toAdd)
	sort.Ints(toRemove)
	return toAdd, toRemove
}
