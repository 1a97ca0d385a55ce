package bridge

import (
	"sort"
	"sync"

	"github.com/dshills/vimview/internal/debugger"
)

// State is the wire-backed debugger.Introspector. Event payloads keep it
// current; the engine reads it on demand.
type State struct {
	mu sync.RWMutex

	frame    debugger.Location
	hasFrame bool

	breakpoints map[int]debugger.Breakpoint

	// pendingBreak is a breakpoint-creation directive awaiting pickup by
	// the reply path.
	pendingBreak *debugger.Location
}

// NewState creates an empty state.
func NewState() *State {
	return &State{breakpoints: make(map[int]debugger.Breakpoint)}
}

// SetFrame records the current frame's source position.
func (s *State) SetFrame(loc debugger.Location) {
	s.mu.Lock()
	s.frame = loc
	s.hasFrame = loc.Valid()
	s.mu.Unlock()
}

// ClearFrame forgets the current frame.
func (s *State) ClearFrame() {
	s.mu.Lock()
	s.frame = debugger.Location{}
	s.hasFrame = false
	s.mu.Unlock()
}

// UpsertBreakpoint adds or replaces a breakpoint table entry.
func (s *State) UpsertBreakpoint(bp debugger.Breakpoint) {
	s.mu.Lock()
	s.breakpoints[bp.Number] = bp
	s.mu.Unlock()
}

// RemoveBreakpoint drops a breakpoint table entry.
func (s *State) RemoveBreakpoint(num int) {
	s.mu.Lock()
	delete(s.breakpoints, num)
	s.mu.Unlock()
}

// ReplaceBreakpoints swaps in a full table snapshot.
func (s *State) ReplaceBreakpoints(bps []debugger.Breakpoint) {
	table := make(map[int]debugger.Breakpoint, len(bps))
	for _, bp := range bps {
		table[bp.Number] = bp
	}
	s.mu.Lock()
	s.breakpoints = table
	s.mu.Unlock()
}

// CurrentFrame implements debugger.Introspector.
func (s *State) CurrentFrame() (debugger.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasFrame {
		return debugger.Location{}, debugger.ErrNoFrame
	}
	return s.frame, nil
}

// Breakpoints implements debugger.Introspector. Entries come back ordered
// by breakpoint number.
func (s *State) Breakpoints() ([]debugger.Breakpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nums := make([]int, 0, len(s.breakpoints))
	for num := range s.breakpoints {
		nums = append(nums, num)
	}
	sort.Ints(nums)

	out := make([]debugger.Breakpoint, 0, len(nums))
	for _, num := range nums {
		out = append(out, s.breakpoints[num])
	}
	return out, nil
}

// Breakpoint implements debugger.Introspector.
func (s *State) Breakpoint(num int) (debugger.Breakpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bp, ok := s.breakpoints[num]
	if !ok {
		return debugger.Breakpoint{}, debugger.NoBreakpointError(num)
	}
	return bp, nil
}

// CreateBreakpoint implements debugger.Introspector. Creation happens on
// the debugger side, so the location is recorded as a directive the reply
// carries back to the shim.
func (s *State) CreateBreakpoint(loc debugger.Location) error {
	s.mu.Lock()
	pending := loc
	s.pendingBreak = &pending
	s.mu.Unlock()
	return nil
}

// TakePendingBreak returns and clears the outstanding creation directive.
func (s *State) TakePendingBreak() (debugger.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingBreak == nil {
		return debugger.Location{}, false
	}
	loc := *s.pendingBreak
	s.pendingBreak = nil
	return loc, true
}

// Ensure State implements the introspection contract.
var _ debugger.Introspector = (*State)(nil)
