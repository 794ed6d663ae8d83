// Package history provides the undo/redo stack of committed world
// snapshots with linear-timeline semantics and protected-tick pruning.
package history

import (
	"fmt"

	"histmat/internal/world"
)

// BoundaryError reports an undo or redo past the edge of recorded history.
// It is recoverable: callers typically disable the corresponding control.
type BoundaryError struct {
	Op string // "undo" or "redo"
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("history: cannot %s past the edge of recorded history", e.Op)
}

// Entry pairs a tick number with the snapshot committed at that tick.
type Entry struct {
	Tick  uint64
	State *world.State
}

// Stack is an ordered sequence of entries plus a cursor. Entries only ever
// leave through Prune or through the future-truncation on Push; undo and
// redo just move the cursor. The stack is written only by its owning
// simulation (single-writer discipline).
type Stack struct {
	entries   []Entry
	current   int // index of the current entry, -1 when empty
	maxDepth  int // prune target; 0 = unbounded
	protected map[uint64]struct{}
}

// NewStack creates an empty stack. maxDepth bounds Prune; 0 disables it.
func NewStack(maxDepth int) *Stack {
	return &Stack{
		current:   -1,
		maxDepth:  maxDepth,
		protected: make(map[uint64]struct{}),
	}
}

// Len returns the number of recorded entries.
func (s *Stack) Len() int { return len(s.entries) }

// CurrentIndex returns the cursor position, -1 when empty.
func (s *Stack) CurrentIndex() int { return s.current }

// Current returns the snapshot at the cursor.
func (s *Stack) Current() (*world.State, bool) {
	if s.current < 0 {
		return nil, false
	}
	return s.entries[s.current].State, true
}

// Entries returns a copy of the recorded entries in tick order.
func (s *Stack) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Push appends a new entry and moves the cursor to it. If the cursor was
// not at the tail (an undo had occurred), the discarded future beyond it is
// dropped first: redo history does not survive a new push.
func (s *Stack) Push(tick uint64, state *world.State) {
	if s.current < len(s.entries)-1 {
		s.entries = s.entries[:s.current+1]
	}
	s.entries = append(s.entries, Entry{Tick: tick, State: state})
	s.current = len(s.entries) - 1
}

// Undo moves the cursor back one entry and returns the now-current
// snapshot. Fails with a *BoundaryError at the earliest entry.
func (s *Stack) Undo() (*world.State, error) {
	if s.current <= 0 {
		return nil, &BoundaryError{Op: "undo"}
	}
	s.current--
	return s.entries[s.current].State, nil
}

// Redo moves the cursor forward one entry and returns the now-current
// snapshot. Fails with a *BoundaryError at the latest entry.
func (s *Stack) Redo() (*world.State, error) {
	if s.current >= len(s.entries)-1 {
		return nil, &BoundaryError{Op: "redo"}
	}
	s.current++
	return s.entries[s.current].State, nil
}

// Protect marks a tick so Prune can never discard its entry.
func (s *Stack) Protect(tick uint64) {
	s.protected[tick] = struct{}{}
}

// Protected reports whether a tick is protected from pruning.
func (s *Stack) Protected(tick uint64) bool {
	_, ok := s.protected[tick]
	return ok
}

// Prune drops the oldest entries until at most maxDepth remain, never
// removing a protected tick or the entry at the cursor. A zero maxDepth is
// a no-op.
func (s *Stack) Prune() {
	if s.maxDepth <= 0 || len(s.entries) <= s.maxDepth {
		return
	}

	excess := len(s.entries) - s.maxDepth
	kept := make([]Entry, 0, len(s.entries))
	newCurrent := s.current
	for i, e := range s.entries {
		_, prot := s.protected[e.Tick]
		if excess > 0 && !prot && i != s.current {
			excess--
			if i < s.current {
				newCurrent--
			}
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	s.current = newCurrent
}
