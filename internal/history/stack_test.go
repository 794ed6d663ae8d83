package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histmat/internal/world"
)

func snapshot(t *testing.T, tick uint64) *world.State {
	t.Helper()
	s, err := world.New(tick, []world.Entity{{
		ID:       fmt.Sprintf("e%d", tick),
		Name:     "entity",
		Kind:     world.KindWorker,
		Wealth:   1,
		Survival: 1,
		Active:   true,
	}}, nil, world.Economy{}, nil)
	require.NoError(t, err)
	return s
}

func TestEmptyStack(t *testing.T) {
	s := NewStack(0)
	assert.Equal(t, -1, s.CurrentIndex())
	_, ok := s.Current()
	assert.False(t, ok)

	var berr *BoundaryError
	_, err := s.Undo()
	require.ErrorAs(t, err, &berr)
	_, err = s.Redo()
	require.ErrorAs(t, err, &berr)
}

func TestPushMovesCursor(t *testing.T) {
	s := NewStack(0)
	s.Push(0, snapshot(t, 0))
	s.Push(1, snapshot(t, 1))

	assert.Equal(t, 2, s.Len())
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, uint64(1), cur.Tick())
}

func TestUndoRedo(t *testing.T) {
	s := NewStack(0)
	for tick := uint64(0); tick < 3; tick++ {
		s.Push(tick, snapshot(t, tick))
	}

	st, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), st.Tick())

	st, err = s.Undo()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), st.Tick())

	var berr *BoundaryError
	_, err = s.Undo()
	require.ErrorAs(t, err, &berr)

	st, err = s.Redo()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), st.Tick())
}

func TestPushAfterUndoDiscardsFuture(t *testing.T) {
	s := NewStack(0)
	s.Push(0, snapshot(t, 0))
	s.Push(1, snapshot(t, 1))

	_, err := s.Undo()
	require.NoError(t, err)

	s.Push(1, snapshot(t, 1))

	// The discarded future must be unreachable.
	var berr *BoundaryError
	_, err = s.Redo()
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, 2, s.Len())
}

func TestPruneRespectsMaxDepth(t *testing.T) {
	s := NewStack(3)
	for tick := uint64(0); tick < 6; tick++ {
		s.Push(tick, snapshot(t, tick))
	}

	s.Prune()
	require.Equal(t, 3, s.Len())
	entries := s.Entries()
	assert.Equal(t, uint64(3), entries[0].Tick)
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, uint64(5), cur.Tick())
}

func TestPruneNeverRemovesProtectedTick(t *testing.T) {
	s := NewStack(2)
	for tick := uint64(0); tick < 6; tick++ {
		s.Push(tick, snapshot(t, tick))
	}
	s.Protect(0)

	s.Prune()
	entries := s.Entries()
	ticks := make([]uint64, len(entries))
	for i, e := range entries {
		ticks[i] = e.Tick
	}
	assert.Contains(t, ticks, uint64(0), "protected tick must survive")
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, uint64(5), cur.Tick(), "current entry must survive")
}

func TestPruneNeverRemovesCurrentEntry(t *testing.T) {
	s := NewStack(1)
	for tick := uint64(0); tick < 4; tick++ {
		s.Push(tick, snapshot(t, tick))
	}
	// Move the cursor into the middle, then prune hard.
	_, err := s.Undo()
	require.NoError(t, err)
	_, err = s.Undo()
	require.NoError(t, err)

	s.Prune()
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, uint64(1), cur.Tick())
}

func TestPruneKeepsUndoConsistentAfterwards(t *testing.T) {
	s := NewStack(3)
	for tick := uint64(0); tick < 8; tick++ {
		s.Push(tick, snapshot(t, tick))
	}
	s.Prune()

	st, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, uint64(6), st.Tick())
}
