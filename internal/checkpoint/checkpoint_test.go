package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histmat/internal/config"
	"histmat/internal/world"
)

func testState(t *testing.T, tick uint64) *world.State {
	t.Helper()
	s, err := world.New(tick,
		[]world.Entity{
			{ID: "worker", Name: "Workers", Kind: world.KindWorker, Wealth: 0.5, Organization: 0.2, Consciousness: 0.1, Survival: 0.95, Active: true},
			{ID: "owner", Name: "Owners", Kind: world.KindOwner, Wealth: 0.9, Territory: 0.6, Survival: 0.99, Active: true},
		},
		[]world.Relationship{
			{SourceID: "owner", TargetID: "worker", Kind: world.RelationExtraction, ValueFlow: 0.2, Tension: 0.3},
		},
		world.Economy{WageRate: 0.4, AccumulatedRent: 1.5},
		[]string{"tick committed"},
	)
	require.NoError(t, err)
	return s
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "ckpt.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{"file": fs, "sqlite": sq}
}

func TestRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			cp := New(testState(t, 42), config.Default(), "pre-crisis save")
			require.NoError(t, store.Save(cp))

			got, err := store.Load(cp.Metadata.ID)
			require.NoError(t, err)
			assert.True(t, cp.State.Equal(got.State))
			assert.Equal(t, cp.Metadata.ID, got.Metadata.ID)
			assert.Equal(t, cp.Metadata.Tick, got.Metadata.Tick)
			assert.Equal(t, cp.Metadata.Description, got.Metadata.Description)
			assert.True(t, cp.Metadata.CreatedAt.Equal(got.Metadata.CreatedAt))
			assert.Equal(t, cp.Config.Coefficients, got.Config.Coefficients)
		})
	}
}

func TestLoadNotFound(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load("missing")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLoadCorrupted(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad"+fileExt), []byte("not a checkpoint"), 0o644))

	_, err = fs.Load("bad")
	var cerr *CorruptError
	require.ErrorAs(t, err, &cerr)
}

func TestLoadSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, nil)
	require.NoError(t, err)

	cp := New(testState(t, 7), config.Default(), "from the future")
	cp.Metadata.SchemaVersion = SchemaVersion + 1
	require.NoError(t, fs.Save(cp))

	_, err = fs.Load(cp.Metadata.ID)
	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, SchemaVersion+1, serr.Got)
}

func TestListOrderedByTick(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, tick := range []uint64{30, 10, 20} {
				require.NoError(t, store.Save(New(testState(t, tick), config.Default(), "")))
			}
			metas, err := store.List()
			require.NoError(t, err)
			require.Len(t, metas, 3)
			assert.Equal(t, uint64(10), metas[0].Tick)
			assert.Equal(t, uint64(30), metas[2].Tick)
		})
	}
}

func TestDeleteAbsentKeyOK(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Delete("never-existed"))
		})
	}
}

func TestAutoCheckpointerIntervalAndRetention(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	auto := NewAutoCheckpointer(fs, 10, 2, nil)
	require.NoError(t, auto.OnSimulationStart(testState(t, 0), config.Default()))

	prev := testState(t, 0)
	for tick := uint64(1); tick <= 35; tick++ {
		next := testState(t, tick)
		require.NoError(t, auto.OnTick(prev, next))
		prev = next
	}

	// Writes at 0, 10, 20, 30; retention 2 keeps only the newest two.
	metas, err := fs.List()
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, uint64(20), metas[0].Tick)
	assert.Equal(t, uint64(30), metas[1].Tick)
}
