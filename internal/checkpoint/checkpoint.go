// Package checkpoint provides durable, versioned {metadata, state, config}
// bundles and the stores that persist them.
package checkpoint

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"histmat/internal/config"
	"histmat/internal/world"
)

// SchemaVersion is the current checkpoint envelope version. A mismatch on
// load fails with a *SchemaError; there is no best-effort migration.
const SchemaVersion = 1

// ErrNotFound is returned when loading a checkpoint that does not exist.
var ErrNotFound = errors.New("checkpoint not found")

// CorruptError reports a checkpoint whose bytes cannot be decoded or whose
// envelope fails schema validation. Corrupted data is never accepted.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("checkpoint %s corrupted: %v", e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// SchemaError reports a schema-version mismatch on load.
type SchemaError struct {
	Key  string
	Got  int
	Want int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("checkpoint %s: schema version %d, want %d", e.Key, e.Got, e.Want)
}

// Metadata describes a checkpoint without its payload.
type Metadata struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Tick          uint64    `json:"tick"`
	Description   string    `json:"description"`
	SchemaVersion int       `json:"schema_version"`
}

// Checkpoint is the durable bundle: metadata, the full world snapshot, and
// the run configuration. Immutable once built; reloading always produces a
// fresh State value.
type Checkpoint struct {
	Metadata Metadata
	State    *world.State
	Config   config.Config
}

// New builds a checkpoint of the given snapshot with a fresh id.
func New(state *world.State, cfg config.Config, description string) *Checkpoint {
	return &Checkpoint{
		Metadata: Metadata{
			ID:            uuid.NewString(),
			CreatedAt:     time.Now().UTC(),
			Tick:          state.Tick(),
			Description:   description,
			SchemaVersion: SchemaVersion,
		},
		State:  state,
		Config: cfg,
	}
}

// Store is the persistence sink for checkpoints, addressed by the
// checkpoint id. Implementations must round-trip a checkpoint exactly and
// must surface load failures as ErrNotFound, *CorruptError, or
// *SchemaError — never silently accept bad data.
type Store interface {
	Save(cp *Checkpoint) error
	Load(key string) (*Checkpoint, error)
	List() ([]Metadata, error) // ordered by tick, then creation time
	Delete(key string) error
	Close() error
}
