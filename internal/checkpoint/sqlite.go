package checkpoint

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists checkpoints in a single SQLite database: metadata in
// columns for cheap listing, the compressed envelope as a BLOB.
type SQLiteStore struct {
	conn   *sqlx.DB
	logger *slog.Logger
}

// OpenSQLite opens or creates the checkpoint database at the given path.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open checkpoint db: %w", err)
	}

	st := &SQLiteStore{conn: conn, logger: logger}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate checkpoint db: %w", err)
	}
	return st, nil
}

func (st *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS checkpoints (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		schema_version INTEGER NOT NULL,
		payload BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_checkpoints_tick ON checkpoints(tick);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// Save writes or replaces the checkpoint row.
func (st *SQLiteStore) Save(cp *Checkpoint) error {
	data, err := encode(cp)
	if err != nil {
		return err
	}

	_, err = st.conn.Exec(`
		INSERT OR REPLACE INTO checkpoints
			(id, created_at, tick, description, schema_version, payload)
		VALUES (?, ?, ?, ?, ?, ?)`,
		cp.Metadata.ID,
		cp.Metadata.CreatedAt.Format(time.RFC3339Nano),
		cp.Metadata.Tick,
		cp.Metadata.Description,
		cp.Metadata.SchemaVersion,
		data,
	)
	if err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}

	st.logger.Info("checkpoint saved",
		"id", cp.Metadata.ID,
		"tick", cp.Metadata.Tick,
		"size", humanize.Bytes(uint64(len(data))),
	)
	return nil
}

// Load reads and decodes a checkpoint by id.
func (st *SQLiteStore) Load(key string) (*Checkpoint, error) {
	var payload []byte
	err := st.conn.Get(&payload, "SELECT payload FROM checkpoints WHERE id = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	return decode(key, payload)
}

type checkpointRow struct {
	ID            string `db:"id"`
	CreatedAt     string `db:"created_at"`
	Tick          uint64 `db:"tick"`
	Description   string `db:"description"`
	SchemaVersion int    `db:"schema_version"`
}

// List returns metadata for every stored checkpoint, ordered by tick then
// creation time.
func (st *SQLiteStore) List() ([]Metadata, error) {
	var rows []checkpointRow
	err := st.conn.Select(&rows, `
		SELECT id, created_at, tick, description, schema_version
		FROM checkpoints ORDER BY tick, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	out := make([]Metadata, 0, len(rows))
	for _, r := range rows {
		created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			st.logger.Warn("skipping checkpoint with bad timestamp", "id", r.ID, "error", err)
			continue
		}
		out = append(out, Metadata{
			ID:            r.ID,
			CreatedAt:     created,
			Tick:          r.Tick,
			Description:   r.Description,
			SchemaVersion: r.SchemaVersion,
		})
	}
	return out, nil
}

// Delete removes a checkpoint row. Deleting an absent key is not an error.
func (st *SQLiteStore) Delete(key string) error {
	if _, err := st.conn.Exec("DELETE FROM checkpoints WHERE id = ?", key); err != nil {
		return fmt.Errorf("delete checkpoint: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (st *SQLiteStore) Close() error { return st.conn.Close() }
