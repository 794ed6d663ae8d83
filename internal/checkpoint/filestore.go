package checkpoint

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

const fileExt = ".ckpt.zst"

// FileStore persists checkpoints as one compressed envelope per file in a
// directory, keyed by checkpoint id.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("checkpoint dir: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+fileExt)
}

// Save writes the checkpoint atomically (temp file + rename).
func (fs *FileStore) Save(cp *Checkpoint) error {
	data, err := encode(cp)
	if err != nil {
		return err
	}

	tmp := fs.path(cp.Metadata.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, fs.path(cp.Metadata.ID)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write checkpoint: %w", err)
	}

	fs.logger.Info("checkpoint saved",
		"id", cp.Metadata.ID,
		"tick", cp.Metadata.Tick,
		"size", humanize.Bytes(uint64(len(data))),
	)
	return nil
}

// Load reads and decodes a checkpoint by id.
func (fs *FileStore) Load(key string) (*Checkpoint, error) {
	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	return decode(key, data)
}

// List returns metadata for every readable checkpoint, ordered by tick then
// creation time. Unreadable files are skipped with a warning.
func (fs *FileStore) List() ([]Metadata, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	var out []Metadata
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), fileExt) {
			continue
		}
		key := strings.TrimSuffix(ent.Name(), fileExt)
		cp, err := fs.Load(key)
		if err != nil {
			fs.logger.Warn("skipping unreadable checkpoint", "key", key, "error", err)
			continue
		}
		out = append(out, cp.Metadata)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Tick != out[j].Tick {
			return out[i].Tick < out[j].Tick
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a checkpoint by id. Deleting an absent key is not an
// error.
func (fs *FileStore) Delete(key string) error {
	if err := os.Remove(fs.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete checkpoint: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (fs *FileStore) Close() error { return nil }
