package checkpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"histmat/internal/config"
	"histmat/internal/world"
)

// envelope is the serialized checkpoint layout: a JSON document compressed
// with zstd. The layout is covered by envelopeSchema.
type envelope struct {
	Metadata Metadata       `json:"metadata"`
	State    world.Document `json:"state"`
	Config   config.Config  `json:"config"`
}

// encode serializes a checkpoint to its compressed wire form.
func encode(cp *Checkpoint) ([]byte, error) {
	doc, err := json.Marshal(envelope{
		Metadata: cp.Metadata,
		State:    cp.State.Doc(),
		Config:   cp.Config,
	})
	if err != nil {
		return nil, fmt.Errorf("encode checkpoint: %w", err)
	}

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("encode checkpoint: %w", err)
	}
	if _, err := zw.Write(doc); err != nil {
		zw.Close()
		return nil, fmt.Errorf("encode checkpoint: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("encode checkpoint: %w", err)
	}
	return buf.Bytes(), nil
}

// decode reconstructs a checkpoint from its wire form. Decompression or
// parse failures surface as *CorruptError, a version mismatch as
// *SchemaError.
func decode(key string, data []byte) (*Checkpoint, error) {
	zr, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &CorruptError{Key: key, Err: err}
	}
	defer zr.Close()

	doc, err := io.ReadAll(zr)
	if err != nil {
		return nil, &CorruptError{Key: key, Err: err}
	}

	if err := validateEnvelope(doc); err != nil {
		return nil, &CorruptError{Key: key, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(doc, &env); err != nil {
		return nil, &CorruptError{Key: key, Err: err}
	}

	if env.Metadata.SchemaVersion != SchemaVersion {
		return nil, &SchemaError{Key: key, Got: env.Metadata.SchemaVersion, Want: SchemaVersion}
	}

	state, err := world.FromDoc(env.State)
	if err != nil {
		return nil, &CorruptError{Key: key, Err: err}
	}

	return &Checkpoint{Metadata: env.Metadata, State: state, Config: env.Config}, nil
}
