package world

// Document is the serialized form of a State, used by the checkpoint layer.
// The field set is covered by the checkpoint JSON schema; bump the
// checkpoint schema version when changing it.
type Document struct {
	Tick          uint64         `json:"tick"`
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
	Economy       Economy        `json:"economy"`
	Log           []string       `json:"log"`
}

// Doc converts the snapshot to its serialized document form.
func (s *State) Doc() Document {
	return Document{
		Tick:          s.tick,
		Entities:      s.Entities(),
		Relationships: s.Relationships(),
		Economy:       s.economy,
		Log:           s.Log(),
	}
}

// FromDoc reconstructs a validated snapshot from its document form.
// Reloading always produces a fresh State value.
func FromDoc(d Document) (*State, error) {
	return New(d.Tick, d.Entities, d.Relationships, d.Economy, d.Log)
}
