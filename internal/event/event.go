// Package event provides the typed event records published by systems
// during a tick and the synchronous bus that carries them.
package event

import (
	"fmt"
	"time"
)

// Type is the closed set of event kinds the engine emits.
type Type uint8

const (
	TypeExtraction   Type = iota // value moved along an extractive edge
	TypeEntityDied               // an entity's survival collapsed
	TypeProduction               // value created by labor
	TypeOrganization             // collective organization shifted
	TypeRepression               // state repression adjusted
	TypeReclaimed                // organized struggle reduced an extractive flow
	TypeCrisis                   // systemic crisis condition detected
	TypeRupture                  // organization exceeded control capacity
	TypeCheckpoint               // a durable checkpoint was written
)

var typeNames = [...]string{
	"extraction", "entity-died", "production", "organization",
	"repression", "reclaimed", "crisis", "rupture", "checkpoint",
}

// String returns the lowercase name of the event type.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("event(%d)", uint8(t))
}

// Payload carries event details. Keep values to strings and float64s so
// serialized events compare structurally after a round-trip.
type Payload map[string]any

// Event is an immutable record of something that happened during a tick.
type Event struct {
	Type    Type      `json:"type"`
	Tick    uint64    `json:"tick"`
	Payload Payload   `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// New builds an event stamped with the current wall-clock time.
func New(t Type, tick uint64, payload Payload) Event {
	return Event{Type: t, Tick: tick, Payload: payload, At: time.Now()}
}

// Equal compares events structurally, ignoring the At timestamp.
func (e Event) Equal(o Event) bool {
	if e.Type != o.Type || e.Tick != o.Tick || len(e.Payload) != len(o.Payload) {
		return false
	}
	for k, v := range e.Payload {
		if ov, ok := o.Payload[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
