package world

import "fmt"

// ValidationError reports malformed state-construction inputs: a dangling
// relationship reference, a duplicate or malformed id, or an out-of-range
// field. It is always fatal to the construction that produced it.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("world validation: %s: %s", e.Field, e.Msg)
}
