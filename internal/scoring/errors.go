package scoring

import "fmt"

// ShapeMismatchError is returned when two vectors of different dimension are compared,
// or when an embedding backend returns vectors of the wrong dimension
type ShapeMismatchError struct {
	Left  int
	Right int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: dimension %d vs %d", e.Left, e.Right)
}
