package state

// State is an opaque mutable cell.
type State[T any] struct {
	v *T
}

func (s State[T]) Get() T  { return *s.v }
func (s State[T]) Set(v T) { *s.v = v }
