package state

// State is an opaque mutable cell.
type State[T any] struct {
	v *T
}

func New[T any](v T) State[T] { return State[T]{v: &v} }

func (s State[T]) Get() T  { return *s.v }
func (s State[T]) Set(v T) { *s.v = v }
