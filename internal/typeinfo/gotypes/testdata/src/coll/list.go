package coll

type node[T any] struct {
	value T
	next  *node[T]
}

// List is a persistent singly linked list.
type List[T any] struct {
	head *node[T]
	n    int
}

func (l List[T]) Push(v T) List[T] {
	return List[T]{head: &node[T]{value: v, next: l.head}, n: l.n + 1}
}

func (l List[T]) Len() int { return l.n }
