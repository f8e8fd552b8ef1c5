package app

import (
	"context"
	"time"

	"example.com/fixture/coll"
	"example.com/fixture/state"
)

type Point struct {
	X, Y int
}

func (p Point) String() string { return "" }

type Counter struct {
	count state.State[int]
}

func NewCounter() *Counter { return &Counter{count: state.New(0)} }

func (c *Counter) Increment() { c.count.Set(c.count.Get() + 1) }

type BadCounter struct {
	Count state.State[int]
}

func (c *BadCounter) Increment() {}

type Account struct {
	Balance int
}

func (a *Account) Deposit(n int) { a.Balance += n }

type Money struct {
	cents int64
}

func (m Money) Equal(o Money) bool { return m.cents == o.cents }

type Wrapper struct {
	Items coll.List[BadCounter]
}

type Polygon struct {
	Vertices coll.List[Point]
}

type Request struct {
	Path string
	At   time.Time
	ID   [16]byte
}

type Service struct {
	counter *Counter
	scratch []byte `dlcheck:"ignore"`
	_       struct{}
}

func NewService(c *Counter) *Service { return &Service{counter: c} }

func (s *Service) Handle(ctx context.Context, req Request) error { return nil }

//dlcheck:ignore
func (s *Service) Debug(raw []byte) {}

type Color int

const (
	Red Color = iota
	Green
)

func (c Color) String() string { return "" }

type Handler func(Request) error

type Store interface {
	Get(key string) (Point, error)
}

// Legacy predates the architecture rules.
//
//dlcheck:ignore
type Legacy struct {
	Raw []byte
}

//dlcheck:tag
type Marker struct{}

// Settings is a value type with a pointer-receiver decoder.
//
//dlcheck:data
type Settings struct {
	Name string
}

func (s *Settings) Decode(b []byte) error { return nil }

type Names []string

type Grid struct {
	Cells [3][3]Color
}

type Alias = Point
