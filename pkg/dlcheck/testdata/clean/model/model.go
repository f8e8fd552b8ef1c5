package model

import "example.com/clean/state"

type Point struct {
	X, Y int
}

type Counter struct {
	count state.State[int]
}

func (c *Counter) Add(p Point) { c.count.Set(c.count.Get() + p.X) }
