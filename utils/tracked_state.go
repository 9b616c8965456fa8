package utils

import (
	"time"
)

// Tracker remembers the previous distinct value it was given.
type Tracker[T comparable] struct {
	LastValue   T
	Value       T
	UpdatedTime time.Time
	seen        bool
}

func (t *Tracker[T]) Update(val T) (updated bool) {
	if t.seen && t.Value == val {
		return false
	}
	if t.seen {
		t.LastValue = t.Value
	}
	t.seen = true
	t.UpdatedTime = time.Now()
	t.Value = val
	return true
}
