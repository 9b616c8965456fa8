package utils

import (
	"time"

	m "pfeifer.dev/motorplan/math"
)

// UpdateTracker keeps a moving average of the time between updates.
type UpdateTracker struct {
	LastTime time.Time
	Time     time.Time
	DiffMA   m.MovingAverage
}

func (u *UpdateTracker) Init(maLength int) {
	u.LastTime = time.Now()
	u.Time = u.LastTime
	u.DiffMA.Init(maLength)
}

func (u *UpdateTracker) Update() {
	u.UpdateAt(time.Now())
}

func (u *UpdateTracker) UpdateAt(now time.Time) {
	u.LastTime = u.Time
	u.Time = now
	u.DiffMA.Update(u.Time.Sub(u.LastTime).Seconds())
}

// Period is the average seconds between updates.
func (u *UpdateTracker) Period() float64 {
	return u.DiffMA.Estimate
}
