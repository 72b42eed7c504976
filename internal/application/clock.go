package application

import (
	"sync"
	"time"
)

// Clock interface supaya gampang ditest
type Clock interface {
	Now() time.Time
}

// SystemClock implementasi default, pakai time.Now()
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// StepClock advances by Step on every call to Now. Dipakai di test untuk
// mengukur elapsed time secara deterministik.
type StepClock struct {
	mu   sync.Mutex
	At   time.Time
	Step time.Duration
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.At
	c.At = c.At.Add(c.Step)
	return now
}
