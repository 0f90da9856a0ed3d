// Package ticks provides a wrapping millisecond counter and the
// wraparound-safe arithmetic needed to compare values taken from it.
package ticks

import (
	"sync/atomic"
	"time"
)

// Ms is a monotonic millisecond timestamp that wraps at 2^32.
type Ms uint32

// Diff returns a-b in milliseconds. The result is correct as long as the two
// timestamps are less than 2^31 ms apart, regardless of wrapping.
func Diff(a, b Ms) int32 {
	return int32(a - b)
}

// Add returns t advanced by d milliseconds.
func Add(t Ms, d int32) Ms {
	return Ms(uint32(t) + uint32(d))
}

// Elapsed reports whether at least d milliseconds separate start and now.
func Elapsed(now, start Ms, d time.Duration) bool {
	return int64(Diff(now, start)) >= d.Milliseconds()
}

type Clock interface {
	Now() Ms
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() Ms {
	return Ms(uint32(time.Since(c.start).Milliseconds()))
}

// ManualClock is advanced explicitly, mostly from tests.
type ManualClock struct {
	now atomic.Uint32
}

func NewManualClock(start Ms) *ManualClock {
	c := &ManualClock{}
	c.now.Store(uint32(start))
	return c
}

func (c *ManualClock) Now() Ms {
	return Ms(c.now.Load())
}

func (c *ManualClock) Advance(d time.Duration) Ms {
	return Ms(c.now.Add(uint32(d.Milliseconds())))
}

func (c *ManualClock) Set(t Ms) {
	c.now.Store(uint32(t))
}
