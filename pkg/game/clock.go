package game

import (
	"fmt"
	"time"
)

// Clock measures how long a game has been played. It only advances while
// running, so pauses and the time after a game over are not counted.
type Clock struct {
	Elapsed time.Duration
	Paused  bool

	since time.Time
}

func NewClock() *Clock {
	return &Clock{Paused: true}
}

func (cl *Clock) String() string {
	return FormatDuration(cl.Elapsed)
}

// FormatDuration renders d as minutes and seconds.
func FormatDuration(d time.Duration) string {
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func (cl *Clock) Resume(now time.Time) {
	if !cl.Paused {
		return
	}

	cl.Paused = false
	cl.since = now
}

func (cl *Clock) Pause(now time.Time) {
	if cl.Paused {
		return
	}

	cl.Elapsed += now.Sub(cl.since)
	cl.Paused = true
}

func (cl *Clock) Reset() {
	cl.Elapsed = 0
	cl.Paused = true
}

// Total returns the play time up to now.
func (cl *Clock) Total(now time.Time) time.Duration {
	if cl.Paused {
		return cl.Elapsed
	}

	return cl.Elapsed + now.Sub(cl.since)
}
