package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	start := time.Date(2021, 2, 17, 12, 0, 0, 0, time.UTC)

	cl := NewClock()
	assert.True(t, cl.Paused)
	assert.Equal(t, time.Duration(0), cl.Total(start.Add(time.Minute)))

	cl.Resume(start)
	assert.Equal(t, 30*time.Second, cl.Total(start.Add(30*time.Second)))

	// Resuming a running clock keeps the original start.
	cl.Resume(start.Add(10 * time.Second))
	assert.Equal(t, 30*time.Second, cl.Total(start.Add(30*time.Second)))

	cl.Pause(start.Add(40 * time.Second))
	assert.Equal(t, 40*time.Second, cl.Total(start.Add(time.Hour)))
	assert.Equal(t, "0:40", cl.String())

	cl.Pause(start.Add(time.Hour))
	assert.Equal(t, 40*time.Second, cl.Elapsed)

	cl.Resume(start.Add(time.Minute))
	cl.Pause(start.Add(2*time.Minute + 5*time.Second))
	assert.Equal(t, "1:45", cl.String())

	cl.Reset()
	assert.True(t, cl.Paused)
	assert.Equal(t, time.Duration(0), cl.Elapsed)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "0:09", FormatDuration(9*time.Second+900*time.Millisecond))
	assert.Equal(t, "12:01", FormatDuration(12*time.Minute+time.Second))
}

func TestGameClockStopsOnGameOver(t *testing.T) {
	g, _, _ := newTestGame(t, "clock")
	assert.Equal(t, time.Duration(0), g.Snapshot().Elapsed)

	g.Start()
	topOut(t, g)
	require.True(t, g.Snapshot().GameOver())

	first := g.Snapshot().Elapsed
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, first, g.Snapshot().Elapsed)

	g.Reset()
	time.Sleep(5 * time.Millisecond)
	assert.Less(t, time.Duration(0), g.Snapshot().Elapsed)
}
