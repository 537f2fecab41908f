package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/tetristerm/pkg/audio"
	"github.com/qnkhuat/tetristerm/pkg/config"
	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
)

func newTestClient() *Client {
	return &Client{
		draw:  make(chan event.DrawObject, drawQueueSize),
		sound: audio.NewService(nil, 1, nil),
	}
}

func TestConfiguredPlayers(t *testing.T) {
	cfg := config.Default()
	cfg.Players = 2
	cfg.Names = []string{"alice"}

	c := NewClient(cfg, audio.NewService(nil, 1, nil), game.LogStandard)

	// The title menu starts on the configured mode.
	assert.Equal(t, 1, c.title.GetCurrentItem())

	m, err := c.newMatch(c.cfg.Players)
	require.NoError(t, err)
	t.Cleanup(m.Stop)

	require.Len(t, m.Players, 2)
	assert.Equal(t, "alice", m.Players[0].Name)
	assert.NotEmpty(t, m.Players[1].Name)

	// A mode picked from the menu becomes the default and keeps the names.
	m, err = c.newMatch(1)
	require.NoError(t, err)
	t.Cleanup(m.Stop)

	require.Len(t, m.Players, 1)
	assert.Equal(t, 1, c.cfg.Players)
	assert.Equal(t, []string{"alice"}, c.cfg.Names)
}

func TestGameOverSurvivesFullDrawQueue(t *testing.T) {
	c := newTestClient()

	for i := 0; i < drawQueueSize; i++ {
		c.draw <- event.DrawBoards
	}

	c.handleEvent(&event.GameOverEvent{Score: 100})
	require.Len(t, c.draw, drawQueueSize)

	assert.Equal(t, []event.DrawObject{event.DrawBoards, event.DrawGameOver}, c.pendingDraws(<-c.draw))
	assert.Equal(t, []event.DrawObject{event.DrawBoards}, c.pendingDraws(<-c.draw))
}

func TestGameOverDrawnOnce(t *testing.T) {
	c := newTestClient()

	c.handleEvent(&event.DrawEvent{})
	c.handleEvent(&event.GameOverEvent{})
	require.Len(t, c.draw, 2)

	assert.Equal(t, []event.DrawObject{event.DrawBoards, event.DrawGameOver}, c.pendingDraws(<-c.draw))
	assert.Empty(t, c.pendingDraws(<-c.draw))

	c.handleEvent(&event.GameOverEvent{})
	assert.Equal(t, []event.DrawObject{event.DrawGameOver}, c.pendingDraws(<-c.draw))
}

func TestParsePercent(t *testing.T) {
	v, ok := parsePercent("40")
	assert.True(t, ok)
	assert.Equal(t, 0.4, v)

	v, ok = parsePercent("250")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	v, ok = parsePercent("-3")
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, ok = parsePercent("")
	assert.False(t, ok)

	assert.Equal(t, "50", percent(0.5))
}
