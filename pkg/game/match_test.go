package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

func TestNickname(t *testing.T) {
	assert.Equal(t, "Anonymous", Nickname(""))
	assert.Equal(t, "Anonymous", Nickname("   "))
	assert.Equal(t, "bobby", Nickname("bob by"))
	assert.Equal(t, "abcdefghij", Nickname("abcdefghijklmnop"))
	assert.NotEmpty(t, RandomNickname())
}

func newTestMatch(t *testing.T, names ...string) (*Match, *manualTickers, *recorder) {
	t.Helper()

	ts := &manualTickers{}
	rec := &recorder{}

	m, err := NewMatch(names, Options{Seed: 7, Ticker: ts.New}, rec.Out)
	require.NoError(t, err)

	t.Cleanup(m.Stop)

	return m, ts, rec
}

func TestNewMatch(t *testing.T) {
	_, err := NewMatch(nil, Options{}, nil)
	assert.Error(t, err)
	_, err = NewMatch([]string{"a", "b", "c"}, Options{}, nil)
	assert.Error(t, err)

	m, _, _ := newTestMatch(t, "alice smith", "")
	require.Len(t, m.Players, 2)

	assert.Equal(t, 0, m.Players[0].Player)
	assert.Equal(t, "alicesmith", m.Players[0].Name)
	assert.Equal(t, 1, m.Players[1].Player)
	assert.NotEmpty(t, m.Players[1].Name)

	assert.Equal(t, m.Players[0].Seed, m.Players[1].Seed)
	assert.Nil(t, m.Player(2))
	assert.Nil(t, m.Player(-1))
}

func TestMatchSharesPieces(t *testing.T) {
	m, _, _ := newTestMatch(t, "p1", "p2")
	m.Start()

	a := m.Players[0].Snapshot()
	b := m.Players[1].Snapshot()

	assert.Equal(t, a.Current.Type, b.Current.Type)
	assert.Equal(t, a.Next.Type, b.Next.Type)
}

func TestMatchProcessAction(t *testing.T) {
	m, _, rec := newTestMatch(t, "p1", "p2")
	m.Start()

	x0 := m.Players[0].Snapshot().Current.X
	x1 := m.Players[1].Snapshot().Current.X

	assert.True(t, m.ProcessAction(0, event.ActionMoveLeft))
	assert.Equal(t, x0-1, m.Players[0].Snapshot().Current.X)
	assert.Equal(t, x1, m.Players[1].Snapshot().Current.X)

	assert.False(t, m.ProcessAction(2, event.ActionMoveLeft))

	var last *event.DrawEvent
	for _, e := range rec.Events() {
		if ev, ok := e.(*event.DrawEvent); ok {
			last = ev
		}
	}
	require.NotNil(t, last)
	assert.Equal(t, 0, last.Player)
}

func TestMatchLeaderAndOver(t *testing.T) {
	m, ts, _ := newTestMatch(t, "p1", "p2")
	m.Start()

	assert.Equal(t, m.Players[0], m.Leader())

	p := m.Players[1]
	p.Game.Lock()
	p.score = 300
	p.Game.Unlock()

	assert.Equal(t, p, m.Leader())
	assert.False(t, m.Over())

	for _, p := range m.Players {
		p.Game.Lock()
		p.gameOverL()
		p.Game.Unlock()
	}
	assert.True(t, m.Over())

	tickers := ts.Len()
	m.Reset()

	assert.False(t, m.Over())
	assert.Equal(t, tickers+2, ts.Len())
	assert.Equal(t, m.Players[0].Seed, m.Players[1].Seed)
	for _, p := range m.Players {
		assert.Equal(t, StateFalling, p.State())
		assert.Equal(t, 0, p.Score())
	}
}
