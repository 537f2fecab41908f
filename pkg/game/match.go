package game

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

// Match runs the games of all local players side by side. Every game draws
// from the same seed so players receive the same piece sequence.
type Match struct {
	Players []*Player

	opts Options

	*sync.Mutex
}

func NewMatch(names []string, opts Options, out func(interface{})) (*Match, error) {
	if len(names) == 0 || len(names) > MaxPlayers {
		return nil, fmt.Errorf("invalid number of players %d", len(names))
	}

	opts = opts.withDefaults()

	m := &Match{opts: opts, Mutex: new(sync.Mutex)}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			name = RandomNickname()
		}

		o := opts
		o.Player = i
		o.Name = name

		g, err := NewGame(o, out)
		if err != nil {
			return nil, fmt.Errorf("failed to create game for player %d: %w", i, err)
		}

		m.Players = append(m.Players, &Player{Player: i, Name: g.Name, Game: g})
	}

	return m, nil
}

func (m *Match) Start() {
	m.Lock()
	defer m.Unlock()

	for _, p := range m.Players {
		p.Start()
	}
}

// Reset starts a new round for every player with a fresh shared seed.
func (m *Match) Reset() {
	m.Lock()
	defer m.Unlock()

	seed := time.Now().UTC().UnixNano()
	for _, p := range m.Players {
		if err := p.reseed(seed); err != nil {
			p.Log(LogStandard, "failed to reseed: ", err)
		}

		p.Game.Reset()
	}
}

func (m *Match) Stop() {
	m.Lock()
	defer m.Unlock()

	for _, p := range m.Players {
		p.Stop()
	}
}

func (m *Match) Player(player int) *Player {
	if player < 0 || player >= len(m.Players) {
		return nil
	}

	return m.Players[player]
}

// ProcessAction routes a command to the given player's game.
func (m *Match) ProcessAction(player int, a event.GameAction) bool {
	p := m.Player(player)
	if p == nil {
		return false
	}

	return p.ProcessAction(a)
}

// Over reports whether every player's game has ended.
func (m *Match) Over() bool {
	for _, p := range m.Players {
		if p.State() != StateGameOver {
			return false
		}
	}

	return true
}

// Leader returns the player with the highest score. Ties go to the lower
// player index.
func (m *Match) Leader() *Player {
	var leader *Player
	var best int
	for _, p := range m.Players {
		score := p.Score()
		if leader == nil || score > best {
			leader = p
			best = score
		}
	}

	return leader
}
