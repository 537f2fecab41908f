package game

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const (
	DefaultFallTime  = 500 * time.Millisecond
	DefaultLineBonus = 100
)

const (
	LogStandard = iota
	LogDebug
	LogVerbose
)

type State int

const (
	StateIdle State = iota
	StateSpawning
	StateFalling
	StateLocking
	StateClearing
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSpawning:
		return "Spawning"
	case StateFalling:
		return "Falling"
	case StateLocking:
		return "Locking"
	case StateClearing:
		return "Clearing"
	case StateGameOver:
		return "GameOver"
	default:
		return strconv.Itoa(int(s))
	}
}

type Options struct {
	Width     int
	Height    int
	FallTime  time.Duration
	LineBonus int

	// Seed of the piece randomizer. Zero picks one from the clock.
	Seed       int64
	Randomizer string

	Player int
	Name   string

	LogLevel int

	// Ticker creates the fall timer. Nil uses NewTimeTicker.
	Ticker TickerFunc
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = mino.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = mino.DefaultHeight
	}
	if o.FallTime == 0 {
		o.FallTime = DefaultFallTime
	}
	if o.LineBonus == 0 {
		o.LineBonus = DefaultLineBonus
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UTC().UnixNano()
	}
	if o.Ticker == nil {
		o.Ticker = NewTimeTicker
	}

	return o
}

// Game is a single player's board and the state machine driving it. All
// mutation happens under the embedded mutex, so the fall timer and player
// input never interleave. Events are delivered through out after the mutex
// is released, in the order they were raised. Handlers may call Snapshot but
// must not call back into mutating methods synchronously.
type Game struct {
	ID         string
	Player     int
	Name       string
	Seed       int64
	Randomizer string
	FallTime   time.Duration
	LineBonus  int
	LogLevel   int

	// Metric label, the player index. Names are not unique.
	label string

	board    *mino.Board
	movement *mino.Movement
	rand     mino.Randomizer

	current *mino.Piece
	next    *mino.Piece

	state   State
	score   int
	lines   int
	stopped bool

	clock *Clock

	newTicker  TickerFunc
	ticker     Ticker
	stop       chan struct{}
	generation int

	out     func(interface{})
	pending []interface{}
	outMu   *sync.Mutex

	*sync.Mutex
}

func NewGame(opts Options, out func(interface{})) (*Game, error) {
	opts = opts.withDefaults()

	if opts.FallTime < 0 {
		return nil, fmt.Errorf("invalid fall time %s", opts.FallTime)
	}
	if opts.LineBonus < 0 {
		return nil, fmt.Errorf("invalid line bonus %d", opts.LineBonus)
	}

	board, err := mino.NewBoard(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	r, err := mino.NewRandomizer(opts.Randomizer, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create randomizer: %w", err)
	}

	g := &Game{
		ID:         uuid.New().String()[:8],
		Player:     opts.Player,
		Name:       Nickname(opts.Name),
		Seed:       opts.Seed,
		Randomizer: opts.Randomizer,
		FallTime:   opts.FallTime,
		LineBonus:  opts.LineBonus,
		LogLevel:   opts.LogLevel,
		label:      strconv.Itoa(opts.Player),
		board:      board,
		movement:   mino.NewMovement(board),
		rand:       r,
		clock:      NewClock(),
		newTicker:  opts.Ticker,
		out:        out,
		outMu:      new(sync.Mutex),
		Mutex:      new(sync.Mutex)}

	return g, nil
}

// reseed replaces the randomizer so the next round deals a new sequence.
func (g *Game) reseed(seed int64) error {
	g.Lock()
	defer g.Unlock()

	r, err := mino.NewRandomizer(g.Randomizer, seed)
	if err != nil {
		return err
	}

	g.Seed = seed
	g.rand = r
	return nil
}

func (g *Game) Log(level int, a ...interface{}) {
	if level > g.LogLevel {
		return
	}

	log.Print(append([]interface{}{"[" + g.ID + "] "}, a...)...)
}

func (g *Game) Logf(level int, format string, a ...interface{}) {
	if level > g.LogLevel {
		return
	}

	log.Printf("["+g.ID+"] "+format, a...)
}

// Start spawns the first piece and starts the fall timer. Calling Start on a
// game that already started does nothing.
func (g *Game) Start() {
	g.Lock()
	if g.state != StateIdle {
		g.Unlock()
		return
	}

	g.Logf(LogDebug, "Starting game for %s with seed %d", g.Name, g.Seed)

	g.restartL()
	g.Unlock()

	g.flush()
}

// Reset clears the board and score and starts a new round, whatever state
// the game was in.
func (g *Game) Reset() {
	g.Lock()
	g.Log(LogDebug, "Resetting...")

	g.restartL()
	g.Unlock()

	g.flush()
}

func (g *Game) restartL() {
	g.stopTimerL()

	g.board.Clear()
	g.current = nil
	g.next = nil
	g.score = 0
	g.lines = 0
	g.stopped = false
	g.clock.Reset()

	Scores.WithLabelValues(g.label).Set(0)

	g.spawnL()
	if g.state == StateGameOver {
		return
	}

	g.clock.Resume(time.Now())
	g.startTimerL()
}

// Stop halts the fall timer. The game keeps its state but ignores further
// ticks and actions until Reset.
func (g *Game) Stop() {
	g.Lock()
	defer g.Unlock()

	g.stopTimerL()
	g.clock.Pause(time.Now())
	g.stopped = true
}

func (g *Game) Running() bool {
	g.Lock()
	defer g.Unlock()

	return g.runningL()
}

func (g *Game) runningL() bool {
	return !g.stopped && g.state == StateFalling
}

func (g *Game) State() State {
	g.Lock()
	defer g.Unlock()

	return g.state
}

func (g *Game) Score() int {
	g.Lock()
	defer g.Unlock()

	return g.score
}

// Tick performs one fall step and reports whether the falling piece moved
// down. A piece that cannot descend is locked and the next one spawned.
func (g *Game) Tick() bool {
	g.Lock()
	moved := g.tickL()
	g.Unlock()

	g.flush()

	return moved
}

func (g *Game) tick(generation int) {
	g.Lock()
	if generation != g.generation {
		g.Unlock()
		return
	}

	g.tickL()
	g.Unlock()

	g.flush()
}

func (g *Game) tickL() bool {
	if !g.runningL() {
		return false
	}

	if g.movement.MoveDown(g.current) {
		g.drawL()
		return true
	}

	g.lockL()
	return false
}

// ProcessAction applies a player command to the falling piece and reports
// whether anything changed. A soft drop that cannot descend locks the piece.
func (g *Game) ProcessAction(a event.GameAction) bool {
	g.Lock()
	changed := g.processActionL(a)
	g.Unlock()

	g.flush()

	return changed
}

func (g *Game) processActionL(a event.GameAction) bool {
	if !g.runningL() {
		return false
	}

	g.Logf(LogVerbose, "Action %s on %s", a, g.current)

	var moved bool
	switch a {
	case event.ActionMoveLeft:
		moved = g.movement.MoveLeft(g.current)
	case event.ActionMoveRight:
		moved = g.movement.MoveRight(g.current)
	case event.ActionRotate:
		moved = g.movement.Rotate(g.current)
	case event.ActionSoftDrop:
		if !g.movement.MoveDown(g.current) {
			g.lockL()
			return true
		}
		moved = true
	default:
		g.Logf(LogDebug, "Unknown action %d", a)
		return false
	}

	if moved {
		g.drawL()
	}

	return moved
}

func (g *Game) lockL() {
	g.state = StateLocking

	if err := g.movement.Merge(g.current); err != nil {
		g.Log(LogStandard, err)
	}
	PiecesLocked.WithLabelValues(g.label).Inc()

	g.state = StateClearing

	cleared := g.clearFilledL()
	if cleared > 0 {
		g.score += cleared * g.LineBonus
		g.lines += cleared

		LinesCleared.WithLabelValues(g.label).Add(float64(cleared))
		Scores.WithLabelValues(g.label).Set(float64(g.score))

		g.Logf(LogDebug, "Cleared %d lines, score %d", cleared, g.score)

		g.queueL(&event.LineClearedEvent{Event: event.Event{Player: g.Player}, Lines: cleared, Score: g.score})
	}

	g.current = nil
	g.spawnL()
}

// clearFilledL removes every filled row, scanning from the bottom. The same
// row index is examined again after a removal since the row above moved into
// it.
func (g *Game) clearFilledL() int {
	var cleared int
	for y := g.board.H - 1; y >= 0; {
		if !g.board.RowFilled(y) {
			y--
			continue
		}

		g.board.RemoveRow(y)
		cleared++
	}

	return cleared
}

func (g *Game) spawnL() {
	g.state = StateSpawning

	if g.next == nil {
		g.next = g.newPieceL()
	}
	g.current = g.next
	g.next = g.newPieceL()

	g.queueL(&event.PieceChangedEvent{Event: event.Event{Player: g.Player}})

	if !g.movement.CanPlace(g.current, g.current.X, g.current.Y) {
		g.gameOverL()
		return
	}

	g.state = StateFalling
	g.drawL()
}

func (g *Game) newPieceL() *mino.Piece {
	p, err := mino.NewPiece(g.rand.Take(), g.board.W)
	if err != nil {
		panic(err)
	}

	return p
}

func (g *Game) gameOverL() {
	g.state = StateGameOver
	g.stopTimerL()
	g.clock.Pause(time.Now())

	GamesOver.Inc()

	g.Logf(LogStandard, "Game over for %s with score %d after %s", g.Name, g.score, g.clock)

	g.queueL(&event.GameOverEvent{Event: event.Event{Player: g.Player}, Score: g.score})
}

func (g *Game) drawL() {
	g.queueL(&event.DrawEvent{Event: event.Event{Player: g.Player}})
}

func (g *Game) startTimerL() {
	g.stopTimerL()

	t := g.newTicker(g.FallTime)
	stop := make(chan struct{})

	g.ticker = t
	g.stop = stop

	go g.handleLowerPiece(t, stop, g.generation)
}

// stopTimerL stops the running timer, if any, and invalidates ticks it may
// still deliver.
func (g *Game) stopTimerL() {
	g.generation++

	if g.ticker == nil {
		return
	}

	g.ticker.Stop()
	close(g.stop)

	g.ticker = nil
	g.stop = nil
}

func (g *Game) handleLowerPiece(t Ticker, stop <-chan struct{}, generation int) {
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			g.tick(generation)
		}
	}
}

func (g *Game) queueL(e interface{}) {
	if g.out == nil {
		return
	}

	g.pending = append(g.pending, e)
}

func (g *Game) flush() {
	g.outMu.Lock()
	defer g.outMu.Unlock()

	g.Lock()
	pending := g.pending
	g.pending = nil
	g.Unlock()

	for _, e := range pending {
		g.out(e)
	}
}

// Snapshot is a copy of everything a renderer needs.
type Snapshot struct {
	ID     string
	Player int
	Name   string

	Width  int
	Height int
	Board  [][]mino.Block

	Current *mino.Piece
	Next    *mino.Piece

	Score   int
	Lines   int
	State   State
	Elapsed time.Duration
}

func (g *Game) Snapshot() Snapshot {
	g.Lock()
	defer g.Unlock()

	return Snapshot{
		ID:      g.ID,
		Player:  g.Player,
		Name:    g.Name,
		Width:   g.board.W,
		Height:  g.board.H,
		Board:   g.board.Rows(),
		Current: g.current.Copy(),
		Next:    g.next.Copy(),
		Score:   g.score,
		Lines:   g.lines,
		State:   g.state,
		Elapsed: g.clock.Total(time.Now()),
	}
}

// Cell returns the block shown at (x, y): the falling piece over the
// settled board.
func (s Snapshot) Cell(x int, y int) mino.Block {
	if s.Current != nil {
		for _, c := range s.Current.Cells() {
			if c.X == x && c.Y == y {
				return s.Current.Block()
			}
		}
	}

	return s.Board[y][x]
}

func (s Snapshot) GameOver() bool {
	return s.State == StateGameOver
}
