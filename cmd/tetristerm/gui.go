package main

import (
	"bytes"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/rivo/tview"

	"github.com/qnkhuat/tetristerm/pkg/audio"
	"github.com/qnkhuat/tetristerm/pkg/config"
	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
)

const (
	drawQueueSize = 64
	sideWidth     = 14

	pageTitle    = "title"
	pageOptions  = "options"
	pageGame     = "game"
	pageGameOver = "gameover"
)

type Client struct {
	App   *tview.Application
	Pages *tview.Pages

	boards []*tview.TextView
	sides  []*tview.TextView

	title    *tview.List
	options  *tview.Form
	gameOver *tview.Modal

	cfg      *config.Config
	sound    *audio.Service
	logLevel int

	match   *game.Match
	playing bool

	draw chan event.DrawObject

	// Set on game over until handleDraw picks it up, so a full draw queue
	// cannot lose the game-over prompt.
	gameOverPending atomic.Bool

	renderBuffer bytes.Buffer
}

func NewClient(cfg *config.Config, sound *audio.Service, logLevel int) *Client {
	c := &Client{
		App:      tview.NewApplication(),
		Pages:    tview.NewPages(),
		cfg:      cfg,
		sound:    sound,
		logLevel: logLevel,
		draw:     make(chan event.DrawObject, drawQueueSize),
	}

	c.title = c.newTitle()
	c.options = tview.NewForm()

	c.Pages.AddPage(pageTitle, center(c.title, 30, 10), true, true)
	c.Pages.AddPage(pageOptions, center(c.options, 44, 21), true, false)

	c.App.SetRoot(c.Pages, true)
	c.App.SetInputCapture(c.handleKeypress)

	go c.handleDraw()

	return c
}

// center places p in the middle of the screen at the given size.
func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(p, 1, 1, 1, 1, 0, 0, true)
}

// Play starts a match for the configured number of players as soon as the
// application runs, skipping the title menu.
func (c *Client) Play() {
	c.App.QueueUpdateDraw(func() {
		c.startMatch(c.cfg.Players)
	})
}

// newMatch creates a match for the given number of players, which becomes
// the configured default. Names beyond the player count are kept for later
// matches.
func (c *Client) newMatch(players int) (*game.Match, error) {
	c.cfg.Players = players

	opts := c.cfg.GameOptions()
	opts.LogLevel = c.logLevel

	return game.NewMatch(c.cfg.PlayerNames(), opts, c.handleEvent)
}

// startMatch replaces any running match with a new one for the given number
// of players. Must be called from the application's event loop.
func (c *Client) startMatch(players int) {
	if c.match != nil {
		c.match.Stop()
	}
	c.gameOverPending.Store(false)

	m, err := c.newMatch(players)
	if err != nil {
		log.Printf("Failed to start match: %s", err)
		c.showTitle()
		return
	}

	c.match = m
	c.Pages.AddPage(pageGame, c.newGameLayout(players), true, true)
	c.Pages.HidePage(pageGameOver)
	c.Pages.SwitchToPage(pageGame)
	c.playing = true

	m.Start()
	c.sound.PlayMusic()

	c.drawAll()
}

func (c *Client) newGameLayout(players int) tview.Primitive {
	c.boards = make([]*tview.TextView, players)
	c.sides = make([]*tview.TextView, players)

	boardWidth := c.cfg.Width*blockWidth + 2
	boardHeight := c.cfg.Height + 2

	columns := []int{0}
	for i := 0; i < players; i++ {
		columns = append(columns, boardWidth, sideWidth)
	}
	columns = append(columns, 0)

	grid := tview.NewGrid().
		SetRows(0, boardHeight, 1, 0).
		SetColumns(columns...)

	for i := 0; i < players; i++ {
		c.boards[i] = tview.NewTextView().
			SetDynamicColors(true).
			SetScrollable(false).
			SetWrap(false)
		c.sides[i] = tview.NewTextView().
			SetDynamicColors(true).
			SetScrollable(false)

		col := 1 + i*2
		grid.AddItem(c.boards[i], 1, col, 1, 1, 0, 0, false)
		grid.AddItem(pad(c.sides[i]), 1, col+1, 1, 1, 0, 0, false)
	}

	help := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText(helpText(players))
	grid.AddItem(help, 2, 1, 1, len(columns)-2, 0, 0, false)

	return grid
}

func pad(p tview.Primitive) tview.Primitive {
	return tview.NewGrid().
		SetColumns(1, 0).
		AddItem(tview.NewTextView(), 0, 0, 1, 1, 0, 0, false).
		AddItem(p, 0, 1, 1, 1, 0, 0, false)
}

func helpText(players int) string {
	if players == 1 {
		return "WASD or arrow keys to move, W or Up to rotate, Esc for menu"
	}

	return "P1: WASD   P2: arrow keys   Esc for menu"
}

// handleEvent receives game events. It runs on the goroutine that drove the
// game, which may be the event loop itself, so it never waits on the GUI.
func (c *Client) handleEvent(e interface{}) {
	var o event.DrawObject

	switch ev := e.(type) {
	case *event.DrawEvent:
		o = event.DrawBoards
	case *event.PieceChangedEvent:
		o = event.DrawScores
	case *event.LineClearedEvent:
		c.sound.PlayLineClear(ev.Lines)
		o = event.DrawAll
	case *event.GameOverEvent:
		c.sound.PlayGameOver()
		c.gameOverPending.Store(true)
		o = event.DrawGameOver
	default:
		return
	}

	select {
	case c.draw <- o:
	default:
		// A queued redraw renders the latest state anyway and picks up
		// gameOverPending.
	}
}

// pendingDraws returns what to redraw for o. A pending game over is drawn
// exactly once, by whichever queued object sees it first.
func (c *Client) pendingDraws(o event.DrawObject) []event.DrawObject {
	var draws []event.DrawObject
	if o != event.DrawGameOver {
		draws = append(draws, o)
	}
	if c.gameOverPending.Swap(false) {
		draws = append(draws, event.DrawGameOver)
	}

	return draws
}

func (c *Client) handleDraw() {
	for o := range c.draw {
		for _, d := range c.pendingDraws(o) {
			switch d {
			case event.DrawAll:
				c.App.QueueUpdateDraw(c.drawAll)
			case event.DrawBoards:
				c.App.QueueUpdateDraw(c.drawBoards)
			case event.DrawScores:
				c.App.QueueUpdateDraw(c.drawSides)
			case event.DrawGameOver:
				c.App.QueueUpdateDraw(c.drawGameOver)
			default:
				log.Printf("unknown draw object %d", d)
			}
		}
	}
}

func (c *Client) snapshots() []game.Snapshot {
	if c.match == nil {
		return nil
	}

	s := make([]game.Snapshot, len(c.match.Players))
	for i, p := range c.match.Players {
		s[i] = p.Snapshot()
	}

	return s
}

func (c *Client) drawAll() {
	c.drawBoards()
	c.drawSides()
}

func (c *Client) drawBoards() {
	for i, s := range c.snapshots() {
		if i >= len(c.boards) {
			break
		}

		c.renderBuffer.Reset()
		renderBoard(&c.renderBuffer, s)
		c.boards[i].SetText(c.renderBuffer.String())
	}
}

func (c *Client) drawSides() {
	for i, s := range c.snapshots() {
		if i >= len(c.sides) {
			break
		}

		c.renderBuffer.Reset()
		renderSide(&c.renderBuffer, s)
		c.sides[i].SetText(c.renderBuffer.String())
	}
}

func (c *Client) drawGameOver() {
	c.drawAll()

	if !c.playing || c.match == nil || !c.match.Over() {
		return
	}

	c.gameOver = tview.NewModal().
		SetText(gameOverText(c.snapshots())).
		AddButtons([]string{"Play again", "Menu", "Quit"}).
		SetDoneFunc(func(i int, label string) {
			switch i {
			case 0:
				c.Pages.HidePage(pageGameOver)
				c.gameOverPending.Store(false)
				c.match.Reset()
				c.drawAll()
			case 1:
				c.showTitle()
			default:
				c.App.Stop()
			}
		})

	c.Pages.AddPage(pageGameOver, c.gameOver, false, true)
	c.App.SetFocus(c.gameOver)
}

func gameOverText(scores []game.Snapshot) string {
	if len(scores) == 1 {
		return fmt.Sprintf("Game over!\n\nScore: %d  Lines: %d\n\nPlay again?", scores[0].Score, scores[0].Lines)
	}

	leader := 0
	for i, s := range scores {
		if s.Score > scores[leader].Score {
			leader = i
		}
	}

	var buf bytes.Buffer
	buf.WriteString("Game over!\n\n")
	for _, s := range scores {
		fmt.Fprintf(&buf, "%s: %d\n", s.Name, s.Score)
	}
	fmt.Fprintf(&buf, "\n%s wins! Play again?", scores[leader].Name)

	return buf.String()
}

// Close stops the running match and the application and returns the final
// state of every player of the last match.
func (c *Client) Close() []game.Snapshot {
	if c.match != nil {
		c.match.Stop()
	}

	c.App.Stop()

	return c.snapshots()
}
