package event

// Event carries the index of the player whose game raised it.
type Event struct {
	Player int
}

// DrawEvent asks the front end to redraw the player's board.
type DrawEvent struct {
	Event
}

// PieceChangedEvent follows every spawn: the falling piece and the preview
// changed.
type PieceChangedEvent struct {
	Event
}

type LineClearedEvent struct {
	Event
	Lines int
	Score int
}

// GameOverEvent is sent exactly once when a new piece cannot be placed.
type GameOverEvent struct {
	Event
	Score int
}

// DrawObject names the part of the screen that needs redrawing.
type DrawObject int

const (
	DrawAll DrawObject = iota
	DrawBoards
	DrawScores
	DrawGameOver
)
