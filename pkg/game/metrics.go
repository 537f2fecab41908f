package game

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LinesCleared = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tetristerm_lines_cleared_total",
			Help: "Total rows cleared",
		},
		[]string{"player"},
	)
	PiecesLocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tetristerm_pieces_locked_total",
			Help: "Total pieces locked into the board",
		},
		[]string{"player"},
	)
	GamesOver = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tetristerm_games_over_total",
			Help: "Total games ended by top-out",
		},
	)
	Scores = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tetristerm_score",
			Help: "Current score of the player's game",
		},
		[]string{"player"},
	)
)

func init() {
	prometheus.MustRegister(LinesCleared)
	prometheus.MustRegister(PiecesLocked)
	prometheus.MustRegister(GamesOver)
	prometheus.MustRegister(Scores)
}
