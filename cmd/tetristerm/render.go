package main

import (
	"bytes"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

// Each cell is drawn two columns wide so blocks look square.
const blockWidth = 2

var renderBlock = map[mino.Block][]byte{
	mino.BlockNone: []byte("  "),
}

var (
	renderHLine    = []byte(string(tcell.RuneHLine))
	renderVLine    = []byte(string(tcell.RuneVLine))
	renderULCorner = []byte(string(tcell.RuneULCorner))
	renderURCorner = []byte(string(tcell.RuneURCorner))
	renderLLCorner = []byte(string(tcell.RuneLLCorner))
	renderLRCorner = []byte(string(tcell.RuneLRCorner))
)

func init() {
	for _, t := range mino.PieceTypes() {
		b := t.Block()

		var cell bytes.Buffer
		cell.WriteString("[" + b.Color() + "]")
		for i := 0; i < blockWidth; i++ {
			cell.WriteRune(b.Rune())
		}
		cell.WriteString("[#ffffff]")

		renderBlock[b] = cell.Bytes()
	}
}

func blockBytes(b mino.Block) []byte {
	if r, ok := renderBlock[b]; ok {
		return r
	}

	return renderBlock[mino.BlockNone]
}

// renderBoard writes the bordered board of s with the falling piece drawn
// over it. Row 0 is the top of the board.
func renderBoard(buf *bytes.Buffer, s game.Snapshot) {
	buf.Write(renderULCorner)
	for i := 0; i < s.Width*blockWidth; i++ {
		buf.Write(renderHLine)
	}
	buf.Write(renderURCorner)
	buf.WriteRune('\n')

	for y := 0; y < s.Height; y++ {
		buf.Write(renderVLine)
		for x := 0; x < s.Width; x++ {
			buf.Write(blockBytes(s.Cell(x, y)))
		}
		buf.Write(renderVLine)
		buf.WriteRune('\n')
	}

	buf.Write(renderLLCorner)
	for i := 0; i < s.Width*blockWidth; i++ {
		buf.Write(renderHLine)
	}
	buf.Write(renderLRCorner)
}

// renderPreview writes the shape of p in rotation 0, one line per row.
func renderPreview(buf *bytes.Buffer, p *mino.Piece) {
	if p == nil {
		return
	}

	block := blockBytes(p.Block())
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			if p.Shape[y][x] {
				buf.Write(block)
			} else {
				buf.Write(renderBlock[mino.BlockNone])
			}
		}
		buf.WriteRune('\n')
	}
}

// renderSide writes the panel shown next to a board.
func renderSide(buf *bytes.Buffer, s game.Snapshot) {
	fmt.Fprintf(buf, "[::b]%s[::-]\n\n", s.Name)

	buf.WriteString("Next\n")
	renderPreview(buf, s.Next)
	buf.WriteRune('\n')

	fmt.Fprintf(buf, "Score\n%d\n\n", s.Score)
	fmt.Fprintf(buf, "Lines\n%d\n\n", s.Lines)
	fmt.Fprintf(buf, "Time\n%s\n", game.FormatDuration(s.Elapsed))

	if s.GameOver() {
		buf.WriteString("\n[#ee0000::b]GAME OVER[-::-]\n")
	}
}
