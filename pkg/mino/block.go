package mino

// Block is the value stored in a board cell. BlockNone is an empty cell, any
// other value is the archetype that settled there (PieceType + 1).
type Block int

const (
	BlockNone Block = iota
	BlockSolidCyan
	BlockSolidBlue
	BlockSolidOrange
	BlockSolidYellow
	BlockSolidGreen
	BlockSolidMagenta
	BlockSolidRed
)

func (b Block) String() string {
	return string(b.Rune())
}

func (b Block) Rune() rune {
	switch b {
	case BlockNone:
		return ' '
	case BlockSolidCyan, BlockSolidBlue, BlockSolidOrange, BlockSolidYellow, BlockSolidGreen, BlockSolidMagenta, BlockSolidRed:
		return '█'
	default:
		return '?'
	}
}

// Type returns the archetype a settled block belongs to. ok is false for
// empty or unknown blocks.
func (b Block) Type() (t PieceType, ok bool) {
	if b <= BlockNone || int(b) > len(catalog) {
		return 0, false
	}

	return PieceType(b - 1), true
}

// Color returns the hex colour of the archetype that owns the block, or an
// empty string for an empty cell.
func (b Block) Color() string {
	t, ok := b.Type()
	if !ok {
		return ""
	}

	return catalog[t].Color
}
