package mino

import (
	"fmt"
	"math/rand"
	"sync"
)

const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// Randomizer supplies the archetype of each newly generated piece.
type Randomizer interface {
	Take() PieceType
}

func NewRandomizer(kind string, seed int64) (Randomizer, error) {
	switch kind {
	case RandomizerUniform, "":
		return NewUniform(seed), nil
	case RandomizerBag:
		return NewBag(seed, PieceTypes()), nil
	default:
		return nil, fmt.Errorf("unknown randomizer %q", kind)
	}
}

// Uniform picks every archetype with equal probability, independently of
// previous picks.
type Uniform struct {
	r *rand.Rand

	*sync.Mutex
}

func NewUniform(seed int64) *Uniform {
	return &Uniform{r: rand.New(rand.NewSource(seed)), Mutex: new(sync.Mutex)}
}

func (u *Uniform) Take() PieceType {
	u.Lock()
	defer u.Unlock()

	return PieceType(u.r.Intn(len(catalog)))
}

// Bag deals every archetype once, in shuffled order, before reshuffling.
type Bag struct {
	Pieces   []PieceType
	Original []PieceType

	r *rand.Rand
	i int

	*sync.Mutex
}

func NewBag(seed int64, pieces []PieceType) *Bag {
	b := &Bag{Original: pieces, r: rand.New(rand.NewSource(seed)), Mutex: new(sync.Mutex)}

	b.shuffle()

	return b
}

func (b *Bag) Take() PieceType {
	b.Lock()
	defer b.Unlock()

	t := b.Pieces[b.i]
	if b.i == len(b.Pieces)-1 {
		b.shuffle()

		b.i = 0
	} else {
		b.i++
	}

	return t
}

func (b *Bag) shuffle() {
	if b.Pieces == nil {
		b.Pieces = make([]PieceType, len(b.Original))
	}
	copy(b.Pieces, b.Original)

	b.r.Shuffle(len(b.Pieces), func(i, j int) { b.Pieces[i], b.Pieces[j] = b.Pieces[j], b.Pieces[i] })
}
