package bot

import (
	"math/rand"
	"time"

	"github.com/freeeve/subset-tictactoe/pkg/tictactoe"
)

// NewRng returns a random source for a simulation run. A zero seed picks a
// time-based one so that unseeded runs differ.
func NewRng(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// randomMove picks uniformly among the empty cells of b.
func randomMove(b tictactoe.Board, rng *rand.Rand) (tictactoe.Cell, error) {
	empty := b.CountEmpty()
	if empty == 0 {
		return 0, ErrNoLegalMove
	}
	target := rng.Intn(empty)
	for c := tictactoe.Cell(0); c < tictactoe.BoardSize; c++ {
		if b.IsOccupied(c) {
			continue
		}
		if target == 0 {
			return c, nil
		}
		target--
	}
	return 0, ErrNoLegalMove
}
