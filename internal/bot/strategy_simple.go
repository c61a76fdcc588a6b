package bot

import (
	"math/rand"

	"github.com/freeeve/subset-tictactoe/pkg/tictactoe"
)

// LookaheadStrategy looks one move ahead: it takes a winning cell when there
// is one, otherwise blocks a cell that would win for an opponent, otherwise
// plays randomly.
type LookaheadStrategy struct {
	seat
}

func (*LookaheadStrategy) Name() string { return "simple" }

func (s *LookaheadStrategy) NextMove(b tictactoe.Board, catalog *tictactoe.Catalog, rng *rand.Rand) (tictactoe.Cell, error) {
	opponents := s.opponents()
	block := tictactoe.Cell(-1)
	for c := tictactoe.Cell(0); c < tictactoe.BoardSize; c++ {
		if b.IsOccupied(c) {
			continue
		}
		if catalog.IsWinningMove(b, s.me, c) {
			return c, nil
		}
		// Only the last blocking cell found is kept.
		for _, p := range opponents {
			if catalog.IsWinningMove(b, p, c) {
				block = c
				break
			}
		}
	}
	if block >= 0 {
		return block, nil
	}
	return randomMove(b, rng)
}
