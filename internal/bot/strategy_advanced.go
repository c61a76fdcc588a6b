package bot

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/freeeve/subset-tictactoe/pkg/tictactoe"
)

const (
	// noThreatScore is the primary score when no subset is live for
	// the opponents.
	noThreatScore = 100
	// threatScore is the primary score when an opponent wins next move.
	threatScore = -100
	// closestWeight scales distance-to-win against variability when the
	// opponents have nothing live.
	closestWeight = 10
)

// PositionScore ranks a candidate move. Scores compare on Primary, then
// Secondary. ImmediateWin overrides any comparison.
type PositionScore struct {
	Primary      int
	Secondary    int
	ImmediateWin bool
}

// Less reports whether s ranks strictly below o.
func (s PositionScore) Less(o PositionScore) bool {
	return s.Primary < o.Primary || (s.Primary == o.Primary && s.Secondary < o.Secondary)
}

// worstScore ranks below every score a move can produce.
var worstScore = PositionScore{Primary: math.MinInt, Secondary: math.MinInt}

// HeuristicStrategy evaluates each empty cell on two levels: how few moves
// the nearest live subset needs (for the mover and for everyone else), and
// how many subsets are at that distance.
type HeuristicStrategy struct {
	seat
}

func (*HeuristicStrategy) Name() string { return "advanced" }

func (s *HeuristicStrategy) NextMove(b tictactoe.Board, catalog *tictactoe.Catalog, _ *rand.Rand) (tictactoe.Cell, error) {
	if b.Full() {
		return 0, ErrNoLegalMove
	}
	states, err := catalog.States(b)
	if err != nil {
		return 0, err
	}

	best := worstScore
	move := tictactoe.Cell(-1)
	for c := tictactoe.Cell(0); c < tictactoe.BoardSize; c++ {
		if b.IsOccupied(c) {
			continue
		}
		score, err := scorePosition(s.me, c, states)
		if err != nil {
			return 0, err
		}
		if score.ImmediateWin {
			return c, nil
		}
		if best.Less(score) {
			best = score
			move = c
		}
	}
	if move < 0 {
		return 0, ErrNoDecision
	}
	return move, nil
}

// scorePosition scores me playing move against the subset states of the
// current board.
func scorePosition(me tictactoe.Player, move tictactoe.Cell, states []tictactoe.SubsetState) (PositionScore, error) {
	myClosest, theirClosest := tictactoe.BoardSize, tictactoe.BoardSize
	myVariability, theirVariability := 0, 0

	for i := range states {
		st := &states[i]
		if st.Contested {
			continue
		}
		owner, left := st.Owner, st.Empty
		if left == 0 {
			return PositionScore{}, fmt.Errorf("%w: subset %d has no empty cell", tictactoe.ErrInconsistentState, i)
		}
		if st.Subset.Contains(move) {
			if owner != me && owner != tictactoe.NoPlayer {
				// The move contests this subset; it no longer counts.
				continue
			}
			owner = me
			left--
			if left == 0 {
				return PositionScore{ImmediateWin: true}, nil
			}
		}

		if owner == me || owner == tictactoe.NoPlayer {
			if left == myClosest {
				myVariability++
			} else if left < myClosest {
				myClosest = left
				myVariability = 1
			}
		}
		if owner != me {
			if left == theirClosest {
				theirVariability++
			} else if left < theirClosest {
				theirClosest = left
				theirVariability = 1
			}
		}
	}

	switch {
	case theirVariability == 0:
		return PositionScore{Primary: noThreatScore, Secondary: -myClosest*closestWeight + myVariability}, nil
	case theirClosest < 1:
		return PositionScore{}, fmt.Errorf("%w: opponent already completed a subset", tictactoe.ErrInconsistentState)
	case theirClosest == 1:
		return PositionScore{Primary: threatScore, Secondary: -theirVariability}, nil
	default:
		return PositionScore{Primary: theirClosest - myClosest, Secondary: myVariability - theirVariability}, nil
	}
}
