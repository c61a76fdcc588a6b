package bot

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/freeeve/subset-tictactoe/pkg/tictactoe"
)

var (
	ErrNoLegalMove     = errors.New("no legal move")
	ErrNoDecision      = errors.New("no move decided")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrInvalidConfig   = errors.New("invalid simulation config")
)

// Strategy chooses moves for one seat of a game.
type Strategy interface {
	Name() string
	// Reset clears per-game state and tells the strategy which player it is
	// and how many seats the game has. Players are numbered 1..seats.
	Reset(me tictactoe.Player, seats int)
	// RegisterOpponentMove reports a move made by another player.
	RegisterOpponentMove(p tictactoe.Player, c tictactoe.Cell)
	// NextMove returns an empty cell of b. It fails with ErrNoLegalMove on a
	// full board.
	NextMove(b tictactoe.Board, catalog *tictactoe.Catalog, rng *rand.Rand) (tictactoe.Cell, error)
}

// StrategyNames lists the names accepted by StrategyForName.
func StrategyNames() []string {
	return []string{"random", "simple", "advanced", "neural"}
}

// StrategyForName returns a fresh strategy for a roster name.
func StrategyForName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random", "base":
		return &RandomStrategy{}, nil
	case "simple", "lookahead":
		return &LookaheadStrategy{}, nil
	case "advanced", "heuristic", "eofom":
		return &HeuristicStrategy{}, nil
	case "neural":
		return newNeuralOrFallback(), nil
	default:
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownStrategy, name, strings.Join(StrategyNames(), ", "))
	}
}

// ParseRoster splits a comma separated list of strategy names, e.g.
// "random,advanced,advanced".
func ParseRoster(s string) ([]string, error) {
	var names []string
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if _, err := StrategyForName(name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: empty roster", ErrInvalidConfig)
	}
	return names, nil
}

// seat holds the player id and seat count assigned by Reset. Strategies
// embed it.
type seat struct {
	me    tictactoe.Player
	seats int
}

func (s *seat) Reset(me tictactoe.Player, seats int) {
	if seats < 2 || seats > tictactoe.MaxPlayers {
		seats = tictactoe.MaxPlayers
	}
	s.me, s.seats = me, seats
}

// opponents returns the other players in the game. Before Reset every
// player id counts.
func (s *seat) opponents() []tictactoe.Player {
	seats := s.seats
	if seats == 0 {
		seats = tictactoe.MaxPlayers
	}
	out := make([]tictactoe.Player, 0, seats)
	for p := tictactoe.FirstPlayer; int(p) <= seats; p++ {
		if p != s.me {
			out = append(out, p)
		}
	}
	return out
}

func (*seat) RegisterOpponentMove(tictactoe.Player, tictactoe.Cell) {}

// --- RandomStrategy ---

// RandomStrategy plays a uniformly random empty cell.
type RandomStrategy struct {
	seat
}

func (*RandomStrategy) Name() string { return "random" }

func (*RandomStrategy) NextMove(b tictactoe.Board, _ *tictactoe.Catalog, rng *rand.Rand) (tictactoe.Cell, error) {
	return randomMove(b, rng)
}
