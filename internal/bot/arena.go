package bot

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/subset-tictactoe/pkg/tictactoe"
)

// GameConfig configures a single game.
type GameConfig struct {
	Seed        int64 // 0 = random
	SubsetCount int   // 0 = tictactoe.DefaultSubsetCount
	MinSubset   int   // 0 = tictactoe.DefaultMinSubsetSize
	MaxSubset   int   // 0 = tictactoe.DefaultMaxSubsetSize
	Verbose     bool  // log the board after every move at debug level
}

func (cfg GameConfig) withDefaults() GameConfig {
	if cfg.SubsetCount == 0 {
		cfg.SubsetCount = tictactoe.DefaultSubsetCount
	}
	if cfg.MinSubset == 0 {
		cfg.MinSubset = tictactoe.DefaultMinSubsetSize
	}
	if cfg.MaxSubset == 0 {
		cfg.MaxSubset = tictactoe.DefaultMaxSubsetSize
	}
	return cfg
}

// Move is one placed mark.
type Move struct {
	Player tictactoe.Player
	Cell   tictactoe.Cell
}

// GameResult describes the outcome of a completed game. Slices are indexed
// by seat; seat i plays as player i+1.
type GameResult struct {
	CatalogSeed int64
	Winner      tictactoe.Player // NoPlayer on a draw
	Draw        bool
	Wins        []int // 1 for the winning seat, 0 otherwise
	Moves       []Move
	MoveTime    []time.Duration
	Board       tictactoe.Board
}

// RunGame plays one game between freshly built strategies for the given
// roster names.
func RunGame(ctx context.Context, cfg GameConfig, players []string) (*GameResult, error) {
	strategies := make([]Strategy, len(players))
	for i, name := range players {
		s, err := StrategyForName(name)
		if err != nil {
			return nil, err
		}
		strategies[i] = s
	}
	cfg = cfg.withDefaults()
	return PlayGame(ctx, cfg, strategies, NewRng(cfg.Seed))
}

// PlayGame plays one game. A fresh catalog is drawn from rng, then each turn
// a uniformly random seat moves (seats may move several times in a row)
// until a subset is completed or the board is full.
func PlayGame(ctx context.Context, cfg GameConfig, strategies []Strategy, rng *rand.Rand) (*GameResult, error) {
	if len(strategies) < 2 || len(strategies) > tictactoe.MaxPlayers {
		return nil, fmt.Errorf("%w: %d players, need 2 to %d", ErrInvalidConfig, len(strategies), tictactoe.MaxPlayers)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	cfg = cfg.withDefaults()

	catalogSeed := rng.Int63()
	catalog, err := tictactoe.NewCatalog(tictactoe.CatalogConfig{
		Seed:    catalogSeed,
		Count:   cfg.SubsetCount,
		MinSize: cfg.MinSubset,
		MaxSize: cfg.MaxSubset,
	})
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	if cfg.Verbose {
		log.Debug().Int64("catalogSeed", catalogSeed).Msg("Winning subsets\n" + catalog.String())
	}

	for i, s := range strategies {
		s.Reset(tictactoe.Player(i+1), len(strategies))
	}

	result := &GameResult{
		CatalogSeed: catalogSeed,
		Wins:        make([]int, len(strategies)),
		Moves:       make([]Move, 0, tictactoe.BoardSize),
		MoveTime:    make([]time.Duration, len(strategies)),
	}

	var board tictactoe.Board
	for turn := 0; turn < tictactoe.BoardSize; turn++ {
		idx := rng.Intn(len(strategies))
		player := tictactoe.Player(idx + 1)

		start := time.Now()
		cell, err := strategies[idx].NextMove(board, catalog, rng)
		result.MoveTime[idx] += time.Since(start)
		if err != nil {
			return nil, fmt.Errorf("%s (player %d) turn %d: %w", strategies[idx].Name(), player, turn, err)
		}
		if err := board.Play(player, cell); err != nil {
			return nil, fmt.Errorf("%s (player %d) turn %d: %w", strategies[idx].Name(), player, turn, err)
		}
		result.Moves = append(result.Moves, Move{Player: player, Cell: cell})
		if cfg.Verbose {
			log.Debug().Int("turn", turn).Str("player", strategies[idx].Name()).Int("cell", int(cell)).Msg("Move\n" + board.String())
		}

		for i, s := range strategies {
			if i != idx {
				s.RegisterOpponentMove(player, cell)
			}
		}

		if w := catalog.Winner(board); w != tictactoe.NoPlayer {
			result.Winner = w
			result.Wins[w-1] = 1
			break
		}
	}
	result.Draw = result.Winner == tictactoe.NoPlayer
	result.Board = board
	return result, nil
}
