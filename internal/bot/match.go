package bot

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MatchConfig configures a series of games with a fixed roster.
type MatchConfig struct {
	Players []string // strategy names; seat i plays as player i+1
	Games   int
	Workers int   // parallel games; <= 0 means 1
	Seed    int64 // top-level seed; 0 = random
	Game    GameConfig
}

// MatchResult aggregates a series of games. Per-seat slices follow Players.
type MatchResult struct {
	RunID    string          `json:"runId"`
	Players  []string        `json:"players"`
	Seed     int64           `json:"seed"`
	Games    int             `json:"games"`
	Draws    int             `json:"draws"`
	Wins     []int           `json:"wins"`
	MoveTime []time.Duration `json:"moveTimeNs"`
	Elapsed  time.Duration   `json:"elapsedNs"`
}

// WinRate returns the share of games won by seat.
func (r *MatchResult) WinRate(seat int) float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins[seat]) / float64(r.Games)
}

// DrawRate returns the share of drawn games.
func (r *MatchResult) DrawRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Draws) / float64(r.Games)
}

// Overhead is the wall time not spent inside strategies: catalog
// generation, board updates and bookkeeping. With several workers it is
// negative when strategies ran in parallel.
func (r *MatchResult) Overhead() time.Duration {
	d := r.Elapsed
	for _, t := range r.MoveTime {
		d -= t
	}
	return d
}

func (r *MatchResult) add(g *GameResult) {
	r.Games++
	if g.Draw {
		r.Draws++
	}
	for i := range g.Wins {
		r.Wins[i] += g.Wins[i]
		r.MoveTime[i] += g.MoveTime[i]
	}
}

func (r *MatchResult) merge(o *MatchResult) {
	r.Games += o.Games
	r.Draws += o.Draws
	for i := range o.Wins {
		r.Wins[i] += o.Wins[i]
		r.MoveTime[i] += o.MoveTime[i]
	}
}

func newMatchResult(players []string) *MatchResult {
	return &MatchResult{
		Players:  players,
		Wins:     make([]int, len(players)),
		MoveTime: make([]time.Duration, len(players)),
	}
}

// GameSeed returns the seed of game index in a match seeded with seed.
// Game seeds are the successive values of the top-level generator.
func GameSeed(seed int64, index int) int64 {
	top := rand.New(rand.NewSource(seed))
	var s int64
	for i := 0; i <= index; i++ {
		s = top.Int63()
	}
	return s
}

// ReplayGame replays game index of a match run with cfg.Seed.
func ReplayGame(ctx context.Context, cfg MatchConfig, index int) (*GameResult, error) {
	strategies, err := buildStrategies(cfg.Players)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(GameSeed(cfg.Seed, index)))
	return PlayGame(ctx, cfg.Game, strategies, rng)
}

func buildStrategies(players []string) ([]Strategy, error) {
	strategies := make([]Strategy, len(players))
	for i, name := range players {
		s, err := StrategyForName(name)
		if err != nil {
			return nil, err
		}
		strategies[i] = s
	}
	return strategies, nil
}

// GameError reports a failed game of a match. GameSeed seeds the game's own
// generator; PlayGame with rand.New(rand.NewSource(GameSeed)) replays it.
type GameError struct {
	Index     int
	MatchSeed int64
	GameSeed  int64
	Err       error
}

func (e *GameError) Error() string {
	return fmt.Sprintf("game %d (match seed %d, game seed %d): %v", e.Index, e.MatchSeed, e.GameSeed, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }

type gameJob struct {
	index int
	seed  int64
}

// RunMatch plays cfg.Games independent games, in parallel across
// cfg.Workers. Game i always uses GameSeed(seed, i), whatever the worker
// count. The first failing game aborts the match.
func RunMatch(ctx context.Context, cfg MatchConfig) (*MatchResult, error) {
	if cfg.Games < 0 {
		return nil, fmt.Errorf("%w: %d games", ErrInvalidConfig, cfg.Games)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > cfg.Games && cfg.Games > 0 {
		workers = cfg.Games
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Each worker owns its strategies: they keep per-game state.
	seats := make([][]Strategy, workers)
	for w := range seats {
		s, err := buildStrategies(cfg.Players)
		if err != nil {
			return nil, err
		}
		seats[w] = s
	}

	result := newMatchResult(cfg.Players)
	result.RunID = uuid.NewString()
	result.Seed = seed
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan gameJob, workers)
	partials := make([]*MatchResult, workers)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for w := 0; w < workers; w++ {
		partials[w] = newMatchResult(cfg.Players)
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for job := range jobs {
				rng := rand.New(rand.NewSource(job.seed))
				g, err := PlayGame(ctx, cfg.Game, seats[w], rng)
				if err != nil {
					errOnce.Do(func() {
						firstErr = &GameError{Index: job.index, MatchSeed: seed, GameSeed: job.seed, Err: err}
						cancel()
					})
					continue
				}
				partials[w].add(g)
			}
		}(w)
	}

	top := rand.New(rand.NewSource(seed))
dispatch:
	for i := 0; i < cfg.Games; i++ {
		select {
		case jobs <- gameJob{index: i, seed: top.Int63()}:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, p := range partials {
		result.merge(p)
	}
	result.Elapsed = time.Since(start)

	log.Info().
		Str("runId", result.RunID).
		Strs("players", cfg.Players).
		Int("games", result.Games).
		Int("draws", result.Draws).
		Ints("wins", result.Wins).
		Dur("elapsed", result.Elapsed).
		Msg("Match completed")
	return result, nil
}
