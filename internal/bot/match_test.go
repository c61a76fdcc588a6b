package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/freeeve/subset-tictactoe/pkg/tictactoe"
)

func TestRunMatch_Totals(t *testing.T) {
	r, err := RunMatch(context.Background(), MatchConfig{
		Players: []string{"random", "simple", "advanced"},
		Games:   300,
		Workers: 3,
		Seed:    17,
	})
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	if r.Games != 300 {
		t.Fatalf("expected 300 games, got %d", r.Games)
	}
	total := r.Draws
	for _, w := range r.Wins {
		total += w
	}
	if total != r.Games {
		t.Errorf("wins + draws = %d, want %d", total, r.Games)
	}
	if r.RunID == "" {
		t.Error("expected a run id")
	}
	if r.Seed != 17 {
		t.Errorf("expected seed 17, got %d", r.Seed)
	}
	rates := r.DrawRate()
	for i := range r.Wins {
		rates += r.WinRate(i)
	}
	if rates < 0.999 || rates > 1.001 {
		t.Errorf("rates sum to %f", rates)
	}
}

func TestRunMatch_SameResultForAnyWorkerCount(t *testing.T) {
	cfg := MatchConfig{Players: []string{"random", "advanced"}, Games: 200, Seed: 2024}
	var first *MatchResult
	for _, workers := range []int{1, 2, 5} {
		cfg.Workers = workers
		r, err := RunMatch(context.Background(), cfg)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if first == nil {
			first = r
			continue
		}
		if r.Draws != first.Draws || r.Wins[0] != first.Wins[0] || r.Wins[1] != first.Wins[1] {
			t.Errorf("workers=%d: wins %v draws %d, want wins %v draws %d", workers, r.Wins, r.Draws, first.Wins, first.Draws)
		}
	}
}

func TestGameSeed_FollowsTopLevelGenerator(t *testing.T) {
	top := rand.New(rand.NewSource(77))
	for i := 0; i < 5; i++ {
		if want := top.Int63(); GameSeed(77, i) != want {
			t.Errorf("game %d: seed mismatch", i)
		}
	}
}

func TestReplayGame_MatchesSingleGameMatch(t *testing.T) {
	cfg := MatchConfig{Players: []string{"simple", "random"}, Games: 1, Seed: 31}
	r, err := RunMatch(context.Background(), cfg)
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	g, err := ReplayGame(context.Background(), cfg, 0)
	if err != nil {
		t.Fatalf("ReplayGame: %v", err)
	}
	if g.Wins[0] != r.Wins[0] || g.Wins[1] != r.Wins[1] || (g.Draw && r.Draws != 1) {
		t.Errorf("replay %+v does not match match result wins %v draws %d", g, r.Wins, r.Draws)
	}
}

func TestRunMatch_AdvancedBeatsRandom(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long simulation in short mode")
	}
	r, err := RunMatch(context.Background(), MatchConfig{
		Players: []string{"random", "advanced"},
		Games:   2000,
		Workers: 4,
		Seed:    1,
	})
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	t.Logf("random %d, advanced %d, draws %d", r.Wins[0], r.Wins[1], r.Draws)
	if r.Wins[1] <= r.Wins[0] {
		t.Errorf("expected advanced to beat random: %v", r.Wins)
	}
}

func TestRunMatch_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := RunMatch(ctx, MatchConfig{Players: []string{"random", "bogus"}, Games: 1}); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
	if _, err := RunMatch(ctx, MatchConfig{Players: []string{"random"}, Games: 3}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for a single player, got %v", err)
	}
	if _, err := RunMatch(ctx, MatchConfig{Players: []string{"random", "random"}, Games: -1}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for negative games, got %v", err)
	}
}

func TestRunMatch_FailedGameReportsSeeds(t *testing.T) {
	cfg := MatchConfig{
		Players: []string{"random", "random"},
		Games:   10,
		Workers: 1,
		Seed:    21,
		Game:    GameConfig{MinSubset: 6, MaxSubset: 2},
	}
	_, err := RunMatch(context.Background(), cfg)
	if !errors.Is(err, tictactoe.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
	var ge *GameError
	if !errors.As(err, &ge) {
		t.Fatalf("expected a GameError, got %T", err)
	}
	if ge.MatchSeed != 21 {
		t.Errorf("expected match seed 21, got %d", ge.MatchSeed)
	}
	if want := GameSeed(21, ge.Index); ge.GameSeed != want {
		t.Errorf("game %d: expected game seed %d, got %d", ge.Index, want, ge.GameSeed)
	}
	if !strings.Contains(err.Error(), fmt.Sprintf("game seed %d", ge.GameSeed)) {
		t.Errorf("error text should name the game seed: %v", err)
	}
}

func TestRunMatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunMatch(ctx, MatchConfig{Players: []string{"random", "random"}, Games: 1000, Workers: 2, Seed: 3})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunMatch_ZeroGames(t *testing.T) {
	r, err := RunMatch(context.Background(), MatchConfig{Players: []string{"random", "random"}, Seed: 3})
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	if r.Games != 0 || r.WinRate(0) != 0 || r.DrawRate() != 0 {
		t.Errorf("expected an empty result, got %+v", r)
	}
}

func BenchmarkRunMatch_AdvancedVsRandom(b *testing.B) {
	cfg := MatchConfig{Players: []string{"random", "advanced"}, Games: 100, Workers: 1, Seed: 9}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := RunMatch(context.Background(), cfg); err != nil {
			b.Fatal(err)
		}
	}
}
