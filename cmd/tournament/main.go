package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/subset-tictactoe/internal/bot"
	"github.com/freeeve/subset-tictactoe/internal/config"
	"github.com/freeeve/subset-tictactoe/internal/logger"
)

func main() {
	logger.Init()

	var (
		roster    string
		groupSize int
		numGames  int
		workers   int
		seed      int64
		subsets   int
		minSubset int
		maxSubset int
		model     string
		jsonOut   bool
	)

	flag.StringVar(&roster, "roster", "random,simple,advanced,advanced", "Comma-separated strategy names")
	flag.IntVar(&groupSize, "group", 2, "Players per game (2 or 3)")
	flag.IntVar(&numGames, "n", 10000, "Games per group")
	flag.IntVar(&workers, "workers", config.DefaultWorkers(), "Concurrency (parallel games)")
	flag.Int64Var(&seed, "seed", 0, "Base seed (0 = random)")
	flag.IntVar(&subsets, "subsets", 15, "Winning subsets per game")
	flag.IntVar(&minSubset, "subset-min", 3, "Smallest winning subset")
	flag.IntVar(&maxSubset, "subset-max", 5, "Largest winning subset")
	flag.StringVar(&model, "model", "models/policy.onnx", "ONNX policy for the neural strategy")
	flag.BoolVar(&jsonOut, "json", false, "Output results as JSON")

	flag.Parse()
	bot.NeuralModelPath = model

	names, err := bot.ParseRoster(roster)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid roster")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Shutting down...")
		cancel()
	}()

	result, err := bot.RunTournament(ctx, bot.TournamentConfig{
		Roster:        names,
		GroupSize:     groupSize,
		GamesPerGroup: numGames,
		Workers:       workers,
		Seed:          seed,
		Game: bot.GameConfig{
			SubsetCount: subsets,
			MinSubset:   minSubset,
			MaxSubset:   maxSubset,
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Tournament failed")
	}

	if jsonOut {
		printJSON(result)
	} else {
		printStandings(result)
	}
}

func printStandings(r *bot.TournamentResult) {
	fmt.Printf("\nStandings (%d groups of %d, seed %d, %.1fs):\n",
		len(r.Groups), r.GroupSize, r.Seed, r.Elapsed.Seconds())
	for rank, s := range r.Standings {
		winRate := 0.0
		if s.Games > 0 {
			winRate = float64(s.Wins) / float64(s.Games)
		}
		fmt.Printf("  %2d. #%-2d %-10s %3d pts  %8d wins  (%.3f)\n",
			rank+1, s.Entrant, s.Name, s.Points, s.Wins, winRate)
	}
}

func printJSON(r *bot.TournamentResult) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		log.Fatal().Err(err).Msg("Encoding results")
	}
}
