package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/subset-tictactoe/internal/bot"
	"github.com/freeeve/subset-tictactoe/internal/config"
	"github.com/freeeve/subset-tictactoe/internal/logger"
)

func main() {
	logger.Init()
	cfg := config.Load()
	bot.NeuralModelPath = cfg.NeuralModelPath
	if cfg.Verbose {
		logger.EnableDebug()
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

	log.Info().
		Strs("players", cfg.Players).
		Int("games", cfg.Games).
		Int("workers", cfg.Workers).
		Str("cpu", config.CPUDescription()).
		Msg("Starting simulation")

	start := time.Now()
	result, err := bot.RunMatch(ctx, bot.MatchConfig{
		Players: cfg.Players,
		Games:   cfg.Games,
		Workers: cfg.Workers,
		Seed:    cfg.Seed,
		Game: bot.GameConfig{
			SubsetCount: cfg.SubsetCount,
			MinSubset:   cfg.MinSubset,
			MaxSubset:   cfg.MaxSubset,
			Verbose:     cfg.Verbose,
		},
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn().Msg("Simulation interrupted")
			os.Exit(130)
		}
		log.Fatal().Err(err).Msg("Simulation failed")
	}

	printSummary(result, time.Since(start))
}

func printSummary(r *bot.MatchResult, total time.Duration) {
	fmt.Printf("Draws: %d = %.4f\n", r.Draws, r.DrawRate())
	for i, name := range r.Players {
		fmt.Printf("Player %d (%s) wins: %d = %.4f time spent: %.3fs\n",
			i+1, name, r.Wins[i], r.WinRate(i), r.MoveTime[i].Seconds())
	}
	fmt.Printf("Overhead: %.3fs\n", r.Overhead().Seconds())
	fmt.Printf("Total time: %.3fs (%d games, seed %d)\n", total.Seconds(), r.Games, r.Seed)
}
