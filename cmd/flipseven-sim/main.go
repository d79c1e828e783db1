package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/flipseven/internal/simulator"
)

type CLI struct {
	Config  string `help:"Path to HCL simulation config" type:"path"`
	Rounds  int    `default:"0" help:"Number of rounds to simulate (overrides config)"`
	Players int    `default:"0" help:"Players per round (overrides config)"`
	Workers int    `default:"0" help:"Parallel workers (overrides config)"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	cfg, err := simulator.LoadFileConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		ctx.Exit(1)
	}

	// CLI flags override the config file
	if cli.Rounds > 0 {
		cfg.Simulation.Rounds = cli.Rounds
	}
	if cli.Players > 0 {
		cfg.Simulation.Players = cli.Players
	}
	if cli.Workers > 0 {
		cfg.Simulation.Workers = cli.Workers
	}
	if cli.Seed != 0 {
		cfg.Simulation.Seed = cli.Seed
	}
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		ctx.Exit(1)
	}

	level := log.WarnLevel
	if cli.Verbose {
		level = log.DebugLevel
	} else if parsed, err := log.ParseLevel(cfg.Simulation.LogLevel); err == nil {
		level = parsed
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	fmt.Printf("Simulating %d rounds with %d player(s) (seed: %d)\n",
		cfg.Simulation.Rounds, cfg.Simulation.Players, cfg.Simulation.Seed)

	sim := simulator.New(simulator.Config{
		Rounds:  cfg.Simulation.Rounds,
		Players: cfg.Simulation.Players,
		Seed:    cfg.Simulation.Seed,
		Workers: cfg.Simulation.Workers,
		Logger:  logger,
	})

	result, err := sim.Run(context.Background())
	if err != nil {
		logger.Error("simulation failed", "err", err)
		ctx.Exit(1)
	}

	printResults(result)
	ctx.Exit(0)
}

func printResults(result *simulator.Result) {
	stats := result.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Printf("\n=== RESULTS (run %s) ===\n", result.RunID)
	fmt.Printf("Rounds played: %d in %v\n", stats.Rounds, result.Elapsed.Round(time.Millisecond))
	fmt.Printf("Mean score: %.2f (median %.1f, max %d)\n", stats.Mean(), stats.Median(), stats.MaxScore)
	fmt.Printf("Std dev: %.2f, std error: %.3f\n", stats.StdDev(), stats.StdError())
	fmt.Printf("95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Printf("Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Printf("Bust rate: %.1f%%, freeze rate: %.1f%%, Flip 7 rate: %.2f%%\n",
		stats.BustRate()*100,
		float64(stats.Freezes)/float64(stats.Rounds)*100,
		stats.FlipSevenRate()*100)
	fmt.Printf("Average draws per hand: %.2f\n", float64(stats.TotalDraws)/float64(stats.Rounds))
}
