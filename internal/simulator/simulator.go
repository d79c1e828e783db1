// Package simulator plays strategy-advised Flip 7 rounds to completion
// and aggregates the results. Each round runs on its own seeded
// GameState; rounds are independent, so a run can fan out across
// workers while every GameState stays single-threaded.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/flipseven/internal/deck"
	"github.com/lox/flipseven/internal/game"
	"github.com/lox/flipseven/internal/randutil"
	"github.com/lox/flipseven/internal/statistics"
	"github.com/lox/flipseven/internal/strategy"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds  int
	Players int
	Seed    int64
	Workers int
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Result bundles the outcome of a simulation run
type Result struct {
	RunID   string
	Elapsed time.Duration
	Stats   *statistics.Statistics
}

// Simulator runs Flip 7 round simulations
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration
func New(config Config) *Simulator {
	if config.Players < 1 {
		config.Players = 1
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// Run executes the configured number of rounds and returns aggregate
// statistics. Round i always plays with seed Seed+i regardless of
// worker count, so results are reproducible across parallelism levels.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	start := s.config.Clock.Now()

	s.config.Logger.Info("starting simulation",
		"run_id", runID,
		"rounds", s.config.Rounds,
		"players", s.config.Players,
		"seed", s.config.Seed,
		"workers", s.config.Workers)

	rounds := make(chan int)
	workerStats := make([]*statistics.Statistics, s.config.Workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < s.config.Workers; w++ {
		stats := &statistics.Statistics{}
		workerStats[w] = stats
		g.Go(func() error {
			for round := range rounds {
				seed := s.config.Seed + int64(round)
				results, err := s.playRound(seed)
				if err != nil {
					return fmt.Errorf("round %d (seed %d): %w", round, seed, err)
				}
				for _, result := range results {
					stats.Add(result)
				}
			}
			return nil
		})
	}

	go func() {
		defer close(rounds)
		for i := 0; i < s.config.Rounds; i++ {
			select {
			case rounds <- i:
			case <-gctx.Done():
				return
			}
		}
	}()

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Cancellation cuts the feed short without any worker erroring, so
	// a partial run would otherwise come back as a clean result.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, stats := range workerStats {
		total.Merge(stats)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	s.config.Logger.Info("simulation complete",
		"run_id", runID,
		"rounds", total.Rounds,
		"mean", total.Mean(),
		"bust_rate", total.BustRate(),
		"flip_seven_rate", total.FlipSevenRate(),
		"elapsed", elapsed)

	return &Result{RunID: runID, Elapsed: elapsed, Stats: total}, nil
}

// playRound drives one full round: every live hand in turn asks the
// strategy engine, hits while it recommends HIT, and freezes to bank
// its score on STAY. Duplicate draws consume the second chance when
// one is held (the dominant play).
func (s *Simulator) playRound(seed int64) ([]statistics.RoundResult, error) {
	gs := game.NewGameState(randutil.New(seed), s.config.Players)
	gs.StartRound()

	draws := make([]int, s.config.Players)

round:
	for gs.RoundActive() && !gs.IsRoundOver() {
		for idx := 0; idx < s.config.Players && gs.RoundActive(); idx++ {
			hand, err := gs.GetPlayerHand(idx)
			if err != nil {
				return nil, err
			}
			if hand.IsFrozen() || hand.HasBusted() {
				continue
			}

			action, details, err := strategy.RecommendAction(gs, idx)
			if err != nil {
				return nil, err
			}
			if action == strategy.Stay {
				game.HandleFreeze(hand)
				s.config.Logger.Debug("stay",
					"seed", seed, "player", idx,
					"score", details.CurrentScore, "reason", details.Reason)
				continue
			}

			card, result, err := gs.DrawCard(idx)
			if err != nil {
				if errors.Is(err, deck.ErrEmptyDeck) {
					break round
				}
				return nil, err
			}
			draws[idx]++
			s.config.Logger.Debug("draw",
				"seed", seed, "player", idx,
				"card", card, "result", result,
				"bust_probability", details.BustProbability)

			switch result {
			case game.DuplicateWithSecondChance:
				if !game.HandleSecondChance(hand, card) {
					hand.MarkBusted()
				}
			case game.Success:
				if card.IsAction(deck.FlipThree) {
					results, err := game.HandleFlipThree(gs, idx)
					if err != nil {
						return nil, err
					}
					draws[idx] += len(results)
					s.config.Logger.Debug("flip three resolved",
						"seed", seed, "player", idx, "draws", len(results))
				}
			}
		}
	}

	scores := gs.EndRound()
	claimIdx, claimed := gs.FlipSevenPlayer()

	results := make([]statistics.RoundResult, s.config.Players)
	for idx := range results {
		hand, err := gs.GetPlayerHand(idx)
		if err != nil {
			return nil, err
		}
		results[idx] = statistics.RoundResult{
			Score:     scores[idx],
			Draws:     draws[idx],
			Busted:    hand.HasBusted(),
			Frozen:    hand.IsFrozen(),
			FlipSeven: claimed && idx == claimIdx,
			Seed:      seed,
		}
	}
	return results, nil
}
