// Package simulator plays many independent hands between bots and
// summarises the results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/game"
	"github.com/lox/holdem-cli/internal/statistics"
)

// Seat is one bot at the simulated table
type Seat struct {
	Name  string
	Agent string // A bot kind, see bot.Kinds
	Chips int
}

// Config holds configuration for running simulations
type Config struct {
	Seats      []Seat
	Hands      int
	SmallBlind int
	BigBlind   int
	Seed       int64
	Workers    int           // Hands played at once, defaults to GOMAXPROCS
	Timeout    time.Duration // Per hand, zero for none
	Logger     *log.Logger
}

// Validate checks the simulation can be run
func (c Config) Validate() error {
	if c.Hands <= 0 {
		return fmt.Errorf("hands must be positive, got %d", c.Hands)
	}
	for _, s := range c.Seats {
		if !bot.IsKind(s.Agent) {
			return fmt.Errorf("seat %s: agent %q is not a bot, expected one of %s",
				s.Name, s.Agent, strings.Join(bot.Kinds, ", "))
		}
	}
	sources, err := c.sources(deck.NewRand(c.Seed), log.New(io.Discard))
	if err != nil {
		return err
	}
	return c.handConfig(0, sources).Validate()
}

// sources creates a fresh bot for every seat
func (c Config) sources(rng *rand.Rand, logger *log.Logger) ([]game.ActionSource, error) {
	sources := make([]game.ActionSource, len(c.Seats))
	for i, seat := range c.Seats {
		src, err := bot.New(seat.Agent, rng, logger)
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}
		sources[i] = src
	}
	return sources, nil
}

func (c Config) handConfig(button int, sources []game.ActionSource) game.HandConfig {
	cfg := game.HandConfig{
		Button:     button,
		SmallBlind: c.SmallBlind,
		BigBlind:   c.BigBlind,
	}
	for i, s := range c.Seats {
		cfg.Seats = append(cfg.Seats, game.SeatConfig{Name: s.Name, Chips: s.Chips, Source: sources[i]})
	}
	return cfg
}

// SeatSummary is one seat's results across the simulation
type SeatSummary struct {
	Seat
	Stats *statistics.Statistics
}

// AgentSummary merges the results of every seat played by one bot kind
type AgentSummary struct {
	Agent string
	Seats int
	Stats *statistics.Statistics
}

// Summary describes a finished simulation
type Summary struct {
	Hands       int
	Showdowns   int
	Uncontested int // Hands won without showdown
	SidePots    int // Pots beyond the main pot
	SplitPots   int // Pots shared by more than one winner
	OddChips    int // Pots with a remainder after splitting
	ChipsMoved  int // Sum of every hand's settled pot
	Seats       []SeatSummary
	Agents      []AgentSummary // In order of each kind's first seat
}

// handOutcome is what a single hand contributes to the summary
type handOutcome struct {
	seed   int64
	button int
	result *game.HandResult
}

// Simulator runs poker hand simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}
}

// Run plays every hand and returns the summary. Hands are independent: each
// starts from the configured stacks with its own deck and bots, and the
// button moves round the table so every seat gets every position.
func (s *Simulator) Run(ctx context.Context) (*Summary, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	workers := s.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]handOutcome, s.config.Hands)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range outcomes {
		seed := s.config.Seed + int64(i)
		button := i % len(s.config.Seats)
		g.Go(func() error {
			result, err := s.playHand(ctx, seed, button)
			if err != nil {
				return fmt.Errorf("hand %d (seed %d): %w", i+1, seed, err)
			}
			outcomes[i] = handOutcome{seed: seed, button: button, result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s.summarise(outcomes)
}

// playHand plays one hand with fresh bots sharing the hand's RNG
func (s *Simulator) playHand(ctx context.Context, seed int64, button int) (*game.HandResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	rng := deck.NewRand(seed)
	sources, err := s.config.sources(rng, s.logger)
	if err != nil {
		return nil, err
	}

	hand, err := game.NewHand(s.config.handConfig(button, sources),
		game.WithRand(rng),
		game.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}

	result, err := hand.Play(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("hand timed out after %v: %w", s.config.Timeout, err)
		}
		return nil, err
	}
	return result, nil
}

// summarise folds the outcomes in hand order so results do not depend on
// which worker finished first.
func (s *Simulator) summarise(outcomes []handOutcome) (*Summary, error) {
	n := len(s.config.Seats)
	bb := float64(s.config.BigBlind)

	summary := &Summary{Hands: len(outcomes)}
	for _, seat := range s.config.Seats {
		summary.Seats = append(summary.Seats, SeatSummary{Seat: seat, Stats: &statistics.Statistics{}})
	}

	for _, o := range outcomes {
		r := o.result
		net := 0
		for _, v := range r.Net {
			net += v
		}
		if net != 0 {
			return nil, fmt.Errorf("seed %d: net chips %d: %w", o.seed, net, game.ErrChipConservation)
		}

		if r.Showdown {
			summary.Showdowns++
		} else {
			summary.Uncontested++
		}
		for _, pot := range r.Pots {
			if pot.Pot.Index > 0 {
				summary.SidePots++
			}
			if len(pot.Winners) > 1 {
				summary.SplitPots++
			}
			if pot.Remainder > 0 {
				summary.OddChips++
			}
		}
		potBB := float64(r.PotTotal()) / bb
		summary.ChipsMoved += r.PotTotal()

		for seat := range n {
			summary.Seats[seat].Stats.Add(statistics.HandResult{
				NetBB:    float64(r.Net[seat]) / bb,
				Seed:     o.seed,
				Position: (seat - o.button + n) % n,
				Showdown: r.Showdown && r.Players[seat].IsInHand(),
				PotBB:    potBB,
			})
		}
	}

	for _, seat := range summary.Seats {
		if err := seat.Stats.Validate(); err != nil {
			return nil, fmt.Errorf("statistics for %s: %w", seat.Name, err)
		}

		agent := strings.ToLower(seat.Agent)
		i := slices.IndexFunc(summary.Agents, func(a AgentSummary) bool { return a.Agent == agent })
		if i < 0 {
			summary.Agents = append(summary.Agents, AgentSummary{Agent: agent, Stats: &statistics.Statistics{}})
			i = len(summary.Agents) - 1
		}
		summary.Agents[i].Seats++
		summary.Agents[i].Stats.Merge(seat.Stats)
	}

	s.logger.Info("Simulation complete",
		"hands", summary.Hands,
		"showdowns", summary.Showdowns,
		"sidePots", summary.SidePots,
		"splitPots", summary.SplitPots)
	return summary, nil
}

// PrintSummary writes a report of the simulation to w
func PrintSummary(w io.Writer, summary *Summary) {
	fmt.Fprintf(w, "\n=== SIMULATION RESULTS ===\n")
	fmt.Fprintf(w, "Hands played: %d\n", summary.Hands)
	if summary.Hands > 0 {
		fmt.Fprintf(w, "Showdowns: %d (%.1f%%), won uncontested: %d\n",
			summary.Showdowns, float64(summary.Showdowns)/float64(summary.Hands)*100, summary.Uncontested)
	}
	fmt.Fprintf(w, "Side pots: %d, split pots: %d, odd chips: %d\n",
		summary.SidePots, summary.SplitPots, summary.OddChips)
	fmt.Fprintf(w, "Chips settled: %d, all hands conserved chips\n", summary.ChipsMoved)

	for _, seat := range summary.Seats {
		stats := seat.Stats
		low, high := stats.ConfidenceInterval95()
		fmt.Fprintf(w, "\n=== %s (%s-bot) ===\n", seat.Name, seat.Agent)
		fmt.Fprintf(w, "Mean: %.4f bb/hand, median %.4f\n", stats.Mean(), stats.Median())
		fmt.Fprintf(w, "Std Dev: %.4f bb, 95%% CI: [%.4f, %.4f]\n", stats.StdDev(), low, high)
		fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
			stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
		fmt.Fprintf(w, "Winning hands: %d showdown, %d without showdown\n", stats.ShowdownWins, stats.NonShowdownWins)
		fmt.Fprintf(w, "Largest pot: %.1f bb, big pots (>=50bb): %d for %.2f bb\n",
			stats.MaxPotBB, stats.BigPots, stats.BigPotsBB)

		var positions []string
		for pos := 0; pos < len(summary.Seats); pos++ {
			if stats.PositionResults[pos].Hands > 0 {
				positions = append(positions, fmt.Sprintf("%s %.3f", positionName(pos, len(summary.Seats)), stats.PositionMean(pos)))
			}
		}
		fmt.Fprintf(w, "By position: %s\n", strings.Join(positions, ", "))
	}

	fmt.Fprintf(w, "\n=== By agent ===\n")
	for _, agent := range summary.Agents {
		low, high := agent.Stats.ConfidenceInterval95()
		fmt.Fprintf(w, "%s-bot (%d seats): %.4f bb/hand, 95%% CI [%.4f, %.4f], showdown %.2f bb, non-showdown %.2f bb\n",
			agent.Agent, agent.Seats, agent.Stats.Mean(), low, high, agent.Stats.ShowdownBB, agent.Stats.NonShowdownBB)
	}
}

// positionName names a seat by its distance left of the button
func positionName(pos, seats int) string {
	switch {
	case pos == 0:
		return "BTN"
	case seats == 2:
		return "BB" // The button posts the small blind heads-up
	case pos == 1:
		return "SB"
	case pos == 2:
		return "BB"
	}
	return fmt.Sprintf("BTN+%d", pos)
}
