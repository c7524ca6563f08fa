package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-cli/internal/simulator"
)

type SimulateCmd struct {
	Hands      int           `short:"n" default:"10000" help:"Number of hands to simulate"`
	Agents     []string      `default:"tag,rand,call,maniac" help:"Bot kind for each seat, in seat order"`
	Chips      int           `default:"1000" help:"Starting stack for every seat"`
	SmallBlind int           `default:"5" help:"Small blind"`
	BigBlind   int           `default:"10" help:"Big blind"`
	Seed       int64         `help:"RNG seed (0 for random)"`
	Workers    int           `help:"Hands played in parallel (0 for one per CPU)"`
	Timeout    time.Duration `default:"5s" help:"Per-hand timeout"`
	LogLevel   string        `short:"l" default:"warn" help:"Log level (debug|info|warn|error)"`
}

func (c *SimulateCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, os.Stdout)
}

func (c *SimulateCmd) run(ctx context.Context, out io.Writer) error {
	level, err := parseLevel(c.LogLevel, log.WarnLevel)
	if err != nil {
		return err
	}
	logger, _, err := newLogger(level, "")
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := simulator.Config{
		Hands:      c.Hands,
		SmallBlind: c.SmallBlind,
		BigBlind:   c.BigBlind,
		Seed:       seed,
		Workers:    c.Workers,
		Timeout:    c.Timeout,
		Logger:     logger,
	}
	for i, agent := range c.Agents {
		cfg.Seats = append(cfg.Seats, simulator.Seat{
			Name:  fmt.Sprintf("Seat%d", i+1),
			Agent: agent,
			Chips: c.Chips,
		})
	}

	start := time.Now()
	summary, err := simulator.New(cfg).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seed: %d, %d hands in %v\n", seed, summary.Hands, time.Since(start).Round(time.Millisecond))
	simulator.PrintSummary(out, summary)
	return nil
}
