package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/config"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/display"
	"github.com/lox/holdem-cli/internal/game"
)

type PlayCmd struct {
	Config    string `short:"c" default:"holdem.hcl" help:"Path to HCL table configuration"`
	Seed      int64  `help:"Shuffle seed (overrides config, 0 for random)"`
	Button    *int   `help:"Button seat (overrides config)"`
	LogLevel  string `short:"l" help:"Log level (overrides config)"`
	LogFile   string `help:"Write logs to this file (default holdem.log when a human plays, otherwise stderr)"`
	Reasoning bool   `help:"Show the bots' reasoning after each action"`
}

func (c *PlayCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, os.Stdin, os.Stdout)
}

// defaultLogFile keeps logs off the terminal a human is playing on
const defaultLogFile = "holdem.log"

func (c *PlayCmd) logDestination(cfg *config.Config) string {
	if c.LogFile == "" && cfg.HasHuman() {
		return defaultLogFile
	}
	return c.LogFile
}

func (c *PlayCmd) run(ctx context.Context, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Apply command line overrides
	if c.Seed != 0 {
		cfg.Table.Seed = c.Seed
	}
	if c.Button != nil {
		cfg.Table.Button = *c.Button
	}
	if c.LogLevel != "" {
		cfg.Table.LogLevel = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := newLogger(cfg.Level(), c.logDestination(cfg))
	if err != nil {
		return err
	}
	defer closeLog()

	seed := cfg.Table.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := deck.NewRand(seed)

	hand := game.HandConfig{
		Button:     cfg.Table.Button,
		SmallBlind: cfg.Table.SmallBlind,
		BigBlind:   cfg.Table.BigBlind,
	}
	for _, p := range cfg.Players {
		var source game.ActionSource
		if p.Agent == config.AgentHuman {
			prompt, err := display.NewPrompt(in, out)
			if err != nil {
				return err
			}
			defer prompt.Close()
			source = prompt
		} else {
			source, err = bot.New(p.Agent, rng, logger)
			if err != nil {
				return err
			}
		}
		hand.Seats = append(hand.Seats, game.SeatConfig{Name: p.Name, Chips: p.Chips, Source: source})
	}

	text := display.NewText(out)
	text.ShowReasoning = c.Reasoning
	bus := game.NewEventBus()
	bus.Subscribe(text)

	h, err := game.NewHand(hand,
		game.WithRand(rng),
		game.WithEventBus(bus),
		game.WithLogger(logger))
	if err != nil {
		return err
	}

	title := lipgloss.NewRenderer(out).NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1).
		Bold(true)
	fmt.Fprintln(out, title.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
	fmt.Fprintln(out)

	logger.Info("Starting hand", "hand", h.ID, "seed", seed, "players", len(hand.Seats))
	result, err := h.Play(ctx)
	if err != nil {
		return fmt.Errorf("hand %s: %w", h.ID, err)
	}

	logger.Info("Hand complete", "hand", result.HandID, "pot", result.PotTotal(), "showdown", result.Showdown)
	return nil
}
