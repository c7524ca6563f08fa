// Package config loads the table setup for a hand from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/game"
)

// AgentHuman is the agent kind for a player prompted on the terminal
const AgentHuman = "human"

// Config represents the complete table configuration
type Config struct {
	Table   TableSettings  `hcl:"table,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// TableSettings contains table-level configuration
type TableSettings struct {
	SmallBlind int    `hcl:"small_blind,optional"`
	BigBlind   int    `hcl:"big_blind,optional"`
	Button     int    `hcl:"button,optional"`
	Seed       int64  `hcl:"seed,optional"` // Zero shuffles from the clock
	LogLevel   string `hcl:"log_level,optional"`
}

// PlayerConfig defines one seat, in seat order
type PlayerConfig struct {
	Name  string `hcl:"name,label"`
	Chips int    `hcl:"chips,optional"`
	Agent string `hcl:"agent,optional"`
}

const (
	defaultSmallBlind = 5
	defaultBigBlind   = 10
	defaultChips      = 1000
	defaultLogLevel   = "info"
)

// Default returns the table used when no config file exists: a human
// against two bots.
func Default() *Config {
	return &Config{
		Table: TableSettings{
			SmallBlind: defaultSmallBlind,
			BigBlind:   defaultBigBlind,
			LogLevel:   defaultLogLevel,
		},
		Players: []PlayerConfig{
			{Name: "You", Chips: defaultChips, Agent: AgentHuman},
			{Name: "Alice", Chips: defaultChips, Agent: "call"},
			{Name: "Bob", Chips: defaultChips, Agent: "rand"},
		},
	}
}

// Load loads configuration from an HCL file. A missing file gives Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = defaultSmallBlind
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = max(defaultBigBlind, 2*c.Table.SmallBlind)
	}
	if c.Table.LogLevel == "" {
		c.Table.LogLevel = defaultLogLevel
	}

	for i := range c.Players {
		if c.Players[i].Chips == 0 {
			c.Players[i].Chips = defaultChips
		}
		if c.Players[i].Agent == "" {
			c.Players[i].Agent = "call"
		}
		c.Players[i].Agent = strings.ToLower(c.Players[i].Agent)
	}
}

// Agents lists every accepted agent kind
func Agents() []string {
	return append([]string{AgentHuman}, bot.Kinds...)
}

// Validate validates the table configuration
func (c *Config) Validate() error {
	if n := len(c.Players); n < game.MinPlayers || n > game.MaxPlayers {
		return fmt.Errorf("need %d to %d players, got %d", game.MinPlayers, game.MaxPlayers, n)
	}
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Table.BigBlind < c.Table.SmallBlind {
		return fmt.Errorf("big blind must be at least the small blind")
	}
	if c.Table.Button < 0 || c.Table.Button >= len(c.Players) {
		return fmt.Errorf("button %d is not a seat", c.Table.Button)
	}
	if _, ok := logLevels[c.Table.LogLevel]; !ok {
		return fmt.Errorf("invalid log level %q", c.Table.LogLevel)
	}

	seen := make(map[string]bool)
	humans := 0
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player with empty name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player %s", p.Name)
		}
		seen[p.Name] = true
		if p.Chips <= 0 {
			return fmt.Errorf("player %s: chips must be positive", p.Name)
		}
		if !slices.Contains(Agents(), p.Agent) {
			return fmt.Errorf("player %s: invalid agent %s", p.Name, p.Agent)
		}
		if p.Agent == AgentHuman {
			humans++
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human player, got %d", humans)
	}
	return nil
}

// HasHuman reports whether any seat is played from the terminal
func (c *Config) HasHuman() bool {
	return slices.ContainsFunc(c.Players, func(p PlayerConfig) bool { return p.Agent == AgentHuman })
}
