package game

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-cli/internal/deck"
)

// HandOption configures a HandState during creation.
type HandOption func(*handOptions)

type handOptions struct {
	rng         *rand.Rand
	deck        *deck.Deck
	bus         EventBus
	logger      *log.Logger
	clock       quartz.Clock
	handID      string
	maxAttempts int
}

func defaultHandOptions() *handOptions {
	return &handOptions{
		logger:      log.New(io.Discard),
		clock:       quartz.NewReal(),
		maxAttempts: DefaultMaxAttempts,
	}
}

// WithRand shuffles the deck with rng. Ignored when WithDeck is given.
func WithRand(rng *rand.Rand) HandOption {
	return func(o *handOptions) {
		o.rng = rng
	}
}

// WithDeck sets a specific deck, typically a stacked one for tests.
// This overrides the RNG for deck creation.
func WithDeck(d *deck.Deck) HandOption {
	return func(o *handOptions) {
		o.deck = d
	}
}

// WithEventBus publishes the hand's events to bus
func WithEventBus(bus EventBus) HandOption {
	return func(o *handOptions) {
		o.bus = bus
	}
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(logger *log.Logger) HandOption {
	return func(o *handOptions) {
		o.logger = logger
	}
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) HandOption {
	return func(o *handOptions) {
		o.clock = clock
	}
}

// WithHandID fixes the hand ID instead of generating one
func WithHandID(id string) HandOption {
	return func(o *handOptions) {
		o.handID = id
	}
}

// WithMaxAttempts sets how many illegal decisions a player may make on a
// single turn before one is chosen for them.
func WithMaxAttempts(n int) HandOption {
	return func(o *handOptions) {
		o.maxAttempts = n
	}
}
