// Package bot provides computer players for the table. Each bot is a
// game.ActionSource that only ever picks from the request's valid actions.
package bot

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-cli/internal/game"
)

// Kinds lists the bot names accepted by New
var Kinds = []string{"call", "fold", "rand", "tag", "maniac"}

// New creates a bot by name. rng is only used by bots that need randomness.
func New(kind string, rng *rand.Rand, logger *log.Logger) (game.ActionSource, error) {
	logger = logger.WithPrefix(kind + "-bot")
	switch strings.ToLower(kind) {
	case "call":
		return NewCallBot(logger), nil
	case "fold":
		return NewFoldBot(logger), nil
	case "rand":
		return NewRandBot(rng, logger), nil
	case "tag":
		return NewTAGBot(rng, logger), nil
	case "maniac":
		return NewManiacBot(rng, logger), nil
	}
	return nil, fmt.Errorf("unknown bot %q, expected one of %s", kind, strings.Join(Kinds, ", "))
}

// IsKind reports whether New accepts kind
func IsKind(kind string) bool {
	return slices.Contains(Kinds, strings.ToLower(kind))
}

// decide returns preferred when it is legal, otherwise the first of fallbacks
// that is, and finally a fold.
func decide(req game.ActionRequest, reasoning string, preferred game.Action, fallbacks ...game.Action) game.Decision {
	for _, a := range append([]game.Action{preferred}, fallbacks...) {
		if va, ok := req.Valid(a); ok {
			d := game.Decision{Action: a, Reasoning: reasoning}
			if a == game.Raise {
				d.Amount = va.Min
			}
			if a != preferred {
				d.Reasoning = "fallback: " + reasoning
			}
			return d
		}
	}
	return game.Decision{Action: game.Fold, Reasoning: "no legal action: " + reasoning}
}

// raiseBy returns a raise of amount clamped to the legal range
func raiseBy(req game.ActionRequest, amount int, reasoning string) (game.Decision, bool) {
	va, ok := req.Valid(game.Raise)
	if !ok {
		return game.Decision{}, false
	}
	return game.Decision{
		Action:    game.Raise,
		Amount:    max(va.Min, min(amount, va.Max)),
		Reasoning: reasoning,
	}, true
}
