package bot

import (
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-cli/internal/game"
)

// ManiacBot is an extremely aggressive bot that shoves frequently
type ManiacBot struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger}
}

func (m *ManiacBot) Decide(req game.ActionRequest) (game.Decision, error) {
	m.mu.Lock()
	d := m.decide(req)
	m.mu.Unlock()

	m.logger.Debug("Decision", "player", req.Player.Name, "action", d.Action, "reasoning", d.Reasoning)
	return d, nil
}

func (m *ManiacBot) decide(req game.ActionRequest) game.Decision {
	raise, hasRaise := req.Valid(game.Raise)
	_, hasAllIn := req.Valid(game.AllIn)

	if _, ok := req.Valid(game.Check); ok {
		// We can check - but maniacs prefer to bet
		if m.rng.Float64() < 0.85 {
			if req.Player.Chips <= 20*req.BigBlind || m.rng.Float64() < 0.3 {
				// Shove if short stack or 30% of the time
				if hasAllIn {
					return game.Decision{Action: game.AllIn, Reasoning: "maniac shove"}
				}
			} else if hasRaise {
				// Use 75% of the raise range
				amount := raise.Min + (raise.Max-raise.Min)*3/4
				return game.Decision{Action: game.Raise, Amount: amount, Reasoning: "maniac big raise"}
			}
		}
		return game.Decision{Action: game.Check, Reasoning: "maniac checking"}
	}

	// Facing a bet
	roll := m.rng.Float64()
	if roll < 0.4 && hasAllIn {
		return game.Decision{Action: game.AllIn, Reasoning: "maniac shove over bet"}
	}
	if roll < 0.8 {
		return decide(req, "maniac call", game.Call, game.AllIn)
	}
	return game.Decision{Action: game.Fold, Reasoning: "maniac fold"}
}
