package bot

import (
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-cli/internal/game"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(req game.ActionRequest) (game.Decision, error) {
	if len(req.ValidActions) == 0 {
		return game.Decision{Action: game.Fold, Reasoning: "rand-bot no valid actions"}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Pick random valid action
	va := req.ValidActions[r.rng.IntN(len(req.ValidActions))]

	// For raises, pick random amount between min and max
	amount := va.Min
	if va.Action == game.Raise && va.Max > va.Min {
		amount = va.Min + r.rng.IntN(va.Max-va.Min+1)
	}

	return game.Decision{Action: va.Action, Amount: amount, Reasoning: "rand-bot random action"}, nil
}
