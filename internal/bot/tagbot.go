package bot

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/evaluator"
	"github.com/lox/holdem-cli/internal/game"
)

// TAGBot is a Tight Aggressive bot that plays premium hands aggressively
type TAGBot struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *log.Logger
}

// NewTAGBot creates a new TAGBot instance
func NewTAGBot(rng *rand.Rand, logger *log.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: logger}
}

func (t *TAGBot) Decide(req game.ActionRequest) (game.Decision, error) {
	d := t.decide(req)
	t.logger.Debug("Decision", "player", req.Player.Name, "street", req.Street, "action", d.Action, "amount", d.Amount)
	return d, nil
}

func (t *TAGBot) decide(req game.ActionRequest) game.Decision {
	if req.Street == game.Preflop {
		if isPremium(req.Player.HoleCards) {
			if d, ok := raiseBy(req, 3*req.BigBlind, "TAG raise premium"); ok {
				return d
			}
			return decide(req, "TAG call premium", game.Call, game.Check)
		}
	} else if category, ok := madeHand(req); ok {
		switch {
		case category >= evaluator.TwoPair:
			if d, ok := raiseBy(req, req.Pot/2, "TAG value bet "+category.String()); ok {
				return d
			}
			return decide(req, "TAG call "+category.String(), game.Call, game.Check)
		case category == evaluator.OnePair:
			return decide(req, "TAG pot control", game.Check, game.Call)
		}
	}

	// Default tight behavior - check, call occasionally
	if _, ok := req.Valid(game.Check); ok {
		return game.Decision{Action: game.Check, Reasoning: "TAG check"}
	}

	t.mu.Lock()
	roll := t.rng.Float64()
	t.mu.Unlock()

	cheap := req.ToCall <= req.BigBlind
	if roll < 0.3 && cheap { // 30% call rate when it is cheap
		return decide(req, "TAG call", game.Call, game.Fold)
	}
	return game.Decision{Action: game.Fold, Reasoning: "TAG fold"}
}

// isPremium reports TT+ and AK, AQ
func isPremium(hole []deck.Card) bool {
	if len(hole) != 2 {
		return false
	}
	a, b := hole[0].Rank, hole[1].Rank
	if a == b {
		return a >= deck.Ten
	}
	hi, lo := max(a, b), min(a, b)
	return hi == deck.Ace && lo >= deck.Queen
}

// madeHand evaluates hole cards plus board once there are five cards
func madeHand(req game.ActionRequest) (evaluator.Category, bool) {
	cards := slices.Concat(req.Player.HoleCards, req.Board)
	category, err := evaluator.BestCategory(cards)
	if err != nil {
		return evaluator.HighCard, false
	}
	return category, true
}
