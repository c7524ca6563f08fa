package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-cli/internal/game"
)

// CallBot checks or calls to the river. It folds the river to a bet bigger
// than most of the pot and shoves a short stack into an unraised pot.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Decide(req game.ActionRequest) (game.Decision, error) {
	d := c.decide(req)
	c.logger.Debug("Decision", "player", req.Player.Name, "action", d.Action, "reasoning", d.Reasoning)
	return d, nil
}

func (c *CallBot) decide(req game.ActionRequest) game.Decision {
	if req.Street == game.River && req.ToCall > 0 {
		// The pot already includes the bet being faced
		before := req.Pot - req.ToCall
		if float64(req.ToCall) > 0.8*float64(before) {
			return decide(req, "folding river to large bet", game.Fold)
		}
	}

	unraised := req.CurrentBet <= req.BigBlind
	if req.BigBlind > 0 && req.Player.Chips < 10*req.BigBlind && unraised {
		return decide(req, "shoving with short stack", game.AllIn)
	}

	return decide(req, "call-bot calling", game.Check, game.Call, game.Fold)
}
