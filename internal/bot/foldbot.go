package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-cli/internal/game"
)

// FoldBot is a simple bot that always folds (or checks when possible)
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) Decide(req game.ActionRequest) (game.Decision, error) {
	if _, ok := req.Valid(game.Check); ok {
		return game.Decision{Action: game.Check, Reasoning: "fold-bot checking"}, nil
	}
	return game.Decision{Action: game.Fold, Reasoning: "fold-bot folding"}, nil
}
