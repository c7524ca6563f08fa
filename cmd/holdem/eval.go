package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/evaluator"
)

type EvalCmd struct {
	Hands []string `arg:"" help:"Hands of five to seven cards, e.g. \"As Kd Qh Jc Ts\""`
	Board string   `short:"b" help:"Community cards shared by every hand"`
}

func (c *EvalCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *EvalCmd) run(out io.Writer) error {
	board, err := deck.ParseCards(c.Board)
	if err != nil {
		return fmt.Errorf("invalid board: %w", err)
	}

	hands, err := parseHands(c.Hands, board)
	if err != nil {
		return err
	}

	best := 0
	for i, h := range hands {
		fmt.Fprintf(out, "%d: %s (strength %d)\n", i+1, h, h.Strength)
		if h.Compare(hands[best]) > 0 {
			best = i
		}
	}

	if len(hands) < 2 {
		return nil
	}

	var winners []int
	for i, h := range hands {
		if h.Compare(hands[best]) == 0 {
			winners = append(winners, i+1)
		}
	}
	if len(winners) > 1 {
		fmt.Fprintf(out, "Split between hands %v\n", winners)
		return nil
	}

	for i, h := range hands {
		if i == best {
			continue
		}
		_, why := hands[best].CompareWithExplanation(h)
		fmt.Fprintf(out, "Hand %d beats hand %d: %s\n", best+1, i+1, why)
	}
	return nil
}

// parseHands evaluates each argument together with the board. Cards may not
// repeat across hands or the board.
func parseHands(args []string, board []deck.Card) ([]evaluator.Hand, error) {
	seen := make(map[deck.Card]bool)
	for _, c := range board {
		if seen[c] {
			return nil, fmt.Errorf("%s appears twice: %w", c.Code(), deck.ErrDuplicateCard)
		}
		seen[c] = true
	}

	hands := make([]evaluator.Hand, 0, len(args))
	for _, arg := range args {
		cards, err := deck.ParseCards(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid hand %q: %w", arg, err)
		}
		for _, c := range cards {
			if seen[c] {
				return nil, fmt.Errorf("%s appears twice: %w", c.Code(), deck.ErrDuplicateCard)
			}
			seen[c] = true
		}

		all := append(cards, board...)
		if len(all) > 7 {
			return nil, fmt.Errorf("hand %q has %d cards with the board, at most 7", arg, len(all))
		}
		h, err := evaluator.Evaluate(all)
		if err != nil {
			return nil, fmt.Errorf("hand %q: %w", arg, err)
		}
		hands = append(hands, h)
	}
	return hands, nil
}
