package game

import (
	"fmt"
	"slices"
	"sort"

	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/evaluator"
)

// Pot represents a pot (main or side)
type Pot struct {
	Index    int       // 0 is the main pot, side pots follow in creation order
	Amount   int       // Chips in this pot
	Eligible []*Player // Players who can win it, in seat order
	Level    int       // Cumulative contribution this pot is capped at
}

// BuildPots layers the hand's contributions into a main pot and side pots.
//
// Levels come from the distinct contributions of players still in the hand.
// Each pot takes, from every contributor including folded ones, the slice of
// their contribution between the previous level and its own. Chips folded
// above the top level go to the last pot, so the pots always hold every chip
// that was put in.
func BuildPots(players []*Player) []Pot {
	contenders := inHand(players)

	total := 0
	top := 0
	for _, p := range players {
		total += p.TotalBet
		top = max(top, p.TotalBet)
	}
	if total == 0 || len(contenders) == 0 {
		return nil
	}

	if len(contenders) == 1 {
		return []Pot{{
			Amount:   total,
			Eligible: contenders,
			Level:    top,
		}}
	}

	var levels []int
	for _, p := range contenders {
		if p.TotalBet > 0 {
			levels = append(levels, p.TotalBet)
		}
	}
	sort.Ints(levels)
	levels = slices.Compact(levels)

	var pots []Pot
	prev := 0
	for _, level := range levels {
		pot := Pot{Index: len(pots), Level: level}
		for _, p := range players {
			pot.Amount += max(0, min(p.TotalBet, level)-prev)
		}
		for _, p := range contenders {
			if p.TotalBet >= level {
				pot.Eligible = append(pot.Eligible, p)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = level
	}

	leftover := 0
	for _, p := range players {
		leftover += max(0, p.TotalBet-prev)
	}

	switch {
	case len(pots) == 0:
		pots = []Pot{{Amount: leftover, Eligible: contenders, Level: prev}}
	case leftover > 0:
		pots[len(pots)-1].Amount += leftover
	}
	return pots
}

// TotalPot sums the amounts of pots
func TotalPot(pots []Pot) int {
	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	return total
}

// PotResult records how a single pot was settled
type PotResult struct {
	Pot         Pot
	Winners     []*Player              // In payout order, starting left of the button
	Share       int                    // Chips each winner received before the remainder
	Remainder   int                    // Odd chips handed out one per winner in payout order
	Rank        evaluator.Hand         // Winning hand; zero for uncontested pots
	Hands       map[int]evaluator.Hand // Evaluated hand per eligible seat
	Uncontested bool
}

// Distribute settles each pot and credits the winners' stacks. A pot with a
// single eligible player is awarded without looking at any cards. Otherwise
// every eligible player's hole cards plus the board are evaluated and all
// players tied on the best strength split it. Odd chips go one at a time to
// the tied winners starting with the first seat left of the button.
func Distribute(pots []Pot, board []deck.Card, button int) ([]PotResult, error) {
	results := make([]PotResult, 0, len(pots))

	for _, pot := range pots {
		result := PotResult{Pot: pot}

		switch len(pot.Eligible) {
		case 0:
			return results, fmt.Errorf("pot %d has no eligible players", pot.Index)
		case 1:
			result.Winners = []*Player{pot.Eligible[0]}
			result.Uncontested = true
		default:
			result.Hands = make(map[int]evaluator.Hand, len(pot.Eligible))
			for _, p := range pot.Eligible {
				cards := make([]deck.Card, 0, len(p.HoleCards)+len(board))
				cards = append(cards, p.HoleCards...)
				cards = append(cards, board...)

				hand, err := evaluator.Evaluate(cards)
				if err != nil {
					return results, fmt.Errorf("evaluate %s for pot %d: %w", p.Name, pot.Index, err)
				}
				result.Hands[p.Seat] = hand

				switch cmp := hand.Compare(result.Rank); {
				case len(result.Winners) == 0 || cmp > 0:
					result.Rank = hand
					result.Winners = []*Player{p}
				case cmp == 0:
					result.Winners = append(result.Winners, p)
				}
			}
		}

		result.Winners = payoutOrder(result.Winners, button)
		result.Share = pot.Amount / len(result.Winners)
		result.Remainder = pot.Amount % len(result.Winners)
		for i, w := range result.Winners {
			w.Chips += result.Share
			if i < result.Remainder {
				w.Chips++
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// payoutOrder sorts winners by seat, starting with the first seat after the button
func payoutOrder(winners []*Player, button int) []*Player {
	ordered := slices.Clone(winners)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Seat < ordered[j].Seat })

	split := sort.Search(len(ordered), func(i int) bool { return ordered[i].Seat > button })
	return slices.Concat(ordered[split:], ordered[:split])
}
