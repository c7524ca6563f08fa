package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-cli/internal/deck"
)

// Category is the class of a five-card poker hand, ordered weakest first.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Strength totally orders hands: a higher value wins and equal values tie.
//
// Each category owns a band starting at Base(). Inside the band the kicker
// ranks are packed base-14, most significant first, so no kicker set can
// reach the next band.
type Strength int

// categoryStep separates category bands; 14^5 < categoryStep.
const categoryStep = 1_000_000

// MaxStrength is the strength of a royal flush, the best possible hand.
const MaxStrength = Strength(RoyalFlush) * categoryStep

// Base returns the lowest strength a hand of category c can have
func (c Category) Base() Strength {
	return Strength(c) * categoryStep
}

// Category recovers the hand category from a strength value
func (s Strength) Category() Category {
	return Category(s / categoryStep)
}

// Hand is the best five-card hand found among a set of cards
type Hand struct {
	Category Category
	Strength Strength
	Cards    []deck.Card // The 5 cards that make up the hand, high to low
	Kickers  []deck.Rank // Ranks encoded into Strength, most significant first
}

// String returns a string representation of the hand
func (h Hand) String() string {
	var cardStrs []string
	for _, card := range h.Cards {
		cardStrs = append(cardStrs, card.String())
	}
	return fmt.Sprintf("%s [%s]", h.Category, strings.Join(cardStrs, " "))
}

// Compare returns 1 if h1 beats h2, -1 if h2 beats h1 and 0 on a tie
func (h1 Hand) Compare(h2 Hand) int {
	switch {
	case h1.Strength < h2.Strength:
		return -1
	case h1.Strength > h2.Strength:
		return 1
	}
	return 0
}

// CompareWithExplanation compares two hands and describes why one wins
func (h1 Hand) CompareWithExplanation(h2 Hand) (int, string) {
	result := h1.Compare(h2)
	if result == 0 {
		return result, "hands tie"
	}

	winner, loser := h1, h2
	if result < 0 {
		winner, loser = h2, h1
	}

	explanation := fmt.Sprintf("%s beats %s", winner, loser)
	if winner.Category != loser.Category {
		return result, explanation + fmt.Sprintf(" (%s beats %s)", winner.Category, loser.Category)
	}

	for i := 0; i < len(winner.Kickers) && i < len(loser.Kickers); i++ {
		if winner.Kickers[i] != loser.Kickers[i] {
			explanation += fmt.Sprintf(" with %s (%s vs %s)",
				kickerLabel(winner.Category, i), winner.Kickers[i], loser.Kickers[i])
			break
		}
	}
	return result, explanation
}

func kickerLabel(c Category, i int) string {
	switch c {
	case OnePair:
		if i == 0 {
			return "higher pair"
		}
	case TwoPair:
		if i == 0 {
			return "higher top pair"
		}
		if i == 1 {
			return "higher bottom pair"
		}
	case ThreeOfAKind, FullHouse:
		if i == 0 {
			return "higher trips"
		}
		if c == FullHouse {
			return "higher pair"
		}
	case FourOfAKind:
		if i == 0 {
			return "higher quads"
		}
	case Straight, StraightFlush:
		return "higher straight"
	case Flush:
		return "higher flush card"
	}
	return "higher kicker"
}

// Compare orders two hands by strength, see Hand.Compare
func Compare(a, b Hand) int {
	return a.Compare(b)
}
