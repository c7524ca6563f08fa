// Package evaluator ranks poker hands.
//
// Evaluate takes five or more cards, scores every five-card subset and keeps
// the strongest. For seven cards that is 21 subsets, which is cheap enough
// that no lookup tables are needed and every result can be traced back to the
// predicate that produced it.
package evaluator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lox/holdem-cli/internal/deck"
)

// HandSize is the number of cards in a scored poker hand
const HandSize = 5

// ErrTooFewCards is returned when fewer than five cards are evaluated
var ErrTooFewCards = errors.New("at least 5 cards required")

// Evaluate returns the best five-card hand that can be made from cards.
// The input slice is never reordered.
func Evaluate(cards []deck.Card) (Hand, error) {
	if len(cards) < HandSize {
		return Hand{}, fmt.Errorf("evaluate %d cards: %w", len(cards), ErrTooFewCards)
	}

	var best Hand
	found := false
	var five [HandSize]deck.Card

	forEachCombination(len(cards), HandSize, func(idx []int) {
		for i, j := range idx {
			five[i] = cards[j]
		}
		hand := scoreFive(five)
		if !found || hand.Strength > best.Strength {
			best = hand
			found = true
		}
	})

	return best, nil
}

// BestCategory returns only the category of the best hand in cards
func BestCategory(cards []deck.Card) (Category, error) {
	hand, err := Evaluate(cards)
	if err != nil {
		return HighCard, err
	}
	return hand.Category, nil
}

// forEachCombination calls fn with every k-sized set of indexes into [0, n),
// in lexicographic order. fn must not retain idx.
func forEachCombination(n, k int, fn func(idx []int)) {
	if k > n || k <= 0 {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		fn(idx)

		// Find the rightmost index that can still move right
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// scoreFive classifies exactly five cards. five is a copy owned by the caller
// and is sorted in place.
func scoreFive(five [HandSize]deck.Card) Hand {
	sort.Slice(five[:], func(i, j int) bool { return five[i].Rank < five[j].Rank })

	var counts [deck.Ace + 1]int
	for _, c := range five {
		counts[c.Rank]++
	}

	category, kickers := classify(five, counts)

	cards := make([]deck.Card, HandSize)
	for i := range five {
		cards[i] = five[HandSize-1-i]
	}

	return Hand{
		Category: category,
		Strength: category.Base() + pack(kickers),
		Cards:    cards,
		Kickers:  kickers,
	}
}

// classify tests the categories strongest first; the first match wins.
func classify(five [HandSize]deck.Card, counts [deck.Ace + 1]int) (Category, []deck.Rank) {
	flush := isFlush(five)
	straight := isStraight(five)
	high := five[HandSize-1].Rank

	switch {
	case flush && straight && high == deck.Ace:
		return RoyalFlush, nil
	case flush && straight:
		return StraightFlush, []deck.Rank{high}
	case hasCount(counts, 4):
		quad := ranksWithCount(counts, 4)
		return FourOfAKind, append(quad, ranksWithCount(counts, 1)...)
	case hasCount(counts, 3) && hasCount(counts, 2):
		return FullHouse, append(ranksWithCount(counts, 3), ranksWithCount(counts, 2)...)
	case flush:
		return Flush, ranksWithCount(counts, 1)
	case straight:
		return Straight, []deck.Rank{high}
	case hasCount(counts, 3):
		return ThreeOfAKind, append(ranksWithCount(counts, 3), ranksWithCount(counts, 1)...)
	case len(ranksWithCount(counts, 2)) == 2:
		return TwoPair, append(ranksWithCount(counts, 2), ranksWithCount(counts, 1)...)
	case hasCount(counts, 2):
		return OnePair, append(ranksWithCount(counts, 2), ranksWithCount(counts, 1)...)
	}
	return HighCard, ranksWithCount(counts, 1)
}

func isFlush(five [HandSize]deck.Card) bool {
	for _, c := range five[1:] {
		if c.Suit != five[0].Suit {
			return false
		}
	}
	return true
}

// isStraight expects five sorted ascending. Ace only plays high, so
// A-2-3-4-5 is not a straight.
func isStraight(five [HandSize]deck.Card) bool {
	for i := 0; i < HandSize-1; i++ {
		if five[i].Rank+1 != five[i+1].Rank {
			return false
		}
	}
	return true
}

func hasCount(counts [deck.Ace + 1]int, n int) bool {
	for _, c := range counts {
		if c == n {
			return true
		}
	}
	return false
}

// ranksWithCount lists the ranks appearing exactly n times, highest first
func ranksWithCount(counts [deck.Ace + 1]int, n int) []deck.Rank {
	var ranks []deck.Rank
	for r := deck.Ace; r >= deck.Two; r-- {
		if counts[r] == n {
			ranks = append(ranks, r)
		}
	}
	return ranks
}

// pack encodes ranks base-14, first rank most significant
func pack(ranks []deck.Rank) Strength {
	var v Strength
	for _, r := range ranks {
		v = v*14 + Strength(r)
	}
	return v
}
