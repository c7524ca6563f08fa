package evaluator

import (
	"cmp"
	"testing"

	"github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-cli/internal/deck"
)

func toOracle(t *testing.T, c deck.Card) poker.Card {
	t.Helper()

	var s poker.Suit
	switch c.Suit {
	case deck.Clubs:
		s = poker.Club
	case deck.Diamonds:
		s = poker.Diamond
	case deck.Hearts:
		s = poker.Heart
	default:
		s = poker.Spade
	}

	r := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		r = poker.Rank(1)
	}

	card, err := poker.MakeCard(s, r)
	require.NoError(t, err)
	return card
}

func oracleScore(t *testing.T, cards []deck.Card) int16 {
	t.Helper()
	var five [5]poker.Card
	for i, c := range cards {
		five[i] = toOracle(t, c)
	}
	return poker.Eval5(&five)
}

// isWheel reports A-2-3-4-5, which the oracle treats as a straight
func isWheel(cards []deck.Card) bool {
	seen := make(map[deck.Rank]bool)
	for _, c := range cards {
		seen[c.Rank] = true
	}
	return len(seen) == 5 && seen[deck.Ace] && seen[deck.Two] && seen[deck.Three] && seen[deck.Four] && seen[deck.Five]
}

func TestOrderingMatchesOracle(t *testing.T) {
	t.Parallel()

	rng := deck.NewRand(42)
	compared := 0
	for compared < 20000 {
		a := randomHand(rng, HandSize)
		b := randomHand(rng, HandSize)
		if isWheel(a) || isWheel(b) {
			continue
		}

		ha, err := Evaluate(a)
		require.NoError(t, err)
		hb, err := Evaluate(b)
		require.NoError(t, err)

		want := cmp.Compare(oracleScore(t, a), oracleScore(t, b))
		require.Equal(t, want, ha.Compare(hb), "%v vs %v", ha, hb)
		compared++
	}
}
