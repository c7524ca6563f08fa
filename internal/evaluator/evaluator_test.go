package evaluator

import (
	"errors"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-cli/internal/deck"
)

func mustEvaluate(t *testing.T, cards string) Hand {
	t.Helper()
	hand, err := Evaluate(deck.MustParseCards(cards))
	require.NoError(t, err)
	return hand
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		expected Category
	}{
		{"royal flush", "AsKsQsJsTs9h8h", RoyalFlush},
		{"straight flush", "9s8s7s6s5s4h3h", StraightFlush},
		{"four of a kind", "AsAhAdAcKs2h3h", FourOfAKind},
		{"full house", "AsAhAdKsKh2h3h", FullHouse},
		{"flush", "AsKsQs8s6s4h3h", Flush},
		{"straight", "AsKhQdJcTs9h8h", Straight},
		{"three of a kind", "AsAhAdKs9c7h5h", ThreeOfAKind},
		{"two pair", "AsAhKdKs9c7h5h", TwoPair},
		{"one pair", "AsAhKdQs9c7h5h", OnePair},
		{"high card", "AsKhQd9c7s5h3d", HighCard},
		{"exactly five cards", "2c2d2h5s9s", ThreeOfAKind},
		{"full house from two trips", "KsKhKd7c7h7dAs", FullHouse},
		{"three pairs keeps two", "AsAhKdKs9c9h5h", TwoPair},
		{"straight flush beats flush in same cards", "Th9h8h7h6h2h3h", StraightFlush},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			hand := mustEvaluate(t, tc.cards)
			assert.Equal(t, tc.expected, hand.Category, "hand %s", hand)
			assert.Equal(t, tc.expected, hand.Strength.Category())
			assert.Len(t, hand.Cards, HandSize)

			category, err := BestCategory(deck.MustParseCards(tc.cards))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, category)
		})
	}
}

func TestStrengthEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards    string
		expected Strength
	}{
		{"AhKhQhJh10h", MaxStrength},
		{"9s8s7s6s5s", StraightFlush.Base() + 9},
		{"7c7d7h7s2d", FourOfAKind.Base() + 7*14 + 2},
		{"5c5d5hKsKd", FullHouse.Base() + 5*14 + 13},
		{"2d4d6d8dTd", Flush.Base() + (((10*14+8)*14+6)*14+4)*14 + 2},
		{"6c7d8h9sTc", Straight.Base() + 10},
		{"9c9d9h4s2c", ThreeOfAKind.Base() + 9*196 + 4*14 + 2},
		{"2c2d5h5s9s", TwoPair.Base() + 5*196 + 2*14 + 9},
		{"2c2d5h9sKs", OnePair.Base() + 2*2744 + 13*196 + 9*14 + 5},
		{"2c4d6h8sTc", (((10*14+8)*14+6)*14+4)*14 + 2},
	}

	for _, tc := range tests {
		t.Run(tc.cards, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, mustEvaluate(t, tc.cards).Strength)
		})
	}
}

func TestRoyalFlushIsMaximum(t *testing.T) {
	t.Parallel()

	royal := mustEvaluate(t, "Ah Kh Qh Jh 10h")
	assert.Equal(t, RoyalFlush, royal.Category)
	assert.Equal(t, MaxStrength, royal.Strength)

	kingHigh := mustEvaluate(t, "Kh Qh Jh 10h 9h")
	assert.Equal(t, StraightFlush, kingHigh.Category)
	assert.Equal(t, 1, royal.Compare(kingHigh))
}

func TestCategoryDominatesKickers(t *testing.T) {
	t.Parallel()

	pair := mustEvaluate(t, "2c 2d Ah Ks Qs")
	twoPair := mustEvaluate(t, "2c 2d 3h 3s 4s")
	assert.Equal(t, OnePair, pair.Category)
	assert.Equal(t, TwoPair, twoPair.Category)
	assert.Greater(t, twoPair.Strength, pair.Strength)

	bestHighCard := mustEvaluate(t, "Ac Kd Qh Js 9s")
	worstPair := mustEvaluate(t, "2c 2d 3h 4s 5s")
	assert.Greater(t, worstPair.Strength, bestHighCard.Strength)
}

func TestKickersBreakTies(t *testing.T) {
	t.Parallel()

	board := "Ks 9d 7c 4h 2s"
	aceKicker := mustEvaluate(t, "Ah Kd "+board)
	queenKicker := mustEvaluate(t, "Qh Kc "+board)
	assert.Equal(t, OnePair, aceKicker.Category)
	assert.Equal(t, 1, aceKicker.Compare(queenKicker))

	result, why := aceKicker.CompareWithExplanation(queenKicker)
	assert.Equal(t, 1, result)
	assert.Contains(t, why, "higher kicker")
}

func TestExactTieAcrossSuits(t *testing.T) {
	t.Parallel()

	board := "Ac Ad 7h 7s 2c"
	a := mustEvaluate(t, "Kh 3d "+board)
	b := mustEvaluate(t, "Ks 4c "+board)
	assert.Equal(t, TwoPair, a.Category)
	assert.Equal(t, a.Strength, b.Strength)
	assert.Equal(t, 0, a.Compare(b))

	_, why := a.CompareWithExplanation(b)
	assert.Equal(t, "hands tie", why)
}

func TestWheelIsNotAStraight(t *testing.T) {
	t.Parallel()

	wheel := mustEvaluate(t, "Ac 2d 3h 4s 5c")
	assert.Equal(t, HighCard, wheel.Category)

	steelWheel := mustEvaluate(t, "Ah 2h 3h 4h 5h")
	assert.Equal(t, Flush, steelWheel.Category)

	sixHigh := mustEvaluate(t, "2d 3h 4s 5c 6c")
	assert.Equal(t, Straight, sixHigh.Category)
}

func TestEvaluatePicksBestSubset(t *testing.T) {
	t.Parallel()

	hand := mustEvaluate(t, "2c 3d 9h 9s 9c Kd Ks")
	assert.Equal(t, FullHouse, hand.Category)
	assert.Equal(t, []deck.Rank{deck.Nine, deck.King}, hand.Kickers)
	assert.Equal(t, FullHouse.Base()+9*14+13, hand.Strength)
}

func TestEvaluateDoesNotReorderInput(t *testing.T) {
	t.Parallel()

	cards := deck.MustParseCards("Kd 2c 9h Ac 5s 7d 3h")
	original := append([]deck.Card(nil), cards...)

	_, err := Evaluate(cards)
	require.NoError(t, err)
	assert.Equal(t, original, cards)
}

func TestEvaluateTooFewCards(t *testing.T) {
	t.Parallel()

	_, err := Evaluate(deck.MustParseCards("As Ks Qs Js"))
	assert.True(t, errors.Is(err, ErrTooFewCards))

	_, err = BestCategory(nil)
	assert.ErrorIs(t, err, ErrTooFewCards)
}

func TestForEachCombination(t *testing.T) {
	t.Parallel()

	count := 0
	seen := make(map[[5]int]bool)
	forEachCombination(7, 5, func(idx []int) {
		var key [5]int
		copy(key[:], idx)
		assert.True(t, sort.IntsAreSorted(idx))
		assert.False(t, seen[key])
		seen[key] = true
		count++
	})
	assert.Equal(t, 21, count)

	count = 0
	forEachCombination(5, 5, func([]int) { count++ })
	assert.Equal(t, 1, count)

	forEachCombination(4, 5, func([]int) { t.Fatal("no subsets of size 5 from 4") })
}

// classifyBySignature is an independent classifier: it sorts the rank
// multiplicities and reads the category off the resulting pattern.
func classifyBySignature(cards []deck.Card) Category {
	counts := make(map[deck.Rank]int)
	suits := make(map[deck.Suit]bool)
	minRank, maxRank := deck.Ace, deck.Two
	for _, c := range cards {
		counts[c.Rank]++
		suits[c.Suit] = true
		minRank = min(minRank, c.Rank)
		maxRank = max(maxRank, c.Rank)
	}

	var pattern []int
	for _, n := range counts {
		pattern = append(pattern, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(pattern)))

	flush := len(suits) == 1
	straight := len(counts) == 5 && maxRank-minRank == 4

	switch {
	case flush && straight && maxRank == deck.Ace:
		return RoyalFlush
	case flush && straight:
		return StraightFlush
	case pattern[0] == 4:
		return FourOfAKind
	case pattern[0] == 3 && pattern[1] == 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case pattern[0] == 3:
		return ThreeOfAKind
	case pattern[0] == 2 && pattern[1] == 2:
		return TwoPair
	case pattern[0] == 2:
		return OnePair
	}
	return HighCard
}

func randomHand(rng *rand.Rand, n int) []deck.Card {
	all := deck.Standard()
	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	return all[:n]
}

func TestCategoryMatchesIndependentClassifier(t *testing.T) {
	t.Parallel()

	rng := deck.NewRand(7)
	for i := 0; i < 20000; i++ {
		cards := randomHand(rng, HandSize)
		hand, err := Evaluate(cards)
		require.NoError(t, err)
		require.Equal(t, classifyBySignature(cards), hand.Category, "cards %v", cards)
	}
}

func TestSevenCardCategoryIsBestOfSubsets(t *testing.T) {
	t.Parallel()

	rng := deck.NewRand(11)
	for i := 0; i < 2000; i++ {
		cards := randomHand(rng, 7)
		hand, err := Evaluate(cards)
		require.NoError(t, err)

		best := HighCard
		forEachCombination(7, HandSize, func(idx []int) {
			five := make([]deck.Card, 0, HandSize)
			for _, j := range idx {
				five = append(five, cards[j])
			}
			best = max(best, classifyBySignature(five))
		})
		require.Equal(t, best, hand.Category, "cards %v", cards)
	}
}
