package deck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHasAllCards(t *testing.T) {
	t.Parallel()

	d := NewDeck(NewRand(1))
	require.Equal(t, 52, d.CardsRemaining())

	seen := make(map[Card]bool)
	for d.CardsRemaining() > 0 {
		card, err := d.Deal()
		require.NoError(t, err)
		assert.False(t, seen[card], "duplicate card %s", card)
		seen[card] = true
	}
	assert.Len(t, seen, 52)
}

func TestDeckExhaustion(t *testing.T) {
	t.Parallel()

	d := NewStacked(MustParseCards("As Kd")...)
	require.NoError(t, d.Burn())

	card, err := d.Deal()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Diamonds, King), card)

	_, err = d.Deal()
	assert.True(t, errors.Is(err, ErrDeckExhausted))
	assert.ErrorIs(t, d.Burn(), ErrDeckExhausted)
}

func TestDealNDoesNotPartiallyDeal(t *testing.T) {
	t.Parallel()

	d := NewStacked(MustParseCards("2c 3c")...)
	_, err := d.DealN(3)
	assert.ErrorIs(t, err, ErrDeckExhausted)
	assert.Equal(t, 2, d.CardsRemaining())

	cards, err := d.DealN(2)
	require.NoError(t, err)
	assert.Equal(t, MustParseCards("2c 3c"), cards)
}

func TestSeededShuffleIsDeterministic(t *testing.T) {
	t.Parallel()

	a, err := NewDeck(NewRand(42)).DealN(52)
	require.NoError(t, err)
	b, err := NewDeck(NewRand(42)).DealN(52)
	require.NoError(t, err)
	c, err := NewDeck(NewRand(43)).DealN(52)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestArrange(t *testing.T) {
	t.Parallel()

	holes := [][]Card{
		MustParseCards("As Ad"),
		MustParseCards("Ks Kd"),
		MustParseCards("Qs Qd"),
	}
	board := MustParseCards("2c 7h 9s Jd 3c")

	d, err := Arrange(1, holes, board)
	require.NoError(t, err)
	assert.Equal(t, 52, d.CardsRemaining())

	// Two passes starting left of the button: seats 2, 0, 1
	dealt, err := d.DealN(6)
	require.NoError(t, err)
	assert.Equal(t, MustParseCards("Qs As Ks Qd Ad Kd"), dealt)

	require.NoError(t, d.Burn())
	flop, err := d.DealN(3)
	require.NoError(t, err)
	assert.Equal(t, board[:3], flop)

	require.NoError(t, d.Burn())
	turn, err := d.Deal()
	require.NoError(t, err)
	assert.Equal(t, board[3], turn)

	require.NoError(t, d.Burn())
	river, err := d.Deal()
	require.NoError(t, err)
	assert.Equal(t, board[4], river)
}

func TestArrangeRejectsBadDeals(t *testing.T) {
	t.Parallel()

	board := MustParseCards("2c 7h 9s Jd 3c")

	_, err := Arrange(0, [][]Card{MustParseCards("As Ad"), MustParseCards("As Kd")}, board)
	assert.True(t, errors.Is(err, ErrDuplicateCard))

	_, err = Arrange(0, [][]Card{MustParseCards("As Ad"), MustParseCards("2c Kd")}, board)
	assert.ErrorIs(t, err, ErrDuplicateCard)

	_, err = Arrange(0, [][]Card{MustParseCards("As Ad"), MustParseCards("Kd")}, board)
	assert.ErrorContains(t, err, "seat 1 needs 2 hole cards")

	_, err = Arrange(2, [][]Card{MustParseCards("As Ad"), MustParseCards("Ks Kd")}, board)
	assert.Error(t, err)

	_, err = Arrange(0, [][]Card{MustParseCards("As Ad"), MustParseCards("Ks Kd")}, board[:4])
	assert.ErrorContains(t, err, "board needs 5 cards")
}
