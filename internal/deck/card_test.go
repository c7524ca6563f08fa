package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "space separated with ten spelled out",
			input: "Ah 10h 2c",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Hearts, Rank: Ten},
				{Suit: Clubs, Rank: Two},
			},
		},
		{
			name:  "comma separated",
			input: "Kd,Qc",
			expected: []Card{
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Queen},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{name: "invalid rank", input: "XsKs", wantErr: true},
		{name: "invalid suit", input: "AxKs", wantErr: true},
		{name: "dangling rank", input: "AsK", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cards, err := ParseCards(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cards)
		})
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A♠", NewCard(Spades, Ace).String())
	assert.Equal(t, "10♥", NewCard(Hearts, Ten).String())
	assert.Equal(t, "10h", NewCard(Hearts, Ten).Code())
	assert.Equal(t, "2c", NewCard(Clubs, Two).Code())
	assert.True(t, NewCard(Diamonds, Nine).IsRed())
	assert.False(t, NewCard(Clubs, Nine).IsRed())
}

func TestRankOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, int(Two))
	assert.Equal(t, 14, int(Ace))
	assert.Less(t, King, Ace)
	assert.False(t, Rank(1).Valid())
	assert.True(t, Ten.Valid())
}

func TestParseCardRoundTrip(t *testing.T) {
	t.Parallel()

	for _, card := range Standard() {
		parsed, err := ParseCard(card.Code())
		require.NoError(t, err)
		assert.Equal(t, card, parsed)
	}
}
