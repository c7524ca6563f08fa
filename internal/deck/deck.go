package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrDeckExhausted is returned when a card is requested from an empty deck.
// With at most ten players a hand never needs more than 28 cards, so seeing
// it means the table was misconfigured.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck represents a deck of playing cards. Cards are dealt from the top.
type Deck struct {
	cards []Card
}

// Standard returns the 52 cards in suit-major order (unshuffled)
func Standard() []Card {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// NewDeck creates a standard 52-card deck shuffled with rng
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{cards: Standard()}
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// NewStacked creates a deck that deals exactly the given cards in order.
// It is used for deterministic tests and replays.
func NewStacked(cards ...Card) *Deck {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Deck{cards: stacked}
}

// NewRand returns a *rand.Rand seeded deterministically from seed, so the
// same seed always produces the same shuffle.
func NewRand(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u^0x9e3779b97f4a7c15)))
}

func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// DealN deals n cards from the deck. Nothing is dealt if fewer than n remain.
func (d *Deck) DealN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("deal %d cards with %d left: %w", n, len(d.cards), ErrDeckExhausted)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// Burn discards the top card
func (d *Deck) Burn() error {
	_, err := d.Deal()
	return err
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// ErrDuplicateCard is returned when an arranged deal uses a card twice
var ErrDuplicateCard = errors.New("duplicate card")

// Arrange builds a deck that deals holes[i] to seat i and board as the
// community cards of a hand with the given button. Hole cards go out one at a
// time starting left of the button, and a card is burned before each street;
// burns and the rest of the deck come from the unused cards in Standard order.
func Arrange(button int, holes [][]Card, board []Card) (*Deck, error) {
	n := len(holes)
	if button < 0 || button >= n {
		return nil, fmt.Errorf("button %d with %d seats", button, n)
	}
	if len(board) != 5 {
		return nil, fmt.Errorf("board needs 5 cards, got %d", len(board))
	}

	used := make(map[Card]bool)
	claim := func(c Card) error {
		if used[c] {
			return fmt.Errorf("%s: %w", c.Code(), ErrDuplicateCard)
		}
		used[c] = true
		return nil
	}
	for seat, hole := range holes {
		if len(hole) != 2 {
			return nil, fmt.Errorf("seat %d needs 2 hole cards, got %d", seat, len(hole))
		}
		for _, c := range hole {
			if err := claim(c); err != nil {
				return nil, err
			}
		}
	}
	for _, c := range board {
		if err := claim(c); err != nil {
			return nil, err
		}
	}

	var spare []Card
	for _, c := range Standard() {
		if !used[c] {
			spare = append(spare, c)
		}
	}

	order := make([]Card, 0, 52)
	for pass := 0; pass < 2; pass++ {
		for i := 1; i <= n; i++ {
			order = append(order, holes[(button+i)%n][pass])
		}
	}
	order = append(order, spare[0])
	order = append(order, board[:3]...)
	order = append(order, spare[1], board[3], spare[2], board[4])
	order = append(order, spare[3:]...)
	return NewStacked(order...), nil
}
