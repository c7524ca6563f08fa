package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/handid"
)

const (
	MinPlayers = 2
	MaxPlayers = 10
)

var (
	// ErrInvalidHand is returned by NewHand for an unplayable configuration
	ErrInvalidHand = errors.New("invalid hand configuration")

	// ErrChipConservation means chips were created or lost during a hand
	ErrChipConservation = errors.New("chip conservation violated")

	// ErrHandPlayed is returned when Play is called twice
	ErrHandPlayed = errors.New("hand already played")
)

// SeatConfig describes one player at the table
type SeatConfig struct {
	Name   string
	Chips  int
	Source ActionSource
}

// HandConfig holds the table setup for a single hand
type HandConfig struct {
	Seats      []SeatConfig
	Button     int
	SmallBlind int
	BigBlind   int
}

// Validate checks the configuration can be played
func (c HandConfig) Validate() error {
	if len(c.Seats) < MinPlayers || len(c.Seats) > MaxPlayers {
		return fmt.Errorf("%d players, need %d to %d: %w", len(c.Seats), MinPlayers, MaxPlayers, ErrInvalidHand)
	}
	if c.Button < 0 || c.Button >= len(c.Seats) {
		return fmt.Errorf("button %d out of range: %w", c.Button, ErrInvalidHand)
	}
	if c.SmallBlind <= 0 || c.BigBlind < c.SmallBlind {
		return fmt.Errorf("blinds %d/%d: %w", c.SmallBlind, c.BigBlind, ErrInvalidHand)
	}

	names := make(map[string]bool, len(c.Seats))
	for i, s := range c.Seats {
		if s.Name == "" {
			return fmt.Errorf("seat %d has no name: %w", i, ErrInvalidHand)
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate player %q: %w", s.Name, ErrInvalidHand)
		}
		names[s.Name] = true
		if s.Chips <= 0 {
			return fmt.Errorf("%s has %d chips: %w", s.Name, s.Chips, ErrInvalidHand)
		}
		if s.Source == nil {
			return fmt.Errorf("%s has no action source: %w", s.Name, ErrInvalidHand)
		}
	}
	return nil
}

// HandState is the mutable state of a single hand. It is created by NewHand
// and driven to completion by Play.
type HandState struct {
	ID         string
	Players    []*Player
	Button     int
	SmallBlind int
	BigBlind   int
	Street     Street
	Board      []deck.Card
	Deck       *deck.Deck

	sbSeat      int
	bbSeat      int
	startStacks []int
	startTotal  int
	played      bool

	runner *StreetRunner
	events emitter
	logger *log.Logger
}

// NewHand validates cfg and seats the players. Nothing is dealt until Play.
func NewHand(cfg HandConfig, opts ...HandOption) (*HandState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultHandOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.handID == "" {
		o.handID = handid.New()
	}

	d := o.deck
	if d == nil {
		rng := o.rng
		if rng == nil {
			rng = deck.NewRand(time.Now().UnixNano())
		}
		d = deck.NewDeck(rng)
	}

	h := &HandState{
		ID:         o.handID,
		Button:     cfg.Button,
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
		Street:     Preflop,
		Deck:       d,
		events:     emitter{bus: o.bus, clock: o.clock, handID: o.handID},
		logger:     o.logger.WithPrefix("hand").With("hand", o.handID),
	}

	sources := make(map[int]ActionSource, len(cfg.Seats))
	for i, s := range cfg.Seats {
		h.Players = append(h.Players, NewPlayer(i, s.Name, s.Chips))
		h.startStacks = append(h.startStacks, s.Chips)
		h.startTotal += s.Chips
		sources[i] = s.Source
	}

	n := len(h.Players)
	if n == 2 {
		// Heads-up: button posts small blind
		h.sbSeat = h.Button
		h.bbSeat = (h.Button + 1) % n
	} else {
		h.sbSeat = (h.Button + 1) % n
		h.bbSeat = (h.Button + 2) % n
	}

	h.runner = &StreetRunner{
		Sources:     sources,
		Bus:         o.bus,
		Logger:      o.logger.WithPrefix("betting"),
		Clock:       o.clock,
		HandID:      o.handID,
		BigBlind:    cfg.BigBlind,
		MaxAttempts: o.maxAttempts,
	}

	return h, nil
}

// SmallBlindSeat returns the seat that posts the small blind
func (h *HandState) SmallBlindSeat() int { return h.sbSeat }

// BigBlindSeat returns the seat that posts the big blind
func (h *HandState) BigBlindSeat() int { return h.bbSeat }

// Play runs the hand from blinds to settlement. The context is checked
// between streets.
func (h *HandState) Play(ctx context.Context) (*HandResult, error) {
	if h.played {
		return nil, ErrHandPlayed
	}
	h.played = true

	h.postBlinds()
	if err := h.dealHoleCards(); err != nil {
		return nil, err
	}

	n := len(h.Players)
	h.logger.Debug("Starting preflop", "button", h.Button, "sb", h.sbSeat, "bb", h.bbSeat)
	if _, err := h.runner.RunStreet(Preflop, nil, h.Players, (h.bbSeat+1)%n, h.BigBlind); err != nil {
		return nil, err
	}

	streets := []struct {
		street Street
		cards  int
	}{
		{Flop, 3},
		{Turn, 1},
		{River, 1},
	}

	for _, s := range streets {
		if len(inHand(h.Players)) < 2 {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := h.dealStreet(s.street, s.cards); err != nil {
			return nil, err
		}
		if _, err := h.runner.RunStreet(s.street, h.Board, h.Players, (h.Button+1)%n, 0); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h.settle()
}

func (h *HandState) postBlinds() {
	sb := h.Players[h.sbSeat].commit(h.SmallBlind)
	bb := h.Players[h.bbSeat].commit(h.BigBlind)
	h.logger.Debug("Blinds posted", "sb", sb, "bb", bb)

	players := make([]PlayerView, 0, len(h.Players))
	for _, p := range h.Players {
		players = append(players, p.view(false))
	}

	h.events.publish(HandStartEvent{
		eventMeta:      h.events.meta(),
		Players:        players,
		Button:         h.Button,
		SmallBlind:     h.SmallBlind,
		BigBlind:       h.BigBlind,
		SmallBlindSeat: h.sbSeat,
		BigBlindSeat:   h.bbSeat,
	})
}

// dealHoleCards deals one card at a time, twice around, starting left of the button
func (h *HandState) dealHoleCards() error {
	n := len(h.Players)
	for pass := 0; pass < 2; pass++ {
		for i := 1; i <= n; i++ {
			card, err := h.Deck.Deal()
			if err != nil {
				return fmt.Errorf("deal hole cards: %w", err)
			}
			p := h.Players[(h.Button+i)%n]
			p.HoleCards = append(p.HoleCards, card)
		}
	}
	return nil
}

func (h *HandState) dealStreet(street Street, count int) error {
	if err := h.Deck.Burn(); err != nil {
		return fmt.Errorf("burn before %s: %w", street, err)
	}
	cards, err := h.Deck.DealN(count)
	if err != nil {
		return fmt.Errorf("deal %s: %w", street, err)
	}

	for _, p := range h.Players {
		p.Bet = 0
	}
	h.Street = street
	h.Board = append(h.Board, cards...)
	h.logger.Debug("Dealt street", "street", street, "board", cardList(h.Board))

	h.events.publish(StreetChangeEvent{
		eventMeta: h.events.meta(),
		Street:    street,
		Board:     append([]deck.Card(nil), h.Board...),
		Pot:       potTotal(h.Players),
	})
	return nil
}

func (h *HandState) settle() (*HandResult, error) {
	h.Street = Showdown
	for _, p := range h.Players {
		p.Bet = 0
	}

	committed := potTotal(h.Players)
	pots := BuildPots(h.Players)
	if total := TotalPot(pots); total != committed {
		return nil, fmt.Errorf("pots hold %d of %d committed chips: %w", total, committed, ErrChipConservation)
	}

	results, err := Distribute(pots, h.Board, h.Button)
	if err != nil {
		return nil, fmt.Errorf("distribute pots: %w", err)
	}

	if stacks := stackTotal(h.Players); stacks != h.startTotal {
		return nil, fmt.Errorf("stacks total %d, started with %d: %w", stacks, h.startTotal, ErrChipConservation)
	}

	showdown := len(inHand(h.Players)) > 1
	result := &HandResult{
		HandID:   h.ID,
		Board:    append([]deck.Card(nil), h.Board...),
		Pots:     results,
		Showdown: showdown,
		Players:  h.Players,
		Net:      make(map[int]int, len(h.Players)),
	}
	for i, p := range h.Players {
		result.Net[p.Seat] = p.Chips - h.startStacks[i]
	}

	for _, r := range results {
		winners := make([]PlayerView, 0, len(r.Winners))
		names := make([]string, 0, len(r.Winners))
		for _, w := range r.Winners {
			winners = append(winners, w.view(!r.Uncontested))
			names = append(names, w.Name)
		}
		h.logger.Info("Pot awarded",
			"pot", r.Pot.Index,
			"amount", r.Pot.Amount,
			"winners", names,
			"category", r.Rank.Category,
			"uncontested", r.Uncontested)

		h.events.publish(PotAwardedEvent{
			eventMeta:   h.events.meta(),
			PotIndex:    r.Pot.Index,
			Amount:      r.Pot.Amount,
			Winners:     winners,
			Share:       r.Share,
			Remainder:   r.Remainder,
			Hand:        r.Rank,
			Uncontested: r.Uncontested,
		})
	}

	players := make([]PlayerView, 0, len(h.Players))
	for _, p := range h.Players {
		players = append(players, p.view(showdown && p.IsInHand()))
	}
	h.events.publish(HandEndEvent{
		eventMeta: h.events.meta(),
		Board:     result.Board,
		Players:   players,
		Showdown:  showdown,
		Pot:       committed,
	})

	return result, nil
}

// HandResult summarises a finished hand
type HandResult struct {
	HandID   string
	Board    []deck.Card
	Pots     []PotResult
	Showdown bool        // More than one player reached the end of the hand
	Players  []*Player   // Final state, stacks include winnings
	Net      map[int]int // Chips won or lost per seat
}

// Winnings returns the total chips awarded to seat across every pot
func (r *HandResult) Winnings(seat int) int {
	total := 0
	for _, pot := range r.Pots {
		for i, w := range pot.Winners {
			if w.Seat != seat {
				continue
			}
			total += pot.Share
			if i < pot.Remainder {
				total++
			}
		}
	}
	return total
}

// PotTotal returns the chips settled by the hand
func (r *HandResult) PotTotal() int {
	total := 0
	for _, pot := range r.Pots {
		total += pot.Pot.Amount
	}
	return total
}

func cardList(cards []deck.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}
