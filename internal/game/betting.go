package game

import (
	"errors"
	"fmt"
)

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return "unknown"
	}
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	if a < Fold || a > AllIn {
		return "unknown"
	}
	return [...]string{"fold", "check", "call", "raise", "allin"}[a]
}

// RoundState is the state of a betting street
type RoundState int

const (
	AwaitingAction RoundState = iota
	StreetClosed
)

func (s RoundState) String() string {
	if s == StreetClosed {
		return "closed"
	}
	return "awaiting action"
}

// ErrIllegalAction is returned by Apply when a decision is not legal for the
// acting player. Nothing is mutated when it is returned.
var ErrIllegalAction = errors.New("illegal action")

// BettingRound is the state machine for a single street. Turns come from a
// queue of seats; a raise refills the queue with every other player still in
// the hand so action re-opens behind the raiser.
type BettingRound struct {
	Street     Street
	CurrentBet int
	State      RoundState
	LastRaiser int

	players []*Player
	queue   []int
	turn    int
}

// NewBettingRound seeds the turn queue with every in-hand player in seat
// order starting at start and wrapping around the table.
func NewBettingRound(players []*Player, street Street, start, currentBet int) *BettingRound {
	br := &BettingRound{
		Street:     street,
		CurrentBet: currentBet,
		State:      AwaitingAction,
		LastRaiser: -1,
		players:    players,
		turn:       -1,
	}

	n := len(players)
	for i := 0; i < n; i++ {
		seat := ((start+i)%n + n) % n
		if players[seat].IsInHand() {
			br.queue = append(br.queue, seat)
		}
	}
	return br
}

// Next pops the next seat due to act. Folded seats are dropped and all-in
// seats are skipped. It returns false once the street has closed.
func (br *BettingRound) Next() (int, bool) {
	for br.State == AwaitingAction {
		if br.shouldClose() {
			br.State = StreetClosed
			break
		}

		seat := br.queue[0]
		br.queue = br.queue[1:]
		if !br.players[seat].CanAct() {
			continue
		}

		br.turn = seat
		return seat, true
	}

	br.turn = -1
	return -1, false
}

// Pending returns the seats still queued to act, in order
func (br *BettingRound) Pending() []int {
	return append([]int(nil), br.queue...)
}

func (br *BettingRound) shouldClose() bool {
	if len(br.queue) == 0 || len(inHand(br.players)) < 2 {
		return true
	}

	var actors []*Player
	for _, p := range br.players {
		if p.CanAct() {
			actors = append(actors, p)
		}
	}

	switch len(actors) {
	case 0:
		return true
	case 1:
		// Nobody left to bet against
		return actors[0].Bet >= br.CurrentBet
	}
	return false
}

// ValidActions lists the actions p may legally take right now
func (br *BettingRound) ValidActions(p *Player) []ValidAction {
	if !p.CanAct() {
		return nil
	}

	actions := []ValidAction{{Action: Fold}}
	toCall := br.CurrentBet - p.Bet

	if toCall <= 0 {
		actions = append(actions, ValidAction{Action: Check})
	} else {
		call := min(toCall, p.Chips)
		actions = append(actions, ValidAction{Action: Call, Min: call, Max: call})
	}

	if p.Chips+p.Bet > br.CurrentBet {
		actions = append(actions, ValidAction{Action: Raise, Min: 1, Max: p.Chips + p.Bet - br.CurrentBet})
	}

	actions = append(actions, ValidAction{Action: AllIn, Min: p.Chips, Max: p.Chips})
	return actions
}

// CanTake reports whether p may take action a
func (br *BettingRound) CanTake(p *Player, a Action) bool {
	for _, va := range br.ValidActions(p) {
		if va.Action == a {
			return true
		}
	}
	return false
}

// ActionResult describes the effect of an applied decision
type ActionResult struct {
	Seat       int
	Action     Action
	Moved      int  // Chips moved from the stack into the pot
	Bet        int  // The player's street bet afterwards
	CurrentBet int  // The street's bet to match afterwards
	Reopened   bool // The action raised the bet and re-queued the table
	AllIn      bool // The player has no chips left
}

// Apply validates a decision for the seat whose turn it is and applies it
// atomically. Raise amounts are raise-by increments on top of CurrentBet and
// are capped at the player's stack.
func (br *BettingRound) Apply(seat int, d Decision) (ActionResult, error) {
	if br.State != AwaitingAction || seat != br.turn {
		return ActionResult{}, fmt.Errorf("seat %d acting out of turn: %w", seat, ErrIllegalAction)
	}

	p := br.players[seat]
	if !br.CanTake(p, d.Action) {
		return ActionResult{}, fmt.Errorf("%s cannot %s facing %d with %d in front: %w",
			p.Name, d.Action, br.CurrentBet, p.Bet, ErrIllegalAction)
	}
	if d.Action == Raise && d.Amount <= 0 {
		return ActionResult{}, fmt.Errorf("%s raise by %d: %w", p.Name, d.Amount, ErrIllegalAction)
	}

	result := ActionResult{Seat: seat, Action: d.Action}

	switch d.Action {
	case Fold:
		p.Folded = true

	case Check:

	case Call:
		result.Moved = p.commit(br.CurrentBet - p.Bet)

	case Raise:
		target := min(br.CurrentBet+d.Amount, p.Chips+p.Bet)
		result.Moved = p.commit(target - p.Bet)
		result.Reopened = br.raiseTo(seat, target)

	case AllIn:
		result.Moved = p.commit(p.Chips)
		if p.Bet > br.CurrentBet {
			result.Reopened = br.raiseTo(seat, p.Bet)
		}
	}

	br.turn = -1
	result.Bet = p.Bet
	result.CurrentBet = br.CurrentBet
	result.AllIn = p.IsAllIn()
	return result, nil
}

// raiseTo lifts the bet to target and re-opens action for everyone else
func (br *BettingRound) raiseTo(seat, target int) bool {
	if target <= br.CurrentBet {
		return false
	}
	br.CurrentBet = target
	br.LastRaiser = seat

	n := len(br.players)
	br.queue = br.queue[:0]
	for i := 1; i < n; i++ {
		next := (seat + i) % n
		if br.players[next].IsInHand() {
			br.queue = append(br.queue, next)
		}
	}
	return true
}
