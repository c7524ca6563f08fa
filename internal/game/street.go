package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-cli/internal/deck"
)

// DefaultMaxAttempts is how many times a player is asked for a legal
// decision before one is chosen for them.
const DefaultMaxAttempts = 3

// StreetRunner drives a BettingRound by asking each player's ActionSource
// for decisions until the street closes.
type StreetRunner struct {
	Sources     map[int]ActionSource // Keyed by seat
	Bus         EventBus
	Logger      *log.Logger
	Clock       quartz.Clock
	HandID      string
	BigBlind    int
	MaxAttempts int
}

func (r *StreetRunner) logger() *log.Logger {
	if r.Logger == nil {
		r.Logger = log.New(io.Discard)
	}
	return r.Logger
}

func (r *StreetRunner) emitter() emitter {
	clock := r.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	return emitter{bus: r.Bus, clock: clock, handID: r.HandID}
}

// RunStreet runs one betting street starting at seat start with currentBet
// already to match, and returns the bet the street closed at.
func (r *StreetRunner) RunStreet(street Street, board []deck.Card, players []*Player, start, currentBet int) (int, error) {
	br := NewBettingRound(players, street, start, currentBet)
	logger := r.logger().With("street", street)

	for {
		seat, ok := br.Next()
		if !ok {
			break
		}

		p := players[seat]
		decision, result, coerced, err := r.takeTurn(br, p, board)
		if err != nil {
			return br.CurrentBet, fmt.Errorf("%s on %s: %w", p.Name, street, err)
		}

		logger.Debug("Player action",
			"player", p.Name,
			"action", result.Action,
			"moved", result.Moved,
			"bet", result.Bet,
			"currentBet", result.CurrentBet,
			"reopened", result.Reopened)

		e := r.emitter()
		e.publish(PlayerActionEvent{
			eventMeta:  e.meta(),
			Player:     p.view(false),
			Street:     street,
			Action:     result.Action,
			Moved:      result.Moved,
			Bet:        result.Bet,
			CurrentBet: result.CurrentBet,
			Pot:        potTotal(players),
			Reasoning:  decision.Reasoning,
			Coerced:    coerced,
		})
	}

	return br.CurrentBet, nil
}

// takeTurn asks for a decision until a legal one arrives. A source error folds
// the player; repeated illegal decisions become a check, or a fold when
// checking is not allowed.
func (r *StreetRunner) takeTurn(br *BettingRound, p *Player, board []deck.Card) (Decision, ActionResult, bool, error) {
	source := r.Sources[p.Seat]
	if source == nil {
		r.logger().Warn("No action source, folding", "player", p.Name, "seat", p.Seat)
		d := Decision{Action: Fold, Reasoning: "no action source"}
		result, err := br.Apply(p.Seat, d)
		return d, result, true, err
	}

	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		d, err := source.Decide(r.request(br, p, board, attempt))
		if err != nil {
			r.logger().Warn("Action source failed, folding", "player", p.Name, "error", err)
			d = Decision{Action: Fold, Reasoning: fmt.Sprintf("input error: %v", err)}
			result, err := br.Apply(p.Seat, d)
			return d, result, true, err
		}

		result, err := br.Apply(p.Seat, d)
		if err == nil {
			return d, result, false, nil
		}
		if !errors.Is(err, ErrIllegalAction) {
			return d, result, false, err
		}
		r.logger().Warn("Illegal decision", "player", p.Name, "attempt", attempt, "error", err)
	}

	d := Decision{Action: Fold, Reasoning: "too many illegal decisions"}
	if br.CanTake(p, Check) {
		d.Action = Check
	}
	result, err := br.Apply(p.Seat, d)
	return d, result, true, err
}

func (r *StreetRunner) request(br *BettingRound, p *Player, board []deck.Card, attempt int) ActionRequest {
	req := ActionRequest{
		HandID:       r.HandID,
		Street:       br.Street,
		Player:       p.view(true),
		Board:        append([]deck.Card(nil), board...),
		CurrentBet:   br.CurrentBet,
		ToCall:       max(0, min(br.CurrentBet-p.Bet, p.Chips)),
		Pot:          potTotal(br.players),
		BigBlind:     r.BigBlind,
		ValidActions: br.ValidActions(p),
		Attempt:      attempt,
	}
	for _, other := range br.players {
		if other != p {
			req.Opponents = append(req.Opponents, other.view(false))
		}
	}
	return req
}

// potTotal is every chip committed so far this hand
func potTotal(players []*Player) int {
	total := 0
	for _, p := range players {
		total += p.TotalBet
	}
	return total
}
