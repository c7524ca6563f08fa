package game

import (
	"errors"
	"sync"

	"github.com/lox/holdem-cli/internal/deck"
)

// Decision represents a player's decision with reasoning
type Decision struct {
	Action    Action
	Amount    int    // For raises, the amount to raise by
	Reasoning string // Human-readable explanation
}

// ValidAction represents an action that a player can legally take
type ValidAction struct {
	Action Action
	Min    int // Call: chips to call. Raise: smallest raise-by. AllIn: stack.
	Max    int // Raise: largest raise-by before the stack runs out
}

// ActionRequest is everything an action source may look at when deciding.
// It is a snapshot; changing it has no effect on the hand.
type ActionRequest struct {
	HandID       string
	Street       Street
	Player       PlayerView // Includes hole cards
	Opponents    []PlayerView
	Board        []deck.Card
	CurrentBet   int
	ToCall       int
	Pot          int
	BigBlind     int
	ValidActions []ValidAction
	Attempt      int // 1 on the first ask, higher after an illegal decision
}

// Valid returns the ValidAction entry for a, if a is legal
func (r ActionRequest) Valid(a Action) (ValidAction, bool) {
	for _, va := range r.ValidActions {
		if va.Action == a {
			return va, true
		}
	}
	return ValidAction{}, false
}

// ActionSource supplies decisions for one player. An error means the source
// could not produce a decision at all, and the player folds.
type ActionSource interface {
	Decide(req ActionRequest) (Decision, error)
}

// ActionSourceFunc adapts a function to an ActionSource
type ActionSourceFunc func(req ActionRequest) (Decision, error)

func (f ActionSourceFunc) Decide(req ActionRequest) (Decision, error) {
	return f(req)
}

// ErrScriptExhausted is returned by a ScriptedSource with nothing left to play
var ErrScriptExhausted = errors.New("script exhausted")

// ScriptedSource replays a fixed list of decisions in order and records
// every request it was asked to answer.
type ScriptedSource struct {
	mu        sync.Mutex
	decisions []Decision
	requests  []ActionRequest
}

// NewScriptedSource creates a source that plays decisions in order
func NewScriptedSource(decisions ...Decision) *ScriptedSource {
	return &ScriptedSource{decisions: decisions}
}

// Push appends more decisions to the script
func (s *ScriptedSource) Push(decisions ...Decision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = append(s.decisions, decisions...)
}

func (s *ScriptedSource) Decide(req ActionRequest) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if len(s.decisions) == 0 {
		return Decision{}, ErrScriptExhausted
	}
	d := s.decisions[0]
	s.decisions = s.decisions[1:]
	return d, nil
}

// Requests returns the requests seen so far
func (s *ScriptedSource) Requests() []ActionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ActionRequest(nil), s.requests...)
}

// Remaining returns how many scripted decisions have not been played
func (s *ScriptedSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decisions)
}

// Shorthands for scripting decisions
func FoldDecision() Decision  { return Decision{Action: Fold} }
func CheckDecision() Decision { return Decision{Action: Check} }
func CallDecision() Decision  { return Decision{Action: Call} }
func AllInDecision() Decision { return Decision{Action: AllIn} }

func RaiseDecision(by int) Decision {
	return Decision{Action: Raise, Amount: by}
}
