package game

import (
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/evaluator"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeHandEnd      EventType = "hand_end"
	EventTypeStreetChange EventType = "street_change"
	EventTypePlayerAction EventType = "player_action"
	EventTypePotAwarded   EventType = "pot_awarded"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a poker hand
type GameEvent interface {
	EventType() EventType
	HandID() string
	Timestamp() time.Time
}

type eventMeta struct {
	handID    string
	timestamp time.Time
}

func (m eventMeta) HandID() string       { return m.handID }
func (m eventMeta) Timestamp() time.Time { return m.timestamp }

// HandStartEvent is published once blinds are posted
type HandStartEvent struct {
	eventMeta
	Players        []PlayerView
	Button         int
	SmallBlind     int
	BigBlind       int
	SmallBlindSeat int
	BigBlindSeat   int
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }

// StreetChangeEvent is published when community cards are dealt
type StreetChangeEvent struct {
	eventMeta
	Street Street
	Board  []deck.Card
	Pot    int
}

func (e StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }

// PlayerActionEvent is published for every applied action
type PlayerActionEvent struct {
	eventMeta
	Player     PlayerView
	Street     Street
	Action     Action
	Moved      int
	Bet        int
	CurrentBet int
	Pot        int
	Reasoning  string
	Coerced    bool // The decision was replaced after repeated illegal input
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }

// PotAwardedEvent is published once per settled pot
type PotAwardedEvent struct {
	eventMeta
	PotIndex    int
	Amount      int
	Winners     []PlayerView
	Share       int
	Remainder   int
	Hand        evaluator.Hand
	Uncontested bool
}

func (e PotAwardedEvent) EventType() EventType { return EventTypePotAwarded }

// HandEndEvent is published when a hand completes
type HandEndEvent struct {
	eventMeta
	Board    []deck.Card
	Players  []PlayerView // Final stacks; hole cards shown for showdown players
	Showdown bool
	Pot      int
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to an EventSubscriber
type EventSubscriberFunc func(event GameEvent)

func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers synchronously, in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subscribers := append([]EventSubscriber(nil), bus.subscribers...)
	bus.mu.RUnlock()

	for _, sub := range subscribers {
		sub.OnEvent(event)
	}
}

// EventRecorder keeps every event it receives
type EventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *EventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns the recorded events in order
func (r *EventRecorder) Events() []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]GameEvent(nil), r.events...)
}

// Types returns the type of each recorded event in order
func (r *EventRecorder) Types() []EventType {
	var types []EventType
	for _, e := range r.Events() {
		types = append(types, e.EventType())
	}
	return types
}

// emitter stamps events for a single hand
type emitter struct {
	bus    EventBus
	clock  quartz.Clock
	handID string
}

func (e emitter) meta() eventMeta {
	return eventMeta{handID: e.handID, timestamp: e.clock.Now()}
}

func (e emitter) publish(event GameEvent) {
	if e.bus != nil {
		e.bus.Publish(event)
	}
}
