// Package game plays a single hand of No-Limit Texas Hold'em.
//
// # Basic Usage
//
// Seat the players with an ActionSource each and play the hand:
//
//	h, err := game.NewHand(game.HandConfig{
//	    Seats: []game.SeatConfig{
//	        {Name: "Alice", Chips: 1000, Source: alice},
//	        {Name: "Bob", Chips: 1000, Source: bob},
//	        {Name: "Charlie", Chips: 1000, Source: charlie},
//	    },
//	    Button:     0,
//	    SmallBlind: 5,
//	    BigBlind:   10,
//	}, game.WithRand(deck.NewRand(42)))
//	result, err := h.Play(ctx)
//
// # Deterministic Testing
//
// Pass a stacked deck to control every card, and ScriptedSource to control
// every decision:
//
//	d := deck.NewStacked(deck.MustParseCards("As Kd Qh ...")...)
//	h, err := game.NewHand(cfg, game.WithDeck(d))
//
// # Architecture
//
// HandState delegates responsibilities to specialized components:
//   - BettingRound: the per-street state machine over a queue of seats
//   - StreetRunner: asks action sources for decisions and handles bad input
//   - BuildPots and Distribute: side pot layering and showdown payouts
//   - evaluator.Evaluate: ranks each contender's best five cards
//
// Every hand is independent and owns all of its state, so separate hands can
// run concurrently.
package game
