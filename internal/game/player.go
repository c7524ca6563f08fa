package game

import "github.com/lox/holdem-cli/internal/deck"

// Player represents a player in a hand. Players are indexed by seat, so
// players[i].Seat == i for every slice handed to this package.
type Player struct {
	Seat      int
	Name      string
	Chips     int
	HoleCards []deck.Card
	Folded    bool
	Bet       int // Current bet in this street
	TotalBet  int // Total bet in the hand
}

// NewPlayer creates a player sitting at seat with a starting stack
func NewPlayer(seat int, name string, chips int) *Player {
	return &Player{
		Seat:  seat,
		Name:  name,
		Chips: chips,
	}
}

// IsInHand returns true until the player folds
func (p *Player) IsInHand() bool {
	return !p.Folded
}

// IsAllIn returns true if the player is in the hand with no chips behind
func (p *Player) IsAllIn() bool {
	return !p.Folded && p.Chips == 0
}

// CanAct returns true if the player can still make decisions
func (p *Player) CanAct() bool {
	return !p.Folded && p.Chips > 0
}

// commit moves up to amount chips from the stack into the current bet and
// returns how many actually moved.
func (p *Player) commit(amount int) int {
	amount = max(0, min(amount, p.Chips))
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	return amount
}

func (p *Player) view(showCards bool) PlayerView {
	v := PlayerView{
		Seat:     p.Seat,
		Name:     p.Name,
		Chips:    p.Chips,
		Bet:      p.Bet,
		TotalBet: p.TotalBet,
		Folded:   p.Folded,
		AllIn:    p.IsAllIn(),
	}
	if showCards {
		v.HoleCards = append([]deck.Card(nil), p.HoleCards...)
	}
	return v
}

// PlayerView is a read-only copy of a player handed to action sources and
// event subscribers. HoleCards is only set when the viewer may see them.
type PlayerView struct {
	Seat      int
	Name      string
	Chips     int
	Bet       int
	TotalBet  int
	Folded    bool
	AllIn     bool
	HoleCards []deck.Card
}

func stackTotal(players []*Player) int {
	total := 0
	for _, p := range players {
		total += p.Chips
	}
	return total
}

func inHand(players []*Player) []*Player {
	var in []*Player
	for _, p := range players {
		if p.IsInHand() {
			in = append(in, p)
		}
	}
	return in
}
