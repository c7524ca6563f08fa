// Package display renders a hand as text and reads a human player's
// decisions from a line-based prompt.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-cli/internal/game"
)

// Text writes a running commentary of a hand to w. It is a game.EventSubscriber.
type Text struct {
	mu     sync.Mutex
	w      io.Writer
	styles *Styles

	// ShowReasoning appends each decision's reasoning to the action line
	ShowReasoning bool
}

// NewText creates a Text display writing to w
func NewText(w io.Writer) *Text {
	return &Text{w: w, styles: NewStyles(lipgloss.NewRenderer(w))}
}

// OnEvent renders a single game event
func (t *Text) OnEvent(event game.GameEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var lines []string
	switch e := event.(type) {
	case game.HandStartEvent:
		lines = t.handStart(e)
	case game.StreetChangeEvent:
		lines = t.streetChange(e)
	case game.PlayerActionEvent:
		lines = []string{t.playerAction(e)}
	case game.PotAwardedEvent:
		lines = []string{t.potAwarded(e)}
	case game.HandEndEvent:
		lines = t.handEnd(e)
	default:
		return
	}

	for _, line := range lines {
		fmt.Fprintln(t.w, line)
	}
}

func (t *Text) handStart(e game.HandStartEvent) []string {
	lines := []string{
		t.styles.Header.Render(fmt.Sprintf(" Hand %s • %d players • $%d/$%d ",
			e.HandID(), len(e.Players), e.SmallBlind, e.BigBlind)),
	}
	for _, p := range e.Players {
		var tags []string
		if p.Seat == e.Button {
			tags = append(tags, "button")
		}
		if p.Seat == e.SmallBlindSeat {
			tags = append(tags, "small blind")
		}
		if p.Seat == e.BigBlindSeat {
			tags = append(tags, "big blind")
		}
		line := fmt.Sprintf("Seat %d: %s ($%d in chips)", p.Seat+1, p.Name, p.Chips+p.Bet)
		if len(tags) > 0 {
			line += t.styles.Info.Render(" [" + strings.Join(tags, ", ") + "]")
		}
		lines = append(lines, line)
	}
	for _, p := range e.Players {
		switch p.Seat {
		case e.SmallBlindSeat:
			lines = append(lines, fmt.Sprintf("%s: posts small blind $%d", p.Name, p.Bet))
		case e.BigBlindSeat:
			lines = append(lines, fmt.Sprintf("%s: posts big blind $%d", p.Name, p.Bet))
		}
	}
	return lines
}

func (t *Text) streetChange(e game.StreetChangeEvent) []string {
	header := fmt.Sprintf("*** %s ***", strings.ToUpper(e.Street.String()))
	return []string{
		"",
		t.styles.Street.Render(header) + " " + t.styles.Cards(e.Board) +
			t.styles.Pot.Render(fmt.Sprintf(" (pot: $%d)", e.Pot)),
	}
}

func (t *Text) playerAction(e game.PlayerActionEvent) string {
	name := e.Player.Name

	var text string
	switch e.Action {
	case game.Fold:
		text = fmt.Sprintf("%s: folds", name)
	case game.Check:
		text = fmt.Sprintf("%s: checks", name)
	case game.Call:
		text = fmt.Sprintf("%s: calls $%d (pot now: $%d)", name, e.Moved, e.Pot)
	case game.Raise:
		text = fmt.Sprintf("%s: raises to $%d (pot now: $%d)", name, e.Bet, e.Pot)
	case game.AllIn:
		text = fmt.Sprintf("%s: goes all-in for $%d (pot now: $%d)", name, e.Moved, e.Pot)
	default:
		text = fmt.Sprintf("%s: %s $%d", name, e.Action, e.Moved)
	}

	if e.Coerced {
		text += t.styles.Warning.Render(" (forced)")
	}
	if t.ShowReasoning && e.Reasoning != "" {
		text += t.styles.Info.Render(fmt.Sprintf(" (%s)", e.Reasoning))
	}
	return t.styles.Action.Render(text)
}

func (t *Text) potAwarded(e game.PotAwardedEvent) string {
	label := "main pot"
	if e.PotIndex > 0 {
		label = fmt.Sprintf("side pot %d", e.PotIndex)
	}

	names := make([]string, 0, len(e.Winners))
	for _, w := range e.Winners {
		names = append(names, w.Name)
	}

	var text string
	if len(names) == 1 {
		text = fmt.Sprintf("%s wins $%d from the %s", names[0], e.Amount, label)
	} else {
		text = fmt.Sprintf("%s split $%d from the %s ($%d each", strings.Join(names, ", "), e.Amount, label, e.Share)
		if e.Remainder > 0 {
			text += fmt.Sprintf(", %d odd chip to %s", e.Remainder, strings.Join(names[:e.Remainder], ", "))
		}
		text += ")"
	}

	if !e.Uncontested {
		text += fmt.Sprintf(" with %s", e.Hand.Category)
		if len(e.Hand.Cards) > 0 {
			text += " " + t.styles.Cards(e.Hand.Cards)
		}
	}
	return t.styles.Winner.Render(text)
}

func (t *Text) handEnd(e game.HandEndEvent) []string {
	lines := []string{""}
	if e.Showdown {
		lines = append(lines, t.styles.Street.Render("*** SUMMARY ***")+" "+t.styles.Cards(e.Board))
		for _, p := range e.Players {
			if len(p.HoleCards) > 0 {
				lines = append(lines, fmt.Sprintf("%s: shows %s", p.Name, t.styles.Cards(p.HoleCards)))
			}
		}
	}

	lines = append(lines, t.styles.Separator.Render(fmt.Sprintf("=== Hand %s complete, pot $%d ===", e.HandID(), e.Pot)))
	for _, p := range e.Players {
		lines = append(lines, fmt.Sprintf("%s: $%d", p.Name, p.Chips))
	}
	return lines
}
