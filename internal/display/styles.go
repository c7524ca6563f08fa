package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-cli/internal/deck"
)

// Styles contains styling for game display
type Styles struct {
	Header    lipgloss.Style
	Street    lipgloss.Style // for "*** FLOP ***"
	Action    lipgloss.Style
	Winner    lipgloss.Style
	Pot       lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Separator lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles creates the display styles for r. The renderer decides the colour
// profile, so output to a pipe or buffer is plain text.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		Street: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Action: r.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Pot: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		CardRed: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Separator: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Cards renders cards as "[As Kd]" with suit colours
func (s *Styles) Cards(cards []deck.Card) string {
	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, s.CardRed.Render(card.String()))
		} else {
			formatted = append(formatted, s.CardBlack.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
