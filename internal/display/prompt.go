package display

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"github.com/lox/holdem-cli/internal/game"
)

// ErrUnrecognized is returned for input that is not a poker action
var ErrUnrecognized = errors.New("unrecognized command")

// Prompt asks a human for decisions on a line-based terminal. It is a
// game.ActionSource: an unrecognised command or closed input returns an
// error, which folds the player.
type Prompt struct {
	mu          sync.Mutex
	rl          *readline.Instance
	interactive bool
	out         io.Writer
	styles      *Styles
}

// commandNames are offered by tab completion
var commandNames = []string{"fold", "check", "call", "raise", "allin", "hand", "pot", "players", "help"}

// NewPrompt creates a prompt reading commands from in and writing to out.
// When in is a terminal it gets line editing and tab completion, otherwise
// lines are read as they come, which is how tests and pipes drive it.
func NewPrompt(in io.Reader, out io.Writer) (*Prompt, error) {
	completer := readline.NewPrefixCompleter()
	for _, name := range commandNames {
		completer.Children = append(completer.Children, readline.PcItem(name))
	}

	cfg := &readline.Config{
		Stdout:          out,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "fold",
	}

	f, ok := in.(*os.File)
	interactive := ok && f == os.Stdin && readline.IsTerminal(int(f.Fd()))
	if !interactive {
		cfg.Stdin = io.NopCloser(in)
		cfg.FuncIsTerminal = func() bool { return false }
		cfg.FuncMakeRaw = func() error { return nil }
		cfg.FuncExitRaw = func() error { return nil }
		cfg.FuncGetWidth = func() int { return 80 }
		cfg.FuncOnWidthChanged = func(func()) {}
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("start prompt: %w", err)
	}

	return &Prompt{
		rl:          rl,
		interactive: interactive,
		out:         out,
		styles:      NewStyles(lipgloss.NewRenderer(out)),
	}, nil
}

// Close releases the terminal
func (p *Prompt) Close() error {
	return p.rl.Close()
}

// command is a parsed line of input: either a decision or an info request
type command struct {
	info     string
	decision game.Decision
}

// Decide shows the player's situation and reads commands until one is a
// decision. Info commands (hand, pot, help) are answered in place.
func (p *Prompt) Decide(req game.ActionRequest) (game.Decision, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if req.Attempt > 1 {
		fmt.Fprintln(p.out, p.styles.Error.Render("That action is not allowed here, try again."))
	}
	p.showSituation(req)

	prompt := p.styles.Action.Render(req.Player.Name + "> ")
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return game.Decision{}, fmt.Errorf("read command: %w", err)
		}

		cmd, err := parseCommand(line)
		if err != nil {
			fmt.Fprintln(p.out, p.styles.Error.Render(err.Error()))
			return game.Decision{}, err
		}

		switch cmd.info {
		case "":
			cmd.decision.Reasoning = "human"
			return cmd.decision, nil
		case "hand":
			fmt.Fprintf(p.out, "Your hand: %s  Board: %s\n", p.styles.Cards(req.Player.HoleCards), p.styles.Cards(req.Board))
		case "pot":
			fmt.Fprintf(p.out, "Pot: $%d  To call: $%d  Your chips: $%d\n", req.Pot, req.ToCall, req.Player.Chips)
		case "players":
			for _, o := range req.Opponents {
				fmt.Fprintf(p.out, "  %s\n", describeOpponent(o))
			}
		case "help":
			p.showActions(req)
			fmt.Fprintln(p.out, p.styles.Info.Render("Info: hand, pot, players, help"))
		}
	}
}

// readLine reads one command. Without a terminal readline stays quiet, so
// the prompt is written here instead.
func (p *Prompt) readLine(prompt string) (string, error) {
	if p.interactive {
		p.rl.SetPrompt(prompt)
	} else {
		fmt.Fprint(p.out, prompt)
	}

	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", fmt.Errorf("interrupted: %w", err)
	}
	return line, err
}

func (p *Prompt) showSituation(req game.ActionRequest) {
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "%s  Board: %s  Pot: %s\n",
		p.styles.Street.Render(strings.ToUpper(req.Street.String())),
		p.styles.Cards(req.Board),
		p.styles.Pot.Render(fmt.Sprintf("$%d", req.Pot)))
	fmt.Fprintf(p.out, "Your hand: %s  Chips: $%d  To call: $%d\n",
		p.styles.Cards(req.Player.HoleCards), req.Player.Chips, req.ToCall)
	p.showActions(req)
}

// showActions shows what actions the player can take
func (p *Prompt) showActions(req game.ActionRequest) {
	var actions []string
	for _, va := range req.ValidActions {
		switch va.Action {
		case game.Fold:
			actions = append(actions, p.styles.Error.Render("fold"))
		case game.Check:
			actions = append(actions, p.styles.Success.Render("check"))
		case game.Call:
			actions = append(actions, p.styles.Success.Render(fmt.Sprintf("call $%d", va.Min)))
		case game.Raise:
			actions = append(actions, p.styles.Warning.Render(fmt.Sprintf("raise <%d-%d>", va.Min, va.Max)))
		case game.AllIn:
			actions = append(actions, p.styles.Warning.Render(fmt.Sprintf("allin ($%d)", va.Min)))
		}
	}
	fmt.Fprintf(p.out, "Actions: %s\n", strings.Join(actions, " | "))
}

func describeOpponent(o game.PlayerView) string {
	status := fmt.Sprintf("$%d, bet $%d", o.Chips, o.Bet)
	switch {
	case o.Folded:
		status = "folded"
	case o.AllIn:
		status = fmt.Sprintf("all-in, bet $%d", o.Bet)
	}
	return fmt.Sprintf("%s (%s)", o.Name, status)
}

// parseCommand turns one line of input into a decision or info request.
// Raise amounts are the amount to raise by.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{}, fmt.Errorf("empty input: %w", ErrUnrecognized)
	}

	action, args := fields[0], fields[1:]
	switch action {
	case "fold", "f":
		return command{decision: game.Decision{Action: game.Fold}}, nil
	case "check", "ch", "k":
		return command{decision: game.Decision{Action: game.Check}}, nil
	case "call", "c":
		return command{decision: game.Decision{Action: game.Call}}, nil
	case "allin", "all", "a":
		return command{decision: game.Decision{Action: game.AllIn}}, nil
	case "raise", "r", "bet", "b":
		if len(args) != 1 {
			return command{}, fmt.Errorf("%s needs an amount: %w", action, ErrUnrecognized)
		}
		amount, err := strconv.Atoi(strings.TrimPrefix(args[0], "$"))
		if err != nil || amount <= 0 {
			return command{}, fmt.Errorf("invalid raise amount %q: %w", args[0], ErrUnrecognized)
		}
		return command{decision: game.Decision{Action: game.Raise, Amount: amount}}, nil
	case "hand", "h", "cards":
		return command{info: "hand"}, nil
	case "pot", "p":
		return command{info: "pot"}, nil
	case "players", "pl":
		return command{info: "players"}, nil
	case "help", "?":
		return command{info: "help"}, nil
	}
	return command{}, fmt.Errorf("%q: %w", line, ErrUnrecognized)
}
