package tuiview

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/pile/pkg/pile"
	"github.com/BrandonKowalski/pile/pkg/pile/constants"
	"github.com/BrandonKowalski/pile/pkg/pile/deck"
)

// Lines taken by the status and help lines.
const chromeLines = 2

// FrameMsg advances the animator to the given time.
type FrameMsg time.Time

// CommandMsg delivers a command from outside the terminal.
type CommandMsg constants.Command

// Poller is polled once per frame for commands from an input device.
type Poller interface {
	Poll(now time.Time) []constants.Command
}

// Options configures a Model.
type Options struct {
	Titles []string
	Pile   pile.Options
	FPS    int
	Width  int
	Height int

	// Help is shown under the stage.
	Help string
	// Status renders the status line from the stack depth.
	Status func(depth int) string
	Poller Poller
	Logger *slog.Logger
}

var (
	statusStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is a bubbletea model showing a deck of cards on a Stage.
type Model struct {
	stage *Stage
	anim  *pile.Animator
	pile  *pile.Pile
	deck  *deck.Deck

	help   string
	status func(int) string
	poller Poller

	last     time.Time
	err      error
	quitting bool
}

// NewModel builds the stage, animator, pile and deck and deals the
// first card.
func NewModel(opts Options) (*Model, error) {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	if opts.Status == nil {
		opts.Status = func(n int) string { return fmt.Sprintf("%d cards", n) }
	}
	if opts.Pile.Logger == nil {
		opts.Pile.Logger = opts.Logger
	}

	m := &Model{
		stage:  NewStage(opts.Width, opts.Height-chromeLines),
		anim:   pile.NewAnimator(opts.FPS),
		help:   opts.Help,
		status: opts.Status,
		poller: opts.Poller,
	}
	m.pile = pile.New(m.stage, m.anim, opts.Pile)
	m.deck = deck.New(m.pile, opts.Titles, func(f deck.Face) (pile.Element, error) {
		return NewCard(f.Title, Palette[f.Serial%len(Palette)]), nil
	}, opts.Logger)

	if err := m.deck.Start(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init starts the frame clock.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles keys, resizes, frames and external commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.apply(keyCommand(msg.String()))

	case CommandMsg:
		return m.apply(constants.Command(msg))

	case tea.WindowSizeMsg:
		m.stage.Resize(msg.Width, msg.Height-chromeLines)
		m.pile.Relayout()
		return m, nil

	case FrameMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m.anim.Advance(now.Sub(m.last))
		}
		m.last = now

		if m.poller != nil {
			for _, c := range m.poller.Poll(now) {
				if _, next := m.apply(c); next != nil {
					return m, next
				}
			}
		}
		return m, m.tick()
	}

	return m, nil
}

// View renders the status line, the stage and the help line.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	status := statusStyle.Render(m.status(m.deck.Depth()))
	if m.err != nil {
		status += "  " + errorStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		status,
		m.stage.View(),
		helpStyle.Render(m.help),
	)
}

// Stage returns the stage the cards are drawn on.
func (m *Model) Stage() *Stage { return m.stage }

// Pile returns the pile driving the stage.
func (m *Model) Pile() *pile.Pile { return m.pile }

// Deck returns the deck dealing cards.
func (m *Model) Deck() *deck.Deck { return m.deck }

func (m *Model) apply(cmd constants.Command) (tea.Model, tea.Cmd) {
	quit, err := m.deck.Apply(cmd)
	if err != nil {
		m.err = err
	}
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.anim.FrameDuration(), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func keyCommand(key string) constants.Command {
	switch key {
	case "right", "l", " ", "enter":
		return constants.CommandPush
	case "left", "h", "backspace":
		return constants.CommandPop
	case "u":
		return constants.CommandUpdate
	case "r":
		return constants.CommandReset
	case "q", "esc", "ctrl+c":
		return constants.CommandQuit
	default:
		return constants.CommandNone
	}
}
