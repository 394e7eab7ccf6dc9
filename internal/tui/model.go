// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/codebreaker/internal/game"
	"github.com/verte-zerg/codebreaker/internal/history"
	"github.com/verte-zerg/codebreaker/internal/match"
	"github.com/verte-zerg/codebreaker/internal/model"
)

type phase int

const (
	phaseLength phase = iota
	phaseGuess
	phaseDone
)

const title = "CODE⚡BREAKER"

// Model implements the Bubble Tea game UI.
type Model struct {
	ctx     context.Context
	session *game.Session
	config  model.Config
	glyphs  match.Glyphs

	input textinput.Model
	phase phase
	round *game.Round

	summary string
	status  string
	notice  string
	warning string

	width  int
	height int
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	guessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a game TUI model.
func NewModel(ctx context.Context, session *game.Session, cfg model.Config) *Model {
	glyphs := match.EmojiGlyphs
	if cfg.ASCII {
		glyphs = match.ASCIIGlyphs
	}
	m := &Model{
		ctx:     ctx,
		session: session,
		config:  cfg,
		glyphs:  glyphs,
		input:   textinput.New(),
	}
	m.startRound()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		}
		if m.phase == phaseDone {
			if msg.Type == tea.KeyRunes && string(msg.Runes) == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	switch m.phase {
	case phaseLength:
		length, err := game.ParseCodeLength(value)
		if err != nil {
			m.status = game.Message(err, 0)
			m.input.Reset()
			return nil
		}
		m.beginGuessing(length)
	case phaseGuess:
		if _, err := m.round.Submit(value); err != nil {
			m.status = game.Message(err, m.round.Length())
			return nil
		}
		m.status = ""
		m.input.Reset()
		if m.round.Solved() {
			m.finishRound()
		}
	case phaseDone:
		m.startRound()
	}
	return nil
}

func (m *Model) startRound() {
	m.round = nil
	m.status = ""
	m.notice = ""
	m.warning = ""
	m.summary = ""
	m.input.Reset()
	m.input.Focus()
	if m.config.Length > 0 {
		m.beginGuessing(m.config.Length)
		return
	}
	m.phase = phaseLength
	m.input.Prompt = "Code length: "
	m.input.Placeholder = "4"
	m.input.CharLimit = 2
}

func (m *Model) beginGuessing(length int) {
	m.phase = phaseGuess
	m.round = m.session.NewRound(length)
	m.summary = m.session.Summary(length)
	m.status = ""
	m.input.Reset()
	m.input.Prompt = "Guess: "
	m.input.Placeholder = strings.Repeat("0", length)
	m.input.CharLimit = length
}

func (m *Model) finishRound() {
	m.phase = phaseDone
	m.input.Blur()
	notice, err := m.session.Complete(m.ctx, m.round)
	m.notice = notice.String()
	if err != nil {
		m.warning = completeWarning(err)
	}
}

func completeWarning(err error) string {
	if errors.Is(err, history.ErrPersistence) {
		return "Uh oh, the history file couldn't be updated: " + err.Error()
	}
	return err.Error()
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{titleStyle.Render(title), ""}
	if m.summary != "" {
		lines = append(lines, mutedStyle.Render(m.fit(m.summary)), "")
	}
	if m.round != nil {
		if m.config.Reveal {
			lines = append(lines, mutedStyle.Render("(the code is "+m.round.Code()+")"))
		}
		lines = append(lines, m.renderBoard()...)
	}
	switch m.phase {
	case phaseDone:
		lines = append(lines, "",
			successStyle.Render(fmt.Sprintf("You cracked the code!  Number of guesses: %d", m.round.Guesses())))
		if m.notice != "" {
			lines = append(lines, successStyle.Render(m.fit(m.notice)))
		}
		lines = append(lines, mutedStyle.Render("enter: play again · q: quit"))
	default:
		lines = append(lines, "", m.input.View())
	}
	if m.status != "" {
		lines = append(lines, errorStyle.Render(m.fit(m.status)))
	}
	if m.warning != "" {
		lines = append(lines, errorStyle.Render(m.fit(m.warning)))
	}
	content := strings.Join(lines, "\n")

	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderBoard() []string {
	turns := m.round.Turns()
	lines := make([]string, 0, len(turns))
	numWidth := len(strconv.Itoa(len(turns)))
	for i, turn := range turns {
		num := fmt.Sprintf("%*d.", numWidth, i+1)
		feedback := match.Render(turn.Result, m.round.Length(), m.glyphs)
		lines = append(lines, mutedStyle.Render(num)+" "+guessStyle.Render(turn.Guess)+"  "+feedback)
	}
	return lines
}

func (m *Model) renderFooter() string {
	if m.round == nil {
		return footerStyle.Render(m.fit("esc: quit"))
	}
	length := m.round.Length()
	segments := []string{fmt.Sprintf("Length %d", length), fmt.Sprintf("Guesses %d", m.round.Guesses())}
	if rec, ok := m.session.History().Get(length); ok {
		segments = append(segments,
			fmt.Sprintf("Games %d", rec.Games),
			fmt.Sprintf("Best %d", rec.Best),
			fmt.Sprintf("Avg %s", history.FormatAverage(rec.Average)))
	}
	return footerStyle.Render(m.fit(strings.Join(segments, " · ")))
}

// fit truncates plain text to the window width.
func (m *Model) fit(s string) string {
	if m.width <= 0 {
		return s
	}
	return runewidth.Truncate(s, m.width, "…")
}
