package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/codebreaker/internal/game"
	"github.com/verte-zerg/codebreaker/internal/history"
	"github.com/verte-zerg/codebreaker/internal/model"
)

type fixedCodes string

func (f fixedCodes) Code(int) string { return string(f) }

func newTestModel(t *testing.T, code string, cfg model.Config) (*Model, *history.Store) {
	t.Helper()
	h := history.New(filepath.Join(t.TempDir(), "CODEBREAKER.history"))
	session := game.NewSession(h, nil, fixedCodes(code))
	return NewModel(context.Background(), session, cfg), h
}

func enter(t *testing.T, m *Model, value string) {
	t.Helper()
	m.input.SetValue(value)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("unexpected command after enter")
	}
}

func TestRoundFlow(t *testing.T) {
	m, h := newTestModel(t, "1123", model.Config{ASCII: true})
	if m.phase != phaseLength {
		t.Fatalf("expected length phase, got %d", m.phase)
	}

	enter(t, m, "1")
	if m.status != "You must choose a number greater than 1" {
		t.Fatalf("unexpected status %q", m.status)
	}
	enter(t, m, "4")
	if m.phase != phaseGuess || m.round.Length() != 4 {
		t.Fatalf("expected guess phase for length 4")
	}
	if m.input.CharLimit != 4 {
		t.Fatalf("expected char limit 4, got %d", m.input.CharLimit)
	}

	enter(t, m, "12")
	if m.status != "You must enter 4 numbers" {
		t.Fatalf("unexpected status %q", m.status)
	}
	enter(t, m, "1111")
	if m.status != "" || m.round.Guesses() != 1 {
		t.Fatalf("expected scored guess, status %q guesses %d", m.status, m.round.Guesses())
	}
	if !strings.Contains(m.View(), "★  ☆  --") {
		t.Fatalf("board missing feedback:\n%s", m.View())
	}

	enter(t, m, "1123")
	if m.phase != phaseDone {
		t.Fatalf("expected done phase")
	}
	if !strings.Contains(m.View(), "Number of guesses: 2") {
		t.Fatalf("view missing result:\n%s", m.View())
	}
	if rec, ok := h.Get(4); !ok || rec.Games != 1 || rec.Best != 2 {
		t.Fatalf("expected recorded game, got %+v", rec)
	}

	enter(t, m, "")
	if m.phase != phaseLength || m.round != nil {
		t.Fatalf("expected a fresh round after enter")
	}
}

func TestFixedLengthSkipsPrompt(t *testing.T) {
	m, _ := newTestModel(t, "42", model.Config{Length: 2, Reveal: true})
	if m.phase != phaseGuess {
		t.Fatalf("expected guess phase")
	}
	if !strings.Contains(m.View(), "(the code is 42)") {
		t.Fatalf("expected revealed code:\n%s", m.View())
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, "42", model.Config{Length: 2})
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatalf("expected quit command on ctrl+c")
	}
	enter(t, m, "42")
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Fatalf("expected quit command on q after a finished round")
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m, h := newTestModel(t, "1234", model.Config{Length: 4})
	if _, err := h.Record(4, 6); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := h.Record(4, 5); err != nil {
		t.Fatalf("record: %v", err)
	}
	enter(t, m, "0000")
	out := m.renderFooter()
	if !containsAll(out, []string{"Length 4", "Guesses 1", "Games 2", "Best 5", "Avg 5.50"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}

	m.Update(tea.WindowSizeMsg{Width: 12, Height: 20})
	if got := m.fit("abcdefghijklmnop"); got != "abcdefghijk…" {
		t.Fatalf("unexpected truncation %q", got)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
