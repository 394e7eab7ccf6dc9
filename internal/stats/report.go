package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/verte-zerg/codebreaker/internal/match"
	"github.com/verte-zerg/codebreaker/internal/model"
	"github.com/verte-zerg/codebreaker/internal/store"
)

const recentGames = 10

// Report contains precomputed data for journal rendering.
type Report struct {
	Games  []model.GameRecord
	Trend  []float64
	Window int
}

// BuildReport loads and prepares journal data for rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.JournalConfig) (Report, error) {
	games, err := st.ListGames(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	values := make([]float64, len(games))
	for i, g := range games {
		values[i] = float64(g.Guesses)
	}
	return Report{
		Games:  games,
		Trend:  MovingAverage(values, cfg.Window),
		Window: cfg.Window,
	}, nil
}

// RenderJournal prints a summary, the most recent games and a guess trend
// no wider than width columns.
func RenderJournal(w io.Writer, r Report, width int) error {
	if len(r.Games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	best := r.Games[0].Guesses
	var totalGuesses int
	var totalMs int64
	for _, g := range r.Games {
		best = min(best, g.Guesses)
		totalGuesses += g.Guesses
		totalMs += g.DurationMs
	}
	count := len(r.Games)
	lines := []string{
		"Summary",
		fmt.Sprintf("Games: %d", count),
		fmt.Sprintf("Best: %d guesses", best),
		fmt.Sprintf("Avg guesses: %.2f", float64(totalGuesses)/float64(count)),
		fmt.Sprintf("Avg time: %s", formatDuration(totalMs/int64(count))),
		"",
		"Recent games",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	recent := r.Games
	if len(recent) > recentGames {
		recent = recent[len(recent)-recentGames:]
	}
	tbl := newTable(
		column{title: "#", right: true},
		column{title: "Date"},
		column{title: "Length", right: true},
		column{title: "Code"},
		column{title: "Guesses", right: true},
		column{title: "Time", right: true},
	)
	for i := len(recent) - 1; i >= 0; i-- {
		g := recent[i]
		tbl.add(
			strconv.FormatInt(g.ID, 10),
			g.EndedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(g.CodeLength),
			g.Code,
			strconv.Itoa(g.Guesses),
			formatDuration(g.DurationMs),
		)
	}
	if err := tbl.write(w); err != nil {
		return err
	}

	if len(r.Trend) < 2 {
		return nil
	}
	title := "Guesses trend"
	if r.Window > 1 {
		title = fmt.Sprintf("Guesses trend (moving average, window %d)", r.Window)
	}
	if width <= 0 {
		width = terminalWidthBackup
	}
	if _, err := fmt.Fprintf(w, "\n%s\n%s\n", title, Sparkline(lastValues(r.Trend, width))); err != nil {
		return err
	}
	return nil
}

// GameReport holds one journaled game and its guesses.
type GameReport struct {
	Game    model.GameRecord
	Guesses []model.GuessRecord
}

// BuildGameReport loads a single game with its guesses.
func BuildGameReport(ctx context.Context, st *store.Store, id int64) (GameReport, error) {
	g, err := st.GetGame(ctx, id)
	if err != nil {
		return GameReport{}, err
	}
	guesses, err := st.ListGuesses(ctx, id)
	if err != nil {
		return GameReport{}, err
	}
	return GameReport{Game: g, Guesses: guesses}, nil
}

// RenderGame replays a journaled game guess by guess.
func RenderGame(w io.Writer, r GameReport, glyphs match.Glyphs) error {
	g := r.Game
	if _, err := fmt.Fprintf(w, "Game %d: code %s cracked in %d guesses (%s), %s\n\n",
		g.ID, g.Code, g.Guesses, formatDuration(g.DurationMs),
		g.EndedAt.Local().Format("2006-01-02 15:04")); err != nil {
		return err
	}
	tbl := newTable(
		column{title: "#", right: true},
		column{title: "Guess"},
		column{title: "Feedback"},
	)
	for _, guess := range r.Guesses {
		res := match.Result{Exact: guess.Exact, Partial: guess.Partial}
		tbl.add(strconv.Itoa(guess.Seq), guess.Guess, match.Render(res, g.CodeLength, glyphs))
	}
	return tbl.write(w)
}

func formatDuration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Second).String()
}
