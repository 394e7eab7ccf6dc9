package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/codebreaker/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "data", "codebreaker.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListGames(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 4; i++ {
		start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Hour)
		end := start.Add(2 * time.Minute)
		length := 4
		if i%2 == 1 {
			length = 5
		}
		game := model.GameRecord{
			StartedAt:  start,
			EndedAt:    end,
			CodeLength: length,
			Code:       "0123456789"[:length],
			Guesses:    3 + i,
			DurationMs: end.Sub(start).Milliseconds(),
		}
		guesses := []model.GuessRecord{
			{Seq: 1, Guess: "9999999999"[:length], Exact: 1, Partial: 0},
			{Seq: 2, Guess: game.Code, Exact: length, Partial: 0},
		}
		id, err := st.InsertGame(ctx, game, guesses)
		if err != nil {
			t.Fatalf("insert game: %v", err)
		}
		ids = append(ids, id)
	}

	all, err := st.ListGames(ctx, model.JournalConfig{})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 games, got %d", len(all))
	}
	if all[0].ID != ids[0] || all[3].ID != ids[3] {
		t.Fatalf("expected oldest first, got %+v", all)
	}
	if all[1].Code != "01234" || all[1].Guesses != 4 || all[1].DurationMs != 120000 {
		t.Fatalf("unexpected game %+v", all[1])
	}
	if !all[2].EndedAt.Equal(time.Unix(0, 0).Add(2*time.Hour + 2*time.Minute)) {
		t.Fatalf("unexpected ended_at %v", all[2].EndedAt)
	}

	fives, err := st.ListGames(ctx, model.JournalConfig{Length: 5})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(fives) != 2 || fives[0].ID != ids[1] || fives[1].ID != ids[3] {
		t.Fatalf("unexpected length filter result %+v", fives)
	}

	since := time.Unix(0, 0).UTC().Add(90 * time.Minute)
	recent, err := st.ListGames(ctx, model.JournalConfig{Since: &since, Last: 1})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != ids[3] {
		t.Fatalf("unexpected since/last result %+v", recent)
	}

	guesses, err := st.ListGuesses(ctx, ids[2])
	if err != nil {
		t.Fatalf("list guesses: %v", err)
	}
	if len(guesses) != 2 || guesses[0].Seq != 1 || guesses[1].Exact != 4 || guesses[1].Guess != "0123" {
		t.Fatalf("unexpected guesses %+v", guesses)
	}
}

func TestListGamesEmpty(t *testing.T) {
	st := openTestStore(t)
	games, err := st.ListGames(context.Background(), model.JournalConfig{Length: 4})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected no games, got %d", len(games))
	}
}

func TestGetGame(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	start := time.Unix(100, 0).UTC()
	game := model.GameRecord{
		StartedAt:  start,
		EndedAt:    start.Add(45 * time.Second),
		CodeLength: 3,
		Code:       "707",
		Guesses:    1,
		DurationMs: 45000,
	}
	id, err := st.InsertGame(ctx, game, []model.GuessRecord{{Seq: 1, Guess: "707", Exact: 3}})
	if err != nil {
		t.Fatalf("insert game: %v", err)
	}

	got, err := st.GetGame(ctx, id)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.ID != id || got.Code != "707" || got.CodeLength != 3 || !got.StartedAt.Equal(start) {
		t.Fatalf("unexpected game %+v", got)
	}

	if _, err := st.GetGame(ctx, id+1); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}
