package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/codebreaker/internal/history"
	"github.com/verte-zerg/codebreaker/internal/model"
)

// ErrRoundNotSolved reports an attempt to record an unfinished round.
var ErrRoundNotSolved = errors.New("round not solved")

// Journal stores finished games.
type Journal interface {
	InsertGame(ctx context.Context, game model.GameRecord, guesses []model.GuessRecord) (int64, error)
}

// CodeSource produces secret codes.
type CodeSource interface {
	Code(length int) string
}

// Session ties rounds to the stats store and the optional journal.
type Session struct {
	history *history.Store
	journal Journal
	codes   CodeSource
	now     func() time.Time
}

// NewSession builds a session. journal may be nil.
func NewSession(h *history.Store, journal Journal, codes CodeSource) *Session {
	return &Session{history: h, journal: journal, codes: codes, now: time.Now}
}

// History returns the stats store.
func (s *Session) History() *history.Store {
	return s.history
}

// NewRound starts a round with a fresh code of the given length.
func (s *Session) NewRound(length int) *Round {
	return NewRound(s.codes.Code(length), s.now())
}

// Summary describes earlier play at the given length.
func (s *Session) Summary(length int) string {
	return Summary(s.history, length)
}

// Complete records a solved round.
//
// Stats and journal failures do not undo each other; both are returned
// joined so the caller can report them and keep playing.
func (s *Session) Complete(ctx context.Context, r *Round) (history.Notice, error) {
	if !r.Solved() {
		return history.Notice{}, ErrRoundNotSolved
	}
	notice, histErr := s.history.Record(r.Length(), r.Guesses())
	if histErr != nil && !errors.Is(histErr, history.ErrPersistence) {
		return history.Notice{}, histErr
	}
	var journalErr error
	if s.journal != nil {
		game, guesses := r.Journal(s.now())
		if _, err := s.journal.InsertGame(ctx, game, guesses); err != nil {
			journalErr = fmt.Errorf("failed to save game to journal: %w", err)
		}
	}
	return notice, errors.Join(histErr, journalErr)
}

// Summary describes earlier play at the given length.
func Summary(h *history.Store, length int) string {
	rec, ok := h.Get(length)
	if !ok {
		return fmt.Sprintf("This is your first time trying a code of length %d", length)
	}
	return fmt.Sprintf("The number of times you have tried codes of length %d is %d.  Your average and best number of guesses are %s and %d, respectively.",
		length, rec.Games, history.FormatAverage(rec.Average), rec.Best)
}
