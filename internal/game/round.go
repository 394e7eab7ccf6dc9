package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/codebreaker/internal/match"
	"github.com/verte-zerg/codebreaker/internal/model"
)

// ErrRoundOver reports a guess submitted after the code was cracked.
var ErrRoundOver = errors.New("round already solved")

// Turn is one scored guess.
type Turn struct {
	Guess  string
	Result match.Result
}

// Round is a single game against one secret code.
type Round struct {
	code      string
	startedAt time.Time
	turns     []Turn
	solved    bool
}

// NewRound starts a round for the given secret code.
func NewRound(code string, startedAt time.Time) *Round {
	return &Round{code: code, startedAt: startedAt}
}

// Submit validates and scores a guess. Invalid guesses are not counted.
func (r *Round) Submit(guess string) (Turn, error) {
	if r.solved {
		return Turn{}, ErrRoundOver
	}
	if err := ValidateGuess(guess, len(r.code)); err != nil {
		return Turn{}, err
	}
	res, err := match.Feedback(r.code, guess)
	if err != nil {
		return Turn{}, fmt.Errorf("failed to score guess: %w", err)
	}
	turn := Turn{Guess: guess, Result: res}
	r.turns = append(r.turns, turn)
	r.solved = res.Solved(len(r.code))
	return turn, nil
}

// Code returns the secret code.
func (r *Round) Code() string {
	return r.code
}

// Length returns the code length.
func (r *Round) Length() int {
	return len(r.code)
}

// Solved reports whether the code has been cracked.
func (r *Round) Solved() bool {
	return r.solved
}

// Guesses returns the number of counted guesses.
func (r *Round) Guesses() int {
	return len(r.turns)
}

// Turns returns the scored guesses in order.
func (r *Round) Turns() []Turn {
	out := make([]Turn, len(r.turns))
	copy(out, r.turns)
	return out
}

// Journal converts the round into journal rows.
func (r *Round) Journal(endedAt time.Time) (model.GameRecord, []model.GuessRecord) {
	game := model.GameRecord{
		StartedAt:  r.startedAt,
		EndedAt:    endedAt,
		CodeLength: len(r.code),
		Code:       r.code,
		Guesses:    len(r.turns),
		DurationMs: endedAt.Sub(r.startedAt).Milliseconds(),
	}
	guesses := make([]model.GuessRecord, 0, len(r.turns))
	for i, turn := range r.turns {
		guesses = append(guesses, model.GuessRecord{
			Seq:     i + 1,
			Guess:   turn.Guess,
			Exact:   turn.Result.Exact,
			Partial: turn.Result.Partial,
		})
	}
	return game, guesses
}
