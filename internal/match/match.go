// Package match scores guesses against a secret code.
package match

import (
	"errors"
	"fmt"
)

// ErrInvalidInput reports a code/guess pair that cannot be scored.
var ErrInvalidInput = errors.New("invalid input")

const consumed = '-'

// Result holds the feedback for one guess.
type Result struct {
	Exact   int
	Partial int
}

// Solved reports whether every position of a code of the given length matched.
func (r Result) Solved(length int) bool {
	return length > 0 && r.Exact == length
}

// Feedback counts exact and partial matches of guess against code.
//
// Exact matches are consumed on both sides before any partial match is
// looked for, so a digit never scores twice. Each remaining guess digit
// takes the first unconsumed equal digit of the code.
func Feedback(code, guess string) (Result, error) {
	if len(code) != len(guess) {
		return Result{}, fmt.Errorf("%w: code has %d digits, guess has %d", ErrInvalidInput, len(code), len(guess))
	}
	if err := checkDigits(code); err != nil {
		return Result{}, fmt.Errorf("code: %w", err)
	}
	if err := checkDigits(guess); err != nil {
		return Result{}, fmt.Errorf("guess: %w", err)
	}

	codeDigits := []byte(code)
	guessDigits := []byte(guess)

	var res Result
	for i := range codeDigits {
		if codeDigits[i] == guessDigits[i] {
			codeDigits[i] = consumed
			guessDigits[i] = consumed
			res.Exact++
		}
	}

	for _, g := range guessDigits {
		if g == consumed {
			continue
		}
		for j, c := range codeDigits {
			if c == consumed || c != g {
				continue
			}
			codeDigits[j] = consumed
			res.Partial++
			break
		}
	}
	return res, nil
}

func checkDigits(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("%w: non-digit %q at position %d", ErrInvalidInput, s[i], i)
		}
	}
	return nil
}
