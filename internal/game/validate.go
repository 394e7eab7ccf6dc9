// Package game holds the rules of a codebreaker round and the validation
// applied to raw player input before it reaches the match engine.
package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinCodeLength is the shortest playable code.
	MinCodeLength = 2
	// MaxCodeLength bounds the code length so a guess still fits on one line.
	MaxCodeLength = 64
)

var (
	// ErrLengthMismatch reports a guess with the wrong number of digits.
	ErrLengthMismatch = errors.New("guess length does not match code length")
	// ErrNotNumeric reports input containing characters other than 0-9.
	ErrNotNumeric = errors.New("input is not numeric")
	// ErrLengthTooShort reports a code length below MinCodeLength.
	ErrLengthTooShort = errors.New("code length too short")
	// ErrLengthTooLong reports a code length above MaxCodeLength.
	ErrLengthTooLong = errors.New("code length too long")
)

// ParseCodeLength validates a code length typed by the player.
func ParseCodeLength(input string) (int, error) {
	input = strings.TrimSpace(input)
	if !isNumeric(input) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, input)
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		// Only overflow gets here.
		return 0, fmt.Errorf("%w: %q", ErrLengthTooLong, input)
	}
	if n < MinCodeLength {
		return 0, fmt.Errorf("%w: %d", ErrLengthTooShort, n)
	}
	if n > MaxCodeLength {
		return 0, fmt.Errorf("%w: %d", ErrLengthTooLong, n)
	}
	return n, nil
}

// ValidateGuess checks a guess for a code of the given length. The length is
// checked before the alphabet.
func ValidateGuess(guess string, length int) error {
	if len(guess) != length {
		return fmt.Errorf("%w: got %d characters, want %d", ErrLengthMismatch, len(guess), length)
	}
	if !isNumeric(guess) {
		return fmt.Errorf("%w: %q", ErrNotNumeric, guess)
	}
	return nil
}

// Message returns the re-prompt text for a validation error. Pass length 0
// while asking for the code length itself.
func Message(err error, length int) string {
	switch {
	case errors.Is(err, ErrLengthMismatch):
		return fmt.Sprintf("You must enter %d numbers", length)
	case errors.Is(err, ErrNotNumeric) && length > 0:
		return "The code may contain only numbers"
	case errors.Is(err, ErrNotNumeric):
		return "You must enter a number"
	case errors.Is(err, ErrLengthTooShort):
		return fmt.Sprintf("You must choose a number greater than %d", MinCodeLength-1)
	case errors.Is(err, ErrLengthTooLong):
		return fmt.Sprintf("You must choose a number no greater than %d", MaxCodeLength)
	case err != nil:
		return err.Error()
	default:
		return ""
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
