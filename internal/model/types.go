// Package model defines shared data structures.
package model

import "time"

// Config defines play settings.
type Config struct {
	Length      int
	Reveal      bool
	ASCII       bool
	Plain       bool
	HistoryPath string
	Journal     bool
}

// JournalConfig defines filters and options for journal output.
type JournalConfig struct {
	Length int
	Since  *time.Time
	Last   int
	Window int
}

// GameRecord captures a completed game.
type GameRecord struct {
	ID         int64
	StartedAt  time.Time
	EndedAt    time.Time
	CodeLength int
	Code       string
	Guesses    int
	DurationMs int64
}

// GuessRecord stores one scored guess of a game.
type GuessRecord struct {
	Seq     int
	Guess   string
	Exact   int
	Partial int
}
