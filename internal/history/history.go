// Package history keeps per-code-length play statistics in a flat file.
//
// The file holds one record per line as length:games:best:average, with the
// average written to two decimal places. A single process is assumed to own
// the file; concurrent writers are not coordinated.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrCorruptHistory reports a stats file that could not be parsed.
	ErrCorruptHistory = errors.New("corrupt history")
	// ErrPersistence reports a failure to write the stats file.
	ErrPersistence = errors.New("history not saved")
	// ErrInvalidResult reports a game result that cannot be recorded.
	ErrInvalidResult = errors.New("invalid game result")
)

const (
	fieldSep    = ":"
	fieldCount  = 4
	minLength   = 2
	averageFmt  = 'f'
	averagePrec = 2
	// A valid line is a few dozen bytes; anything past this is not a record.
	maxLineBytes = 4096
)

// Record holds the statistics for one code length.
type Record struct {
	Games   int
	Best    int
	Average float64
}

// Store maps code lengths to their records and remembers insertion order.
type Store struct {
	path    string
	order   []int
	records map[int]Record
}

// New returns an empty store bound to path without touching the disk.
func New(path string) *Store {
	return &Store{path: path, records: map[int]Record{}}
}

// Load reads the stats file at path.
//
// A missing file yields an empty store and an empty file is created in its
// place. If that creation fails the empty store is still returned together
// with an ErrPersistence error. Any malformed line fails the whole load with
// ErrCorruptHistory.
func Load(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history path is empty")
	}
	s := New(path)
	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		if cerr := createEmpty(path); cerr != nil {
			return s, cerr
		}
		return s, nil
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only history.
			_ = cerr
		}
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 256), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		length, rec, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCorruptHistory, lineNo, err)
		}
		if _, dup := s.records[length]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate code length %d", ErrCorruptHistory, lineNo, length)
		}
		s.put(length, rec)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d: longer than %d bytes", ErrCorruptHistory, lineNo+1, maxLineBytes)
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return s, nil
}

func createEmpty(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: failed to create history directory: %v", ErrPersistence, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: failed to create history file: %v", ErrPersistence, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: failed to create history file: %v", ErrPersistence, err)
	}
	return nil
}

func parseLine(line string) (int, Record, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) != fieldCount {
		return 0, Record{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	ints := make([]int, 3)
	names := []string{"code length", "games played", "best score"}
	for i := range ints {
		v, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil {
			return 0, Record{}, fmt.Errorf("%s %q is not a number", names[i], fields[i])
		}
		ints[i] = v
	}
	avg, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil || math.IsNaN(avg) || math.IsInf(avg, 0) {
		return 0, Record{}, fmt.Errorf("average score %q is not a number", fields[3])
	}
	length, games, best := ints[0], ints[1], ints[2]
	switch {
	case length < minLength:
		return 0, Record{}, fmt.Errorf("code length %d is below %d", length, minLength)
	case games < 1:
		return 0, Record{}, fmt.Errorf("games played %d is below 1", games)
	case best < 1:
		return 0, Record{}, fmt.Errorf("best score %d is below 1", best)
	case avg < float64(best):
		return 0, Record{}, fmt.Errorf("average score %.2f is below best score %d", avg, best)
	}
	return length, Record{Games: games, Best: best, Average: avg}, nil
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of code lengths with a record.
func (s *Store) Len() int {
	return len(s.order)
}

// Lengths returns the recorded code lengths in insertion order.
func (s *Store) Lengths() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the record for a code length.
func (s *Store) Get(length int) (Record, bool) {
	rec, ok := s.records[length]
	return rec, ok
}

func (s *Store) put(length int, rec Record) {
	if _, ok := s.records[length]; !ok {
		s.order = append(s.order, length)
	}
	s.records[length] = rec
}

// Record adds a completed game and persists the store.
//
// The returned notice describes how the game compares to earlier ones. When
// the write fails the in-memory update is kept and the error wraps
// ErrPersistence.
func (s *Store) Record(length, guesses int) (Notice, error) {
	if length < minLength {
		return Notice{}, fmt.Errorf("%w: code length %d is below %d", ErrInvalidResult, length, minLength)
	}
	if guesses < 1 {
		return Notice{}, fmt.Errorf("%w: guess count %d is below 1", ErrInvalidResult, guesses)
	}

	notice := Notice{Length: length, Guesses: guesses}
	prev, ok := s.records[length]
	if !ok {
		notice.Kind = NoticeFirst
		s.put(length, Record{Games: 1, Best: guesses, Average: float64(guesses)})
	} else {
		next := prev
		switch {
		case guesses < prev.Best:
			notice.Kind = NoticeBest
			next.Best = guesses
		case float64(guesses) < prev.Average:
			notice.Kind = NoticeAboveAverage
			notice.Average = prev.Average
		}
		// The mean uses the game count from before this game.
		next.Average = (prev.Average*float64(prev.Games) + float64(guesses)) / float64(prev.Games+1)
		next.Games = prev.Games + 1
		s.put(length, next)
	}

	if err := s.Persist(); err != nil {
		return notice, err
	}
	return notice, nil
}

// Persist writes every record to the stats file in one pass and renames it
// into place, so an interrupted write never leaves a truncated file.
func (s *Store) Persist() error {
	if s.path == "" {
		return fmt.Errorf("%w: history path is empty", ErrPersistence)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create history directory: %v", ErrPersistence, err)
	}
	tmpFile, err := os.CreateTemp(dir, ".history-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp history: %v", ErrPersistence, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if err := tmpFile.Chmod(fileMode(s.path)); err != nil {
		return fmt.Errorf("%w: failed to set history permissions: %v", ErrPersistence, err)
	}

	writer := bufio.NewWriter(tmpFile)
	for _, length := range s.order {
		if _, err := writer.WriteString(formatLine(length, s.records[length]) + "\n"); err != nil {
			return fmt.Errorf("%w: failed to write history: %v", ErrPersistence, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("%w: failed to flush history: %v", ErrPersistence, err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("%w: failed to sync history: %v", ErrPersistence, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: failed to close history: %v", ErrPersistence, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("%w: failed to replace history: %v", ErrPersistence, err)
	}
	return nil
}

// fileMode keeps the permissions of an existing stats file.
func fileMode(path string) fs.FileMode {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return 0o644
	}
	return info.Mode().Perm()
}

func formatLine(length int, rec Record) string {
	return strings.Join([]string{
		strconv.Itoa(length),
		strconv.Itoa(rec.Games),
		strconv.Itoa(rec.Best),
		FormatAverage(rec.Average),
	}, fieldSep)
}
