package history

import (
	"fmt"
	"strconv"
)

// NoticeKind classifies a recorded result.
type NoticeKind int

const (
	// NoticeNone means the result was neither a best nor above average.
	NoticeNone NoticeKind = iota
	// NoticeFirst means this was the first game at this code length.
	NoticeFirst
	// NoticeBest means the result beat the previous best.
	NoticeBest
	// NoticeAboveAverage means the result beat the previous average.
	NoticeAboveAverage
)

// Notice describes how a recorded game compares to earlier games.
type Notice struct {
	Kind    NoticeKind
	Length  int
	Guesses int
	// Average is the average before this game, set for NoticeAboveAverage.
	Average float64
}

// String returns the message shown to the player, or "" when there is nothing to say.
func (n Notice) String() string {
	switch n.Kind {
	case NoticeBest:
		return fmt.Sprintf("%d is a new best score for codes of length %d!", n.Guesses, n.Length)
	case NoticeAboveAverage:
		return fmt.Sprintf("%d is better than your average score of %s for codes of length %d",
			n.Guesses, FormatAverage(n.Average), n.Length)
	default:
		return ""
	}
}

// FormatAverage renders an average the way the stats file stores it.
func FormatAverage(avg float64) string {
	return strconv.FormatFloat(avg, averageFmt, averagePrec, 64)
}
