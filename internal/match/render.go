package match

import "strings"

// Glyphs are the symbols used to display a Result.
type Glyphs struct {
	Exact   string
	Partial string
	Miss    string
}

var (
	// EmojiGlyphs is the default feedback set.
	EmojiGlyphs = Glyphs{Exact: "⭐", Partial: "⭕", Miss: "➖"}
	// ASCIIGlyphs suits terminals without emoji fonts.
	ASCIIGlyphs = Glyphs{Exact: "★", Partial: "☆", Miss: "-"}
)

// Render formats r as exact, partial and missed glyph groups.
func Render(r Result, length int, g Glyphs) string {
	miss := length - r.Exact - r.Partial
	if miss < 0 {
		miss = 0
	}
	return strings.Repeat(g.Exact, r.Exact) + "  " +
		strings.Repeat(g.Partial, r.Partial) + "  " +
		strings.Repeat(g.Miss, miss)
}
