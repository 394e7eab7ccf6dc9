package stats

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/verte-zerg/codebreaker/internal/history"
)

// RenderScores prints the best and average scores for every code length.
func RenderScores(w io.Writer, h *history.Store) error {
	if h.Len() == 0 {
		_, err := fmt.Fprintln(w, "No games played yet. Try one!")
		return err
	}
	lengths := h.Lengths()
	sort.Ints(lengths)

	if _, err := fmt.Fprintln(w, "Highest scores by code length 🏆"); err != nil {
		return err
	}
	tbl := newTable(
		column{title: "Length", right: true},
		column{title: "Games", right: true},
		column{title: "Best", right: true},
		column{title: "Average", right: true},
	)
	for _, length := range lengths {
		rec, _ := h.Get(length)
		tbl.add(
			strconv.Itoa(length),
			strconv.Itoa(rec.Games),
			strconv.Itoa(rec.Best),
			history.FormatAverage(rec.Average),
		)
	}
	return tbl.write(w)
}
