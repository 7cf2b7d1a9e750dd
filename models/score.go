package models

import (
	"fmt"
	"strings"
)

// SetScore is the game count of one set, side 1 vs side 2 (team A / team B
// for pool matches, slot 1 / slot 2 for bracket matches).
type SetScore struct {
	Games1 int `json:"games1"`
	Games2 int `json:"games2"`
}

// Valid applies the padel set rule: the higher score must reach 6 with a
// margin of at least two, or reach 7 with a margin of one or two (tiebreak
// set). 6-7 and 7-5 are valid, 6-5 and 8-6 are not.
func (s SetScore) Valid() bool {
	if s.Games1 < 0 || s.Games2 < 0 {
		return false
	}
	hi, lo := s.Games1, s.Games2
	if lo > hi {
		hi, lo = lo, hi
	}
	switch hi {
	case 6:
		return hi-lo >= 2
	case 7:
		return hi-lo == 1 || hi-lo == 2
	default:
		return false
	}
}

// Winner returns 1 or 2 for the side with the higher game count, 0 for an
// equal score.
func (s SetScore) Winner() int {
	switch {
	case s.Games1 > s.Games2:
		return 1
	case s.Games2 > s.Games1:
		return 2
	default:
		return 0
	}
}

// FormatSets renders a set list as "6-3,4-6,7-6".
func FormatSets(sets []SetScore) string {
	parts := make([]string, len(sets))
	for i, s := range sets {
		parts[i] = fmt.Sprintf("%d-%d", s.Games1, s.Games2)
	}
	return strings.Join(parts, ",")
}
