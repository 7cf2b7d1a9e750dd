package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetScoreValid(t *testing.T) {
	testCases := []struct {
		games1, games2 int
		valid          bool
	}{
		{6, 0, true},
		{6, 3, true},
		{6, 4, true},
		{0, 6, true},
		{7, 5, true},
		{7, 6, true},
		{6, 7, true},
		{5, 7, true},

		{6, 5, false}, // six must win by two
		{5, 6, false},
		{7, 4, false}, // seven only after 5-5 or a tiebreak
		{7, 7, false},
		{8, 6, false}, // no advantage sets past seven
		{6, 6, false},
		{3, 2, false},
		{0, 0, false},
		{-1, 6, false},
		{6, -2, false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d-%d", tc.games1, tc.games2), func(t *testing.T) {
			s := SetScore{Games1: tc.games1, Games2: tc.games2}
			assert.Equal(t, tc.valid, s.Valid())
		})
	}
}

func TestSetScoreWinner(t *testing.T) {
	assert.Equal(t, 1, SetScore{Games1: 6, Games2: 3}.Winner())
	assert.Equal(t, 2, SetScore{Games1: 6, Games2: 7}.Winner())
	assert.Equal(t, 0, SetScore{Games1: 6, Games2: 6}.Winner())
}

func TestFormatSets(t *testing.T) {
	sets := []SetScore{
		{Games1: 6, Games2: 3},
		{Games1: 4, Games2: 6},
		{Games1: 7, Games2: 6},
	}
	assert.Equal(t, "6-3,4-6,7-6", FormatSets(sets))
	assert.Equal(t, "", FormatSets(nil))
}

func TestRoundName(t *testing.T) {
	testCases := []struct {
		teamCount int
		expected  string
	}{
		{2, "final"},
		{4, "semifinals"},
		{8, "quarterfinals"},
		{16, "round of 16"},
		{32, "round of 32"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, RoundName(tc.teamCount))
	}
}
