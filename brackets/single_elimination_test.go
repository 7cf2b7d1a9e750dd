package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededEntries(n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{TeamID: 100 + i, Seed: i + 1}
	}
	return entries
}

func TestBuildRejectsBadSizes(t *testing.T) {
	for _, n := range []int{0, 1, 3, 6, 12} {
		t.Run(fmt.Sprintf("%d entries", n), func(t *testing.T) {
			_, err := Build(seededEntries(n), true)
			require.ErrorIs(t, err, ErrInvalidSize)
		})
	}
}

func TestBuildRejectsUnsortedSeeds(t *testing.T) {
	entries := seededEntries(4)
	entries[0], entries[1] = entries[1], entries[0]

	_, err := Build(entries, true)
	require.ErrorIs(t, err, ErrEntryCount)
}

func TestBuildRoundStructure(t *testing.T) {
	testCases := []struct {
		size       int
		rounds     int
		roundNames []string
	}{
		{size: 2, rounds: 1, roundNames: []string{"final"}},
		{size: 4, rounds: 2, roundNames: []string{"semifinals", "final"}},
		{size: 8, rounds: 3, roundNames: []string{"quarterfinals", "semifinals", "final"}},
		{size: 16, rounds: 4, roundNames: []string{"round of 16", "quarterfinals", "semifinals", "final"}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("size %d", tc.size), func(t *testing.T) {
			skeleton, err := Build(seededEntries(tc.size), true)
			require.NoError(t, err)
			require.Len(t, skeleton.Rounds, tc.rounds)

			expectedMatches := tc.size / 2
			for i, round := range skeleton.Rounds {
				assert.Equal(t, i+1, round.Number)
				assert.Equal(t, tc.roundNames[i], round.Name)
				assert.Len(t, round.Matches, expectedMatches)
				expectedMatches /= 2
			}
		})
	}
}

func TestBuildForwardLinks(t *testing.T) {
	skeleton, err := Build(seededEntries(16), true)
	require.NoError(t, err)

	for ri, round := range skeleton.Rounds {
		isFinal := ri == len(skeleton.Rounds)-1
		for _, m := range round.Matches {
			if isFinal {
				assert.Zero(t, m.NextNumber, "final must not have a forward link")
				continue
			}
			assert.Equal(t, (m.Number+1)/2, m.NextNumber)
			if m.Number%2 != 0 {
				assert.Equal(t, 1, m.NextSlot)
			} else {
				assert.Equal(t, 2, m.NextSlot)
			}
		}
	}

	// Every non-final match must feed a distinct slot: each next-round
	// slot receives exactly one winner.
	for ri := 0; ri < len(skeleton.Rounds)-1; ri++ {
		targets := make(map[[2]int]bool)
		for _, m := range skeleton.Rounds[ri].Matches {
			key := [2]int{m.NextNumber, m.NextSlot}
			assert.False(t, targets[key], "slot %v targeted twice in round %d", key, ri+1)
			targets[key] = true
		}
		assert.Len(t, targets, len(skeleton.Rounds[ri].Matches))
	}
}

func TestBuildSeededPlacement(t *testing.T) {
	skeleton, err := Build(seededEntries(8), true)
	require.NoError(t, err)

	first := skeleton.Rounds[0].Matches
	require.Len(t, first, 4)

	// SeedOrder(8) = 1,8,4,5,2,7,3,6
	expectedPairs := [][2]int{{1, 8}, {4, 5}, {2, 7}, {3, 6}}
	for i, m := range first {
		require.NotNil(t, m.Seed1)
		require.NotNil(t, m.Seed2)
		assert.Equal(t, expectedPairs[i][0], *m.Seed1)
		assert.Equal(t, expectedPairs[i][1], *m.Seed2)
		assert.Equal(t, 100+*m.Seed1-1, *m.Team1ID)
		assert.Equal(t, 100+*m.Seed2-1, *m.Team2ID)
	}

	// Later rounds start empty.
	for _, round := range skeleton.Rounds[1:] {
		for _, m := range round.Matches {
			assert.Nil(t, m.Team1ID)
			assert.Nil(t, m.Team2ID)
			assert.Nil(t, m.Seed1)
			assert.Nil(t, m.Seed2)
		}
	}
}

func TestBuildUnseededPlacement(t *testing.T) {
	entries := []Entry{{TeamID: 7}, {TeamID: 3}, {TeamID: 9}, {TeamID: 1}}
	skeleton, err := Build(entries, false)
	require.NoError(t, err)

	first := skeleton.Rounds[0].Matches
	require.Len(t, first, 2)
	assert.Equal(t, 7, *first[0].Team1ID)
	assert.Equal(t, 3, *first[0].Team2ID)
	assert.Equal(t, 9, *first[1].Team1ID)
	assert.Equal(t, 1, *first[1].Team2ID)
	assert.Nil(t, first[0].Seed1)
	assert.Nil(t, first[0].Seed2)
}
