package brackets

import (
	"fmt"
	"testing"

	"github.com/padelgrid/tournament-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolTeams(n int) []models.Team {
	teams := make([]models.Team, n)
	for i := range teams {
		teams[i] = models.Team{ID: i + 1, Name: fmt.Sprintf("Team %c", 'A'+i)}
	}
	return teams
}

func TestMissingPairingsCount(t *testing.T) {
	testCases := []struct {
		teams    int
		expected int
	}{
		{teams: 0, expected: 0},
		{teams: 1, expected: 0},
		{teams: 2, expected: 1},
		{teams: 3, expected: 3},
		{teams: 4, expected: 6},
		{teams: 5, expected: 10},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d teams", tc.teams), func(t *testing.T) {
			pairings := MissingPairings(poolTeams(tc.teams), nil)
			assert.Len(t, pairings, tc.expected)
		})
	}
}

func TestMissingPairingsEachPairOnce(t *testing.T) {
	pairings := MissingPairings(poolTeams(5), nil)

	seen := make(map[[2]int]bool)
	for _, p := range pairings {
		require.NotEqual(t, p.TeamAID, p.TeamBID)
		key := [2]int{p.TeamAID, p.TeamBID}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		assert.False(t, seen[key], "pair %v generated twice", key)
		seen[key] = true
	}
}

func TestMissingPairingsSkipsExisting(t *testing.T) {
	teams := poolTeams(4)
	existing := []*models.PoolMatch{
		{TeamAID: 1, TeamBID: 2},
		// Reversed orientation still counts as played.
		{TeamAID: 3, TeamBID: 1},
	}

	pairings := MissingPairings(teams, existing)
	assert.Len(t, pairings, 4)
	for _, p := range pairings {
		assert.False(t, p.TeamAID == 1 && p.TeamBID == 2)
		assert.False(t, p.TeamAID == 1 && p.TeamBID == 3)
	}
}

func TestMissingPairingsIdempotent(t *testing.T) {
	teams := poolTeams(4)

	all := MissingPairings(teams, nil)
	require.Len(t, all, 6)

	created := make([]*models.PoolMatch, 0, len(all))
	for _, p := range all {
		created = append(created, &models.PoolMatch{TeamAID: p.TeamAID, TeamBID: p.TeamBID})
	}

	assert.Empty(t, MissingPairings(teams, created))
}
