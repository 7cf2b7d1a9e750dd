package services

import (
	"context"
	"testing"

	"github.com/padelgrid/tournament-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full qualification pipeline against in-memory repositories: two pools
// of three, finished round-robins, four qualifier slots.
func TestSeedingServiceQualifiers(t *testing.T) {
	ctx := context.Background()

	tournamentRepo := newFakeTournamentRepo(&models.Tournament{
		ID:             1,
		Name:           "City Open",
		QualifierCount: 4,
		Status:         models.StatusActive,
	})

	poolRepo := newFakePoolRepo()
	poolRepo.addPool(&models.Pool{ID: 10, TournamentID: 1, Name: "Pool A", OrderIndex: 1},
		models.Team{ID: 101, TournamentID: 1, Name: "Aces"},
		models.Team{ID: 102, TournamentID: 1, Name: "Bandits"},
		models.Team{ID: 103, TournamentID: 1, Name: "Comets"},
	)
	poolRepo.addPool(&models.Pool{ID: 20, TournamentID: 1, Name: "Pool B", OrderIndex: 2},
		models.Team{ID: 201, TournamentID: 1, Name: "Drakes"},
		models.Team{ID: 202, TournamentID: 1, Name: "Eagles"},
		models.Team{ID: 203, TournamentID: 1, Name: "Falcons"},
	)

	matchRepo := &fakePoolMatchRepo{}
	record := func(poolID, winner, loser int) {
		m := finishedMatch(poolID, winner, loser, 2, 0, 12, 4)
		m.TournamentID = 1
		require.NoError(t, matchRepo.Create(ctx, nil, m))
	}
	// Pool A: Aces > Bandits > Comets.
	record(10, 101, 102)
	record(10, 101, 103)
	record(10, 102, 103)
	// Pool B: Falcons > Drakes > Eagles.
	record(20, 203, 201)
	record(20, 203, 202)
	record(20, 201, 202)

	service := NewSeedingService(nil, tournamentRepo, poolRepo, matchRepo, nil, nil)

	seeds, err := service.Qualifiers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, seeds, 4)

	// Pool winners first, runners-up after; within a tier the standings
	// comparator falls back to name between equal records.
	assert.Equal(t, "Aces", seeds[0].TeamName)
	assert.Equal(t, "Falcons", seeds[1].TeamName)
	assert.Equal(t, "Bandits", seeds[2].TeamName)
	assert.Equal(t, "Drakes", seeds[3].TeamName)

	for i, seed := range seeds {
		assert.Equal(t, i+1, seed.Seed)
		assert.False(t, seed.Wildcard)
	}
	assert.Equal(t, 1, seeds[0].PoolRank)
	assert.Equal(t, 1, seeds[1].PoolRank)
	assert.Equal(t, 2, seeds[2].PoolRank)
	assert.Equal(t, 2, seeds[3].PoolRank)
}

func TestSeedingServiceQualifiersNoPools(t *testing.T) {
	tournamentRepo := newFakeTournamentRepo(&models.Tournament{ID: 1, QualifierCount: 4})
	service := NewSeedingService(nil, tournamentRepo, newFakePoolRepo(), &fakePoolMatchRepo{}, nil, nil)

	_, err := service.Qualifiers(context.Background(), 1)
	require.ErrorIs(t, err, ErrNoPoolsDefined)
}

func TestSeedingServiceQualifiersUnknownTournament(t *testing.T) {
	service := NewSeedingService(nil, newFakeTournamentRepo(), newFakePoolRepo(), &fakePoolMatchRepo{}, nil, nil)

	_, err := service.Qualifiers(context.Background(), 42)
	require.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestStandingsServiceComputePoolStandings(t *testing.T) {
	ctx := context.Background()

	poolRepo := newFakePoolRepo()
	poolRepo.addPool(&models.Pool{ID: 10, TournamentID: 1, Name: "Pool A", OrderIndex: 1},
		models.Team{ID: 1, Name: "Aces"},
		models.Team{ID: 2, Name: "Bandits"},
	)
	matchRepo := &fakePoolMatchRepo{}
	require.NoError(t, matchRepo.Create(ctx, nil, finishedMatch(10, 1, 2, 2, 1, 15, 12)))

	service := NewStandingsService(poolRepo, matchRepo)
	standings, err := service.ComputePoolStandings(ctx, 10)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, "Aces", standings[0].TeamName)
	assert.Equal(t, 2, standings[0].Points)
	assert.Equal(t, 1, standings[0].SetDiff)
	assert.Equal(t, 3, standings[0].GameDiff)
	assert.Equal(t, "Bandits", standings[1].TeamName)
	assert.Equal(t, 0, standings[1].Points)
}
