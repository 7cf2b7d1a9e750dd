package services

import (
	"context"
	"testing"

	"github.com/padelgrid/tournament-system/models"
	"github.com/padelgrid/tournament-system/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callLog records the order of repository calls across fakes.
type callLog struct {
	calls []string
}

type lockLoggingTournamentRepo struct {
	*fakeTournamentRepo
	log *callLog
}

func (r *lockLoggingTournamentRepo) LockForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.log.calls = append(r.log.calls, "lock")
	return r.fakeTournamentRepo.LockForUpdate(ctx, exec, id)
}

type readLoggingPoolRepo struct {
	*fakePoolRepo
	log *callLog
}

func (r *readLoggingPoolRepo) ListTeams(ctx context.Context, poolID int) ([]models.Team, error) {
	r.log.calls = append(r.log.calls, "list_teams")
	return r.fakePoolRepo.ListTeams(ctx, poolID)
}

func scheduleFixture() (*scheduleService, *fakePoolMatchRepo, *callLog) {
	log := &callLog{}
	tournamentRepo := &lockLoggingTournamentRepo{
		fakeTournamentRepo: newFakeTournamentRepo(&models.Tournament{ID: 1, Name: "City Open"}),
		log:                log,
	}
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
		models.Team{ID: 204, TournamentID: 1, Name: "Gulls"},
	)
	matchRepo := &fakePoolMatchRepo{}
	service := &scheduleService{
		tournamentRepo: tournamentRepo,
		poolRepo:       &readLoggingPoolRepo{fakePoolRepo: poolRepo, log: log},
		poolMatchRepo:  matchRepo,
	}
	return service, matchRepo, log
}

func TestGeneratePoolMatchesCreatesRoundRobin(t *testing.T) {
	ctx := context.Background()
	service, matchRepo, _ := scheduleFixture()

	created, err := service.generatePoolMatches(ctx, nil, 1)
	require.NoError(t, err)
	// 3 teams play 3 matches, 4 teams play 6.
	assert.Equal(t, 9, created)
	assert.Len(t, matchRepo.matches, 9)

	for _, m := range matchRepo.matches {
		assert.Equal(t, 1, m.TournamentID)
		assert.Equal(t, models.PoolMatchUpcoming, m.Status)
		require.NotNil(t, m.PoolID)
	}
}

func TestGeneratePoolMatchesIdempotent(t *testing.T) {
	ctx := context.Background()
	service, matchRepo, _ := scheduleFixture()

	_, err := service.generatePoolMatches(ctx, nil, 1)
	require.NoError(t, err)

	created, err := service.generatePoolMatches(ctx, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, matchRepo.matches, 9)
}

// Pairings must be planned after the tournament lock is held; a plan
// computed from a pre-lock snapshot would be inserted twice by two
// concurrent generations.
func TestGeneratePoolMatchesLocksBeforePlanning(t *testing.T) {
	ctx := context.Background()
	service, _, log := scheduleFixture()

	_, err := service.generatePoolMatches(ctx, nil, 1)
	require.NoError(t, err)

	require.NotEmpty(t, log.calls)
	assert.Equal(t, "lock", log.calls[0])
	assert.Contains(t, log.calls, "list_teams")
}

func TestGeneratePoolMatchesUnknownTournament(t *testing.T) {
	service, _, _ := scheduleFixture()
	_, err := service.generatePoolMatches(context.Background(), nil, 42)
	require.ErrorIs(t, err, ErrTournamentNotFound)
}
