package services

import (
	"context"
	"testing"

	"github.com/padelgrid/tournament-system/models"
	"github.com/padelgrid/tournament-system/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSets(t *testing.T) {
	testCases := []struct {
		name     string
		sets     []models.SetScore
		expected error
	}{
		{
			name:     "no sets",
			sets:     nil,
			expected: ErrInvalidSetCount,
		},
		{
			name: "too many sets",
			sets: []models.SetScore{
				{Games1: 6, Games2: 0}, {Games1: 6, Games2: 0}, {Games1: 6, Games2: 0},
				{Games1: 6, Games2: 0}, {Games1: 6, Games2: 0}, {Games1: 6, Games2: 0},
			},
			expected: ErrInvalidSetCount,
		},
		{
			name:     "invalid score",
			sets:     []models.SetScore{{Games1: 6, Games2: 5}},
			expected: ErrInvalidSetScore,
		},
		{
			name: "invalid score among valid ones",
			sets: []models.SetScore{
				{Games1: 6, Games2: 3},
				{Games1: 8, Games2: 6},
			},
			expected: ErrInvalidSetScore,
		},
		{
			name: "valid three setter",
			sets: []models.SetScore{
				{Games1: 6, Games2: 3},
				{Games1: 4, Games2: 6},
				{Games1: 7, Games2: 6},
			},
			expected: nil,
		},
		{
			name:     "valid single set",
			sets:     []models.SetScore{{Games1: 7, Games2: 5}},
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateSets(tc.sets)
			if tc.expected == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.expected)
			}
		})
	}
}

// bracketFixture builds a two-round bracket in memory: two semifinals
// feeding a final. Teams 101-104 occupy the semifinal slots.
type bracketFixture struct {
	service *resultService
	repo    *fakeBracketRepo
	semi1   int
	semi2   int
	final   int
}

func newBracketFixture(t *testing.T) *bracketFixture {
	t.Helper()
	ctx := context.Background()
	repo := newFakeBracketRepo()

	semis := &models.BracketRound{TournamentID: 1, Kind: models.BracketMain, Number: 1, Name: "semifinals"}
	final := &models.BracketRound{TournamentID: 1, Kind: models.BracketMain, Number: 2, Name: "final"}
	require.NoError(t, repo.CreateRound(ctx, nil, semis))
	require.NoError(t, repo.CreateRound(ctx, nil, final))

	finalMatch := &models.BracketMatch{RoundID: final.ID, Number: 1, Status: models.BracketMatchUpcoming}
	require.NoError(t, repo.CreateMatch(ctx, nil, finalMatch))

	semi1 := &models.BracketMatch{
		RoundID: semis.ID, Number: 1,
		Team1ID: utils.IntPtr(101), Team2ID: utils.IntPtr(102),
		NextMatchID: utils.IntPtr(finalMatch.ID), NextMatchSlot: utils.IntPtr(1),
		Status: models.BracketMatchUpcoming,
	}
	semi2 := &models.BracketMatch{
		RoundID: semis.ID, Number: 2,
		Team1ID: utils.IntPtr(103), Team2ID: utils.IntPtr(104),
		NextMatchID: utils.IntPtr(finalMatch.ID), NextMatchSlot: utils.IntPtr(2),
		Status: models.BracketMatchUpcoming,
	}
	require.NoError(t, repo.CreateMatch(ctx, nil, semi1))
	require.NoError(t, repo.CreateMatch(ctx, nil, semi2))

	tournamentRepo := newFakeTournamentRepo(&models.Tournament{ID: 1, Name: "City Open"})
	teamRepo := newFakeTeamRepo(
		&models.Team{ID: 101, TournamentID: 1, Name: "Aces"},
		&models.Team{ID: 102, TournamentID: 1, Name: "Bandits"},
		&models.Team{ID: 103, TournamentID: 1, Name: "Comets"},
		&models.Team{ID: 104, TournamentID: 1, Name: "Drakes"},
		&models.Team{ID: 999, TournamentID: 2, Name: "Outsiders"},
	)
	service := &resultService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		bracketRepo:    repo,
	}
	return &bracketFixture{
		service: service,
		repo:    repo,
		semi1:   semi1.ID,
		semi2:   semi2.ID,
		final:   finalMatch.ID,
	}
}

func straightSets() []models.SetScore {
	return []models.SetScore{{Games1: 6, Games2: 3}, {Games1: 6, Games2: 4}}
}

func reversedSets() []models.SetScore {
	return []models.SetScore{{Games1: 3, Games2: 6}, {Games1: 4, Games2: 6}}
}

func TestRecordBracketResultAdvancesWinner(t *testing.T) {
	ctx := context.Background()
	f := newBracketFixture(t)

	result, err := f.service.recordBracketResult(ctx, nil, f.semi1, straightSets())
	require.NoError(t, err)
	assert.Equal(t, 1, result.tournamentID)
	assert.Equal(t, 101, result.winnerTeamID)

	semi := f.repo.matches[f.semi1]
	require.NotNil(t, semi.WinnerTeamID)
	assert.Equal(t, 101, *semi.WinnerTeamID)
	assert.Equal(t, models.BracketMatchCompleted, semi.Status)
	assert.Len(t, f.repo.sets[f.semi1], 2)

	final := f.repo.matches[f.final]
	require.NotNil(t, final.Team1ID)
	assert.Equal(t, 101, *final.Team1ID)
	assert.Nil(t, final.Team2ID)
}

func TestRecordBracketResultRejectsDraw(t *testing.T) {
	ctx := context.Background()
	f := newBracketFixture(t)

	_, err := f.service.recordBracketResult(ctx, nil, f.semi1, []models.SetScore{
		{Games1: 6, Games2: 3},
		{Games1: 3, Games2: 6},
	})
	require.ErrorIs(t, err, ErrDrawnBracketMatch)
	assert.Nil(t, f.repo.matches[f.semi1].WinnerTeamID)
}

func TestRecordBracketResultRequiresBothSlots(t *testing.T) {
	ctx := context.Background()
	f := newBracketFixture(t)

	_, err := f.service.recordBracketResult(ctx, nil, f.final, straightSets())
	require.ErrorIs(t, err, ErrSlotsNotDefined)
}

func TestRecordBracketResultFinalHasNoForwardLink(t *testing.T) {
	ctx := context.Background()
	f := newBracketFixture(t)

	_, err := f.service.recordBracketResult(ctx, nil, f.semi1, straightSets())
	require.NoError(t, err)
	_, err = f.service.recordBracketResult(ctx, nil, f.semi2, reversedSets())
	require.NoError(t, err)

	result, err := f.service.recordBracketResult(ctx, nil, f.final, straightSets())
	require.NoError(t, err)
	assert.Equal(t, 101, result.winnerTeamID)

	final := f.repo.matches[f.final]
	require.NotNil(t, final.WinnerTeamID)
	assert.Equal(t, 101, *final.WinnerTeamID)
}

func TestRecordBracketResultCorrectionBeforeNextDecided(t *testing.T) {
	ctx := context.Background()
	f := newBracketFixture(t)

	_, err := f.service.recordBracketResult(ctx, nil, f.semi1, straightSets())
	require.NoError(t, err)

	// The final is still undecided, so the result may be corrected and
	// the corrected winner replaces the old one in the final's slot.
	result, err := f.service.recordBracketResult(ctx, nil, f.semi1, reversedSets())
	require.NoError(t, err)
	assert.Equal(t, 102, result.winnerTeamID)

	final := f.repo.matches[f.final]
	require.NotNil(t, final.Team1ID)
	assert.Equal(t, 102, *final.Team1ID)
}

func TestRecordBracketResultLockedOnceNextDecided(t *testing.T) {
	ctx := context.Background()
	f := newBracketFixture(t)

	_, err := f.service.recordBracketResult(ctx, nil, f.semi1, straightSets())
	require.NoError(t, err)
	_, err = f.service.recordBracketResult(ctx, nil, f.semi2, straightSets())
	require.NoError(t, err)
	_, err = f.service.recordBracketResult(ctx, nil, f.final, straightSets())
	require.NoError(t, err)

	_, err = f.service.recordBracketResult(ctx, nil, f.semi1, reversedSets())
	require.ErrorIs(t, err, ErrMatchAlreadyDecided)

	semi := f.repo.matches[f.semi1]
	require.NotNil(t, semi.WinnerTeamID)
	assert.Equal(t, 101, *semi.WinnerTeamID)
}

func TestRecordBracketResultUnknownMatch(t *testing.T) {
	f := newBracketFixture(t)
	_, err := f.service.recordBracketResult(context.Background(), nil, 4242, straightSets())
	require.ErrorIs(t, err, ErrMatchNotFound)
}

func TestOverrideBracketSlot(t *testing.T) {
	ctx := context.Background()
	f := newBracketFixture(t)

	tournamentID, err := f.service.overrideBracketSlot(ctx, nil, f.final, 2, 104)
	require.NoError(t, err)
	assert.Equal(t, 1, tournamentID)

	final := f.repo.matches[f.final]
	require.NotNil(t, final.Team2ID)
	assert.Equal(t, 104, *final.Team2ID)
}

func TestOverrideBracketSlotRejectsDecidedMatch(t *testing.T) {
	ctx := context.Background()
	f := newBracketFixture(t)

	_, err := f.service.recordBracketResult(ctx, nil, f.semi1, straightSets())
	require.NoError(t, err)

	_, err = f.service.overrideBracketSlot(ctx, nil, f.semi1, 2, 103)
	require.ErrorIs(t, err, ErrMatchAlreadyDecided)
}

func TestOverrideBracketSlotRejectsForeignTeam(t *testing.T) {
	f := newBracketFixture(t)
	_, err := f.service.overrideBracketSlot(context.Background(), nil, f.final, 1, 999)
	require.ErrorIs(t, err, ErrTeamWrongTournament)
}
