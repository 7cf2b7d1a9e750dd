package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/padelgrid/tournament-system/models"
	"github.com/padelgrid/tournament-system/repositories"
)

type StandingsService interface {
	// ComputePoolStandings recomputes the pool table from its finished
	// matches; standings are never stored.
	ComputePoolStandings(ctx context.Context, poolID int) ([]models.PoolStanding, error)
}

type standingsService struct {
	poolRepo      repositories.PoolRepository
	poolMatchRepo repositories.PoolMatchRepository
}

func NewStandingsService(
	poolRepo repositories.PoolRepository,
	poolMatchRepo repositories.PoolMatchRepository,
) StandingsService {
	return &standingsService{
		poolRepo:      poolRepo,
		poolMatchRepo: poolMatchRepo,
	}
}

func (s *standingsService) ComputePoolStandings(ctx context.Context, poolID int) ([]models.PoolStanding, error) {
	teams, err := s.poolRepo.ListTeams(ctx, poolID)
	if err != nil {
		if errors.Is(err, repositories.ErrPoolNotFound) {
			return nil, ErrPoolNotFound
		}
		return nil, fmt.Errorf("failed to list teams of pool %d: %w", poolID, err)
	}

	matches, err := s.poolMatchRepo.ListByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of pool %d: %w", poolID, err)
	}

	return ComputeStandings(teams, matches), nil
}

// ComputeStandings builds the ranked standing list for one pool. A win is
// worth 2 points, a draw 1 each, a loss 0. Set and game aggregates come
// straight off the match rows. Matches that are not finished, or that
// carry no pool reference, do not contribute; a team with no finished
// matches gets a zero-valued standing.
func ComputeStandings(teams []models.Team, matches []*models.PoolMatch) []models.PoolStanding {
	byTeam := make(map[int]*models.PoolStanding, len(teams))
	for i := range teams {
		team := teams[i]
		byTeam[team.ID] = &models.PoolStanding{
			TeamID:   team.ID,
			TeamName: team.Name,
			Team:     &team,
		}
	}

	for _, m := range matches {
		if m.Status != models.PoolMatchFinished || m.PoolID == nil {
			continue
		}
		a, okA := byTeam[m.TeamAID]
		b, okB := byTeam[m.TeamBID]
		if !okA || !okB {
			continue
		}

		a.Played++
		b.Played++
		a.SetsFor += m.SetsA
		a.SetsAgainst += m.SetsB
		b.SetsFor += m.SetsB
		b.SetsAgainst += m.SetsA
		a.GamesFor += m.GamesA
		a.GamesAgainst += m.GamesB
		b.GamesFor += m.GamesB
		b.GamesAgainst += m.GamesA

		switch {
		case m.WinnerTeamID == nil:
			a.Draws++
			b.Draws++
			a.Points++
			b.Points++
		case *m.WinnerTeamID == m.TeamAID:
			a.Wins++
			b.Losses++
			a.Points += 2
		default:
			b.Wins++
			a.Losses++
			b.Points += 2
		}
	}

	standings := make([]models.PoolStanding, 0, len(byTeam))
	for _, st := range byTeam {
		st.SetDiff = st.SetsFor - st.SetsAgainst
		st.GameDiff = st.GamesFor - st.GamesAgainst
		standings = append(standings, *st)
	}

	sort.Slice(standings, func(i, j int) bool {
		return standings[i].Less(&standings[j])
	})
	return standings
}
