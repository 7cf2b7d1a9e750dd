package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/padelgrid/tournament-system/models"
	"github.com/padelgrid/tournament-system/repositories"
)

var ErrPoolNameRequired = errors.New("pool name is required")

type PoolService interface {
	Create(ctx context.Context, tournamentID int, name string, orderIndex int) (*models.Pool, error)
	GetByID(ctx context.Context, id int) (*models.Pool, error)
	// AddTeam assigns a team to a pool. The team has to belong to the
	// pool's tournament and may sit in one pool at most.
	AddTeam(ctx context.Context, poolID, teamID int) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Pool, error)
	ListMatches(ctx context.Context, poolID int) ([]*models.PoolMatch, error)
}

type poolService struct {
	poolRepo       repositories.PoolRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	poolMatchRepo  repositories.PoolMatchRepository
}

func NewPoolService(
	poolRepo repositories.PoolRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	poolMatchRepo repositories.PoolMatchRepository,
) PoolService {
	return &poolService{
		poolRepo:       poolRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		poolMatchRepo:  poolMatchRepo,
	}
}

func (s *poolService) Create(ctx context.Context, tournamentID int, name string, orderIndex int) (*models.Pool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPoolNameRequired
	}

	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}

	pool := &models.Pool{
		TournamentID: tournamentID,
		Name:         name,
		OrderIndex:   orderIndex,
	}
	if err := s.poolRepo.Create(ctx, pool); err != nil {
		if errors.Is(err, repositories.ErrPoolNameConflict) {
			return nil, ErrPoolNameConflict
		}
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return pool, nil
}

func (s *poolService) GetByID(ctx context.Context, id int) (*models.Pool, error) {
	pool, err := s.poolRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPoolNotFound) {
			return nil, ErrPoolNotFound
		}
		return nil, fmt.Errorf("failed to load pool %d: %w", id, err)
	}
	teams, err := s.poolRepo.ListTeams(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of pool %d: %w", id, err)
	}
	pool.Teams = teams
	return pool, nil
}

func (s *poolService) AddTeam(ctx context.Context, poolID, teamID int) error {
	pool, err := s.poolRepo.GetByID(ctx, poolID)
	if err != nil {
		if errors.Is(err, repositories.ErrPoolNotFound) {
			return ErrPoolNotFound
		}
		return fmt.Errorf("failed to load pool %d: %w", poolID, err)
	}
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to load team %d: %w", teamID, err)
	}
	if team.TournamentID != pool.TournamentID {
		return ErrTeamWrongTournament
	}

	if err := s.poolRepo.AddTeam(ctx, poolID, teamID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPoolMembershipConflict):
			return ErrTeamAlreadyInPool
		case errors.Is(err, repositories.ErrPoolTeamInvalid):
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to add team %d to pool %d: %w", teamID, poolID, err)
	}
	return nil
}

func (s *poolService) ListMatches(ctx context.Context, poolID int) ([]*models.PoolMatch, error) {
	if _, err := s.poolRepo.GetByID(ctx, poolID); err != nil {
		if errors.Is(err, repositories.ErrPoolNotFound) {
			return nil, ErrPoolNotFound
		}
		return nil, fmt.Errorf("failed to load pool %d: %w", poolID, err)
	}
	matches, err := s.poolMatchRepo.ListByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of pool %d: %w", poolID, err)
	}
	return matches, nil
}

func (s *poolService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Pool, error) {
	pools, err := s.poolRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools of tournament %d: %w", tournamentID, err)
	}
	for _, pool := range pools {
		teams, err := s.poolRepo.ListTeams(ctx, pool.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list teams of pool %d: %w", pool.ID, err)
		}
		pool.Teams = teams
	}
	return pools, nil
}
