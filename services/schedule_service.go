package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/padelgrid/tournament-system/brackets"
	"github.com/padelgrid/tournament-system/models"
	"github.com/padelgrid/tournament-system/repositories"
)

type ScheduleService interface {
	// GeneratePoolMatches creates the missing round-robin fixtures for
	// every pool of the tournament. Pairs that already exist are skipped
	// silently, so the operation is idempotent. Returns the number of
	// matches created.
	GeneratePoolMatches(ctx context.Context, tournamentID int) (int, error)
}

type scheduleService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	poolRepo       repositories.PoolRepository
	poolMatchRepo  repositories.PoolMatchRepository
}

func NewScheduleService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	poolRepo repositories.PoolRepository,
	poolMatchRepo repositories.PoolMatchRepository,
) ScheduleService {
	return &scheduleService{
		db:             db,
		tournamentRepo: tournamentRepo,
		poolRepo:       poolRepo,
		poolMatchRepo:  poolMatchRepo,
	}
}

func (s *scheduleService) GeneratePoolMatches(ctx context.Context, tournamentID int) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	created, err := s.generatePoolMatches(ctx, tx, tournamentID)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit pool match generation: %w", err)
	}
	return created, nil
}

// generatePoolMatches plans and inserts the missing pairings with the
// tournament lock held. Planning before the lock would let two concurrent
// generations compute the same missing set and insert it twice.
func (s *scheduleService) generatePoolMatches(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	if err := s.tournamentRepo.LockForUpdate(ctx, exec, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return 0, ErrTournamentNotFound
		}
		return 0, err
	}

	pools, err := s.poolRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to list pools of tournament %d: %w", tournamentID, err)
	}

	created := 0
	for _, pool := range pools {
		poolID := pool.ID
		teams, err := s.poolRepo.ListTeams(ctx, poolID)
		if err != nil {
			return 0, fmt.Errorf("failed to list teams of pool %d: %w", poolID, err)
		}
		existing, err := s.poolMatchRepo.ListByPool(ctx, poolID)
		if err != nil {
			return 0, fmt.Errorf("failed to list matches of pool %d: %w", poolID, err)
		}
		for _, pairing := range brackets.MissingPairings(teams, existing) {
			match := &models.PoolMatch{
				TournamentID: tournamentID,
				PoolID:       &poolID,
				TeamAID:      pairing.TeamAID,
				TeamBID:      pairing.TeamBID,
				Status:       models.PoolMatchUpcoming,
			}
			if err := s.poolMatchRepo.Create(ctx, exec, match); err != nil {
				return 0, fmt.Errorf("failed to create pool match %d vs %d: %w", pairing.TeamAID, pairing.TeamBID, err)
			}
			created++
		}
	}
	return created, nil
}
