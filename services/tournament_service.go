package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/padelgrid/tournament-system/brackets"
	"github.com/padelgrid/tournament-system/models"
	"github.com/padelgrid/tournament-system/repositories"
	"golang.org/x/sync/errgroup"
)

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, organizerID *int, status *models.TournamentStatus) ([]*models.Tournament, error)
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error
	// GetFullView loads the tournament with teams, pools, pool matches
	// and both brackets attached.
	GetFullView(ctx context.Context, id int) (*models.Tournament, error)
}

type CreateTournamentInput struct {
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	Location       *string   `json:"location"`
	OrganizerID    int       `json:"-"`
	QualifierCount int       `json:"qualifier_count"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	poolRepo       repositories.PoolRepository
	poolMatchRepo  repositories.PoolMatchRepository
	bracketService BracketService
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	poolRepo repositories.PoolRepository,
	poolMatchRepo repositories.PoolMatchRepository,
	bracketService BracketService,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		poolRepo:       poolRepo,
		poolMatchRepo:  poolMatchRepo,
		bracketService: bracketService,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if input.QualifierCount < 2 || !brackets.IsPowerOfTwo(input.QualifierCount) {
		return nil, fmt.Errorf("%w: got %d", ErrQualifierCountInvalid, input.QualifierCount)
	}
	if !input.EndDate.IsZero() && input.EndDate.Before(input.StartDate) {
		return nil, ErrTournamentInvalidDateRange
	}

	tournament := &models.Tournament{
		Name:           name,
		Description:    input.Description,
		Location:       input.Location,
		OrganizerID:    input.OrganizerID,
		Status:         models.StatusRegistration,
		QualifierCount: input.QualifierCount,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, organizerID *int, status *models.TournamentStatus) ([]*models.Tournament, error) {
	return s.tournamentRepo.List(ctx, organizerID, status)
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	switch status {
	case models.StatusSoon, models.StatusRegistration, models.StatusActive, models.StatusCompleted, models.StatusCanceled:
	default:
		return fmt.Errorf("unknown tournament status %q", status)
	}
	err := s.tournamentRepo.UpdateStatus(ctx, nil, id, status)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to update tournament %d status: %w", id, err)
	}
	return nil
}

func (s *tournamentService) GetFullView(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		teams, err := s.teamRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch teams of tournament %d: %w", id, err)
		}
		list := make([]models.Team, 0, len(teams))
		for _, t := range teams {
			list = append(list, *t)
		}
		tournament.Teams = list
		return nil
	})

	g.Go(func() error {
		pools, err := s.poolRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch pools of tournament %d: %w", id, err)
		}
		list := make([]models.Pool, 0, len(pools))
		for _, pool := range pools {
			teams, err := s.poolRepo.ListTeams(gCtx, pool.ID)
			if err != nil {
				return fmt.Errorf("failed to fetch teams of pool %d: %w", pool.ID, err)
			}
			pool.Teams = teams
			list = append(list, *pool)
		}
		tournament.Pools = list
		return nil
	})

	g.Go(func() error {
		matches, err := s.poolMatchRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch pool matches of tournament %d: %w", id, err)
		}
		list := make([]models.PoolMatch, 0, len(matches))
		for _, m := range matches {
			list = append(list, *m)
		}
		tournament.PoolMatches = list
		return nil
	})

	g.Go(func() error {
		for _, kind := range []models.BracketKind{models.BracketMain, models.BracketConsolation} {
			rounds, err := s.bracketService.GetBracket(gCtx, id, kind)
			if err != nil {
				return fmt.Errorf("failed to fetch %s bracket of tournament %d: %w", kind, id, err)
			}
			for _, round := range rounds {
				tournament.Brackets = append(tournament.Brackets, *round)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tournament, nil
}
