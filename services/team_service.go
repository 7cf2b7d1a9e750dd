package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/padelgrid/tournament-system/models"
	"github.com/padelgrid/tournament-system/repositories"
	"github.com/padelgrid/tournament-system/storage"
)

var allowedCrestTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

var ErrCrestTypeUnsupported = errors.New("unsupported crest content type")

type TeamService interface {
	Create(ctx context.Context, tournamentID int, name string) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
	SetSeeded(ctx context.Context, id int, seeded bool) error
	// UploadCrest stores the team crest image and records its object key.
	UploadCrest(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	uploader       storage.FileUploader
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		uploader:       uploader,
	}
}

// populateCrestURL derives the public URL from the stored object key.
func (s *teamService) populateCrestURL(team *models.Team) {
	if team == nil || team.CrestKey == nil || *team.CrestKey == "" || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.CrestKey)
	if url != "" {
		team.CrestURL = &url
	}
}

func (s *teamService) Create(ctx context.Context, tournamentID int, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}

	team := &models.Team{
		TournamentID: tournamentID,
		Name:         name,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamTournamentInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", id, err)
	}
	s.populateCrestURL(team)
	return team, nil
}

func (s *teamService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of tournament %d: %w", tournamentID, err)
	}
	for _, team := range teams {
		s.populateCrestURL(team)
	}
	return teams, nil
}

func (s *teamService) SetSeeded(ctx context.Context, id int, seeded bool) error {
	err := s.teamRepo.UpdateSeeded(ctx, id, seeded)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to update seeded flag of team %d: %w", id, err)
	}
	return nil
}

func (s *teamService) UploadCrest(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error) {
	ext, ok := allowedCrestTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCrestTypeUnsupported, contentType)
	}

	team, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldKey := team.CrestKey
	key := fmt.Sprintf("crests/team_%d.%s", id, ext)

	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest for team %d: %w", id, err)
	}
	if err := s.teamRepo.UpdateCrestKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store crest key of team %d: %w", id, err)
	}

	// Drop the previous object when the extension changed.
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	team.CrestKey = &result.Key
	team.CrestURL = &result.Location
	return team, nil
}
