package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/padelgrid/tournament-system/brackets"
	"github.com/padelgrid/tournament-system/models"
	"github.com/padelgrid/tournament-system/repositories"
)

type BracketService interface {
	// BuildMainBracket seeds the tournament's qualifiers into a fresh
	// main bracket. Fails with ErrBracketAlreadyExists when one exists.
	BuildMainBracket(ctx context.Context, tournamentID, qualifierCount int) error
	// BuildConsolationBracket builds the secondary bracket from the teams
	// that did not reach round 1 of the main bracket.
	BuildConsolationBracket(ctx context.Context, tournamentID int) error
	// Regenerate drops every round, match and set of one bracket kind and
	// rebuilds it inside a single transaction.
	Regenerate(ctx context.Context, tournamentID int, kind models.BracketKind) error
	// GetBracket returns the rounds of one kind with matches and sets
	// attached, ordered by round then match number.
	GetBracket(ctx context.Context, tournamentID int, kind models.BracketKind) ([]*models.BracketRound, error)
}

type bracketService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	bracketRepo    repositories.BracketRepository
	seedingService SeedingService
	hub            *brackets.Hub
}

func NewBracketService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	bracketRepo repositories.BracketRepository,
	seedingService SeedingService,
	hub *brackets.Hub,
) BracketService {
	return &bracketService{
		db:             db,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		bracketRepo:    bracketRepo,
		seedingService: seedingService,
		hub:            hub,
	}
}

func (s *bracketService) BuildMainBracket(ctx context.Context, tournamentID, qualifierCount int) error {
	if qualifierCount < 2 || !brackets.IsPowerOfTwo(qualifierCount) {
		return fmt.Errorf("%w: got %d", ErrQualifierCountInvalid, qualifierCount)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.buildBracket(ctx, tx, tournamentID, models.BracketMain, qualifierCount); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit main bracket: %w", err)
	}

	s.broadcastBracket(tournamentID, models.BracketMain)
	return nil
}

func (s *bracketService) BuildConsolationBracket(ctx context.Context, tournamentID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.buildBracket(ctx, tx, tournamentID, models.BracketConsolation, 0); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit consolation bracket: %w", err)
	}

	s.broadcastBracket(tournamentID, models.BracketConsolation)
	return nil
}

func (s *bracketService) Regenerate(ctx context.Context, tournamentID int, kind models.BracketKind) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.regenerateBracket(ctx, tx, tournamentID, kind); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bracket regeneration: %w", err)
	}

	s.broadcastBracket(tournamentID, kind)
	return nil
}

// buildBracket creates a fresh bracket of one kind. The tournament lock
// is taken before the existence check and the skeleton reads; planning
// from a pre-lock snapshot would let two concurrent builds both pass the
// check and both insert.
func (s *bracketService) buildBracket(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, kind models.BracketKind, qualifierCount int) error {
	if err := s.tournamentRepo.LockForUpdate(ctx, exec, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}

	existing, err := s.bracketRepo.ListRounds(ctx, tournamentID, kind)
	if err != nil {
		return fmt.Errorf("failed to check for existing %s bracket: %w", kind, err)
	}
	if len(existing) > 0 {
		return ErrBracketAlreadyExists
	}

	skeleton, err := s.skeletonFor(ctx, tournamentID, kind, qualifierCount)
	if err != nil {
		return err
	}
	return s.persistSkeleton(ctx, exec, tournamentID, kind, skeleton)
}

// regenerateBracket drops and rebuilds one bracket kind. Teardown and
// rebuild run under the same tournament lock: a result submitted against
// a match of this kind either lands before the lock or sees the new
// bracket, never a half-deleted one.
func (s *bracketService) regenerateBracket(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, kind models.BracketKind) error {
	if err := s.tournamentRepo.LockForUpdate(ctx, exec, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}

	qualifierCount := 0
	if kind == models.BracketMain {
		tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
		}
		qualifierCount = tournament.QualifierCount
	}

	skeleton, err := s.skeletonFor(ctx, tournamentID, kind, qualifierCount)
	if err != nil {
		return err
	}
	if err := s.bracketRepo.DeleteByKind(ctx, exec, tournamentID, kind); err != nil {
		return err
	}
	return s.persistSkeleton(ctx, exec, tournamentID, kind, skeleton)
}

func (s *bracketService) skeletonFor(ctx context.Context, tournamentID int, kind models.BracketKind, qualifierCount int) (*brackets.Skeleton, error) {
	switch kind {
	case models.BracketMain:
		return s.mainSkeleton(ctx, tournamentID, qualifierCount)
	case models.BracketConsolation:
		return s.consolationSkeleton(ctx, tournamentID)
	default:
		return nil, fmt.Errorf("unknown bracket kind %q", kind)
	}
}

func (s *bracketService) GetBracket(ctx context.Context, tournamentID int, kind models.BracketKind) ([]*models.BracketRound, error) {
	rounds, err := s.bracketRepo.ListRounds(ctx, tournamentID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s bracket rounds: %w", kind, err)
	}
	for _, round := range rounds {
		matches, err := s.bracketRepo.ListMatchesByRound(ctx, round.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list matches of round %d: %w", round.ID, err)
		}
		round.Matches = make([]models.BracketMatch, 0, len(matches))
		for _, match := range matches {
			sets, err := s.bracketRepo.ListSetsByMatch(ctx, match.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list sets of match %d: %w", match.ID, err)
			}
			match.Sets = sets
			round.Matches = append(round.Matches, *match)
		}
	}
	return rounds, nil
}

// mainSkeleton runs qualification and builds the seeded skeleton without
// touching the store.
func (s *bracketService) mainSkeleton(ctx context.Context, tournamentID, qualifierCount int) (*brackets.Skeleton, error) {
	seeds, err := s.seedingService.Qualifiers(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(seeds) != qualifierCount {
		return nil, fmt.Errorf("%w: seeding produced %d qualifiers for a bracket of %d",
			ErrQualifierCountInvalid, len(seeds), qualifierCount)
	}

	entries := make([]brackets.Entry, len(seeds))
	for i, seed := range seeds {
		entries[i] = brackets.Entry{TeamID: seed.TeamID, Seed: seed.Seed}
	}
	skeleton, err := brackets.Build(entries, true)
	if err != nil {
		return nil, fmt.Errorf("failed to build main bracket skeleton: %w", err)
	}
	return skeleton, nil
}

// consolationSkeleton picks the non-qualified teams (everyone absent from
// round 1 of the main bracket), takes the largest of 16/8/4 that fits and
// pairs them unseeded in alphabetical order.
func (s *bracketService) consolationSkeleton(ctx context.Context, tournamentID int) (*brackets.Skeleton, error) {
	mainRounds, err := s.bracketRepo.ListRounds(ctx, tournamentID, models.BracketMain)
	if err != nil {
		return nil, fmt.Errorf("failed to list main bracket rounds: %w", err)
	}
	if len(mainRounds) == 0 {
		return nil, ErrBracketNotFound
	}
	firstRound, err := s.bracketRepo.ListMatchesByRound(ctx, mainRounds[0].ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list first-round matches: %w", err)
	}

	qualified := make(map[int]bool)
	for _, m := range firstRound {
		if m.Team1ID != nil {
			qualified[*m.Team1ID] = true
		}
		if m.Team2ID != nil {
			qualified[*m.Team2ID] = true
		}
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of tournament %d: %w", tournamentID, err)
	}

	eliminated := make([]*models.Team, 0, len(teams))
	for _, team := range teams {
		if !qualified[team.ID] {
			eliminated = append(eliminated, team)
		}
	}
	sort.Slice(eliminated, func(i, j int) bool {
		return eliminated[i].Name < eliminated[j].Name
	})

	size := brackets.ConsolationSize(len(eliminated))
	if size == 0 {
		return nil, ErrNotEnoughEliminated
	}

	entries := make([]brackets.Entry, size)
	for i := 0; i < size; i++ {
		entries[i] = brackets.Entry{TeamID: eliminated[i].ID}
	}
	skeleton, err := brackets.Build(entries, false)
	if err != nil {
		return nil, fmt.Errorf("failed to build consolation skeleton: %w", err)
	}
	return skeleton, nil
}

// persistSkeleton writes rounds and matches in two passes: all rows are
// created first, then every non-final match is linked to the database id
// of the match its winner advances into.
func (s *bracketService) persistSkeleton(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, kind models.BracketKind, skeleton *brackets.Skeleton) error {
	type matchKey struct{ round, number int }
	dbIDs := make(map[matchKey]int)

	for _, round := range skeleton.Rounds {
		dbRound := &models.BracketRound{
			TournamentID: tournamentID,
			Kind:         kind,
			Number:       round.Number,
			Name:         round.Name,
		}
		if err := s.bracketRepo.CreateRound(ctx, exec, dbRound); err != nil {
			return err
		}
		for _, m := range round.Matches {
			dbMatch := &models.BracketMatch{
				RoundID: dbRound.ID,
				Number:  m.Number,
				Team1ID: m.Team1ID,
				Team2ID: m.Team2ID,
				Seed1:   m.Seed1,
				Seed2:   m.Seed2,
				Status:  models.BracketMatchUpcoming,
			}
			if err := s.bracketRepo.CreateMatch(ctx, exec, dbMatch); err != nil {
				return err
			}
			dbIDs[matchKey{m.Round, m.Number}] = dbMatch.ID
		}
	}

	for _, round := range skeleton.Rounds {
		for _, m := range round.Matches {
			if m.NextNumber == 0 {
				continue
			}
			nextID, ok := dbIDs[matchKey{m.Round + 1, m.NextNumber}]
			if !ok {
				return fmt.Errorf("internal error: missing target match R%dM%d", m.Round+1, m.NextNumber)
			}
			slot := m.NextSlot
			currentID := dbIDs[matchKey{m.Round, m.Number}]
			if err := s.bracketRepo.UpdateNextMatchInfo(ctx, exec, currentID, &nextID, &slot); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *bracketService) broadcastBracket(tournamentID int, kind models.BracketKind) {
	s.hub.BroadcastToRoom(brackets.TournamentRoom(tournamentID), brackets.WebSocketMessage{
		Type:    brackets.EventBracketUpdated,
		Payload: map[string]interface{}{"tournament_id": tournamentID, "kind": kind},
	})
}
