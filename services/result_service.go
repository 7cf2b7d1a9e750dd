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

const maxSetsPerMatch = 5

type ResultService interface {
	// RecordPoolMatchResult stores a finished pool match. Drawn results
	// (equal sets won) are allowed in pools.
	RecordPoolMatchResult(ctx context.Context, matchID int, sets []models.SetScore) error
	// RecordBracketMatchResult stores a bracket match result and advances
	// the winner into its slot of the next match. Draws are rejected.
	RecordBracketMatchResult(ctx context.Context, matchID int, sets []models.SetScore) error
	// OverrideBracketSlot places a team into one slot of an undecided
	// bracket match, for walkovers and manual fixes.
	OverrideBracketSlot(ctx context.Context, matchID, slot, teamID int) error
}

type resultService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	poolMatchRepo  repositories.PoolMatchRepository
	bracketRepo    repositories.BracketRepository
	hub            *brackets.Hub
}

func NewResultService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	poolMatchRepo repositories.PoolMatchRepository,
	bracketRepo repositories.BracketRepository,
	hub *brackets.Hub,
) ResultService {
	return &resultService{
		db:             db,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		poolMatchRepo:  poolMatchRepo,
		bracketRepo:    bracketRepo,
		hub:            hub,
	}
}

func validateSets(sets []models.SetScore) error {
	if len(sets) == 0 || len(sets) > maxSetsPerMatch {
		return fmt.Errorf("%w: got %d", ErrInvalidSetCount, len(sets))
	}
	for i, set := range sets {
		if !set.Valid() {
			return fmt.Errorf("%w: set %d is %d-%d", ErrInvalidSetScore, i+1, set.Games1, set.Games2)
		}
	}
	return nil
}

func (s *resultService) RecordPoolMatchResult(ctx context.Context, matchID int, sets []models.SetScore) error {
	if err := validateSets(sets); err != nil {
		return err
	}

	match, err := s.poolMatchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrPoolMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to load pool match %d: %w", matchID, err)
	}

	var setsA, setsB, gamesA, gamesB int
	for _, set := range sets {
		gamesA += set.Games1
		gamesB += set.Games2
		switch set.Winner() {
		case 1:
			setsA++
		case 2:
			setsB++
		}
	}

	score := models.FormatSets(sets)
	match.Score = &score
	match.SetsA = setsA
	match.SetsB = setsB
	match.GamesA = gamesA
	match.GamesB = gamesB
	match.Status = models.PoolMatchFinished
	match.WinnerTeamID = nil
	if setsA > setsB {
		match.WinnerTeamID = &match.TeamAID
	} else if setsB > setsA {
		match.WinnerTeamID = &match.TeamBID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tournamentRepo.LockForUpdate(ctx, tx, match.TournamentID); err != nil {
		return err
	}
	if err := s.poolMatchRepo.UpdateResult(ctx, tx, match); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit pool match result: %w", err)
	}

	s.hub.BroadcastToRoom(brackets.TournamentRoom(match.TournamentID), brackets.WebSocketMessage{
		Type:    brackets.EventStandingsUpdated,
		Payload: map[string]interface{}{"match_id": match.ID, "pool_id": match.PoolID},
	})
	return nil
}

func (s *resultService) RecordBracketMatchResult(ctx context.Context, matchID int, sets []models.SetScore) error {
	if err := validateSets(sets); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := s.recordBracketResult(ctx, tx, matchID, sets)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bracket match result: %w", err)
	}

	s.hub.BroadcastToRoom(brackets.TournamentRoom(result.tournamentID), brackets.WebSocketMessage{
		Type:    brackets.EventMatchUpdated,
		Payload: map[string]interface{}{"match_id": matchID, "winner_team_id": result.winnerTeamID},
	})
	return nil
}

type bracketResult struct {
	tournamentID int
	winnerTeamID int
}

// recordBracketResult writes the winner, replaces the set rows and
// advances the winner over the forward link. The tournament lock is taken
// before any state check, so the match state it validates cannot change
// under a concurrent recording.
func (s *resultService) recordBracketResult(ctx context.Context, exec repositories.SQLExecutor, matchID int, sets []models.SetScore) (*bracketResult, error) {
	match, err := s.bracketRepo.GetMatch(ctx, exec, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load bracket match %d: %w", matchID, err)
	}
	round, err := s.bracketRepo.GetRound(ctx, match.RoundID)
	if err != nil {
		return nil, fmt.Errorf("failed to load round %d: %w", match.RoundID, err)
	}
	if err := s.tournamentRepo.LockForUpdate(ctx, exec, round.TournamentID); err != nil {
		return nil, err
	}

	// Re-read under the lock: the first read only located the tournament.
	match, err = s.bracketRepo.GetMatch(ctx, exec, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bracket match %d: %w", matchID, err)
	}
	if !match.Ready() {
		return nil, ErrSlotsNotDefined
	}

	var sets1, sets2 int
	for _, set := range sets {
		switch set.Winner() {
		case 1:
			sets1++
		case 2:
			sets2++
		}
	}
	if sets1 == sets2 {
		return nil, ErrDrawnBracketMatch
	}

	// A decided match may be corrected only while the next round has not
	// used its winner yet.
	if match.WinnerTeamID != nil && match.NextMatchID != nil {
		next, err := s.bracketRepo.GetMatch(ctx, exec, *match.NextMatchID)
		if err != nil {
			return nil, fmt.Errorf("failed to load next match %d: %w", *match.NextMatchID, err)
		}
		if next.WinnerTeamID != nil {
			return nil, ErrMatchAlreadyDecided
		}
	}

	winnerID := *match.Team1ID
	if sets2 > sets1 {
		winnerID = *match.Team2ID
	}

	if err := s.bracketRepo.UpdateWinner(ctx, exec, matchID, winnerID, models.BracketMatchCompleted); err != nil {
		return nil, err
	}
	if err := s.bracketRepo.ReplaceSets(ctx, exec, matchID, sets); err != nil {
		return nil, err
	}
	if match.NextMatchID != nil && match.NextMatchSlot != nil {
		if err := s.bracketRepo.UpdateSlot(ctx, exec, *match.NextMatchID, *match.NextMatchSlot, winnerID); err != nil {
			return nil, err
		}
	}
	return &bracketResult{tournamentID: round.TournamentID, winnerTeamID: winnerID}, nil
}

func (s *resultService) OverrideBracketSlot(ctx context.Context, matchID, slot, teamID int) error {
	if slot != 1 && slot != 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidSlot, slot)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tournamentID, err := s.overrideBracketSlot(ctx, tx, matchID, slot, teamID)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit slot override: %w", err)
	}

	s.hub.BroadcastToRoom(brackets.TournamentRoom(tournamentID), brackets.WebSocketMessage{
		Type:    brackets.EventMatchUpdated,
		Payload: map[string]interface{}{"match_id": matchID, "slot": slot, "team_id": teamID},
	})
	return nil
}

func (s *resultService) overrideBracketSlot(ctx context.Context, exec repositories.SQLExecutor, matchID, slot, teamID int) (int, error) {
	match, err := s.bracketRepo.GetMatch(ctx, exec, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketMatchNotFound) {
			return 0, ErrMatchNotFound
		}
		return 0, fmt.Errorf("failed to load bracket match %d: %w", matchID, err)
	}
	round, err := s.bracketRepo.GetRound(ctx, match.RoundID)
	if err != nil {
		return 0, fmt.Errorf("failed to load round %d: %w", match.RoundID, err)
	}
	if err := s.tournamentRepo.LockForUpdate(ctx, exec, round.TournamentID); err != nil {
		return 0, err
	}

	match, err = s.bracketRepo.GetMatch(ctx, exec, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to load bracket match %d: %w", matchID, err)
	}
	if match.WinnerTeamID != nil {
		return 0, ErrMatchAlreadyDecided
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return 0, ErrTeamNotFound
		}
		return 0, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}
	if team.TournamentID != round.TournamentID {
		return 0, ErrTeamWrongTournament
	}

	if err := s.bracketRepo.UpdateSlot(ctx, exec, matchID, slot, teamID); err != nil {
		return 0, err
	}
	return round.TournamentID, nil
}
