package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/padelgrid/tournament-system/models"
)

var (
	ErrBracketRoundNotFound   = errors.New("bracket round not found")
	ErrBracketMatchNotFound   = errors.New("bracket match not found")
	ErrBracketTeamInvalid     = errors.New("bracket match team conflict or invalid")
	ErrBracketRoundConflict   = errors.New("bracket round conflict")
	ErrBracketMatchRefInvalid = errors.New("bracket match forward link invalid")
)

type BracketRepository interface {
	CreateRound(ctx context.Context, exec SQLExecutor, round *models.BracketRound) error
	GetRound(ctx context.Context, id int) (*models.BracketRound, error)
	ListRounds(ctx context.Context, tournamentID int, kind models.BracketKind) ([]*models.BracketRound, error)

	CreateMatch(ctx context.Context, exec SQLExecutor, match *models.BracketMatch) error
	GetMatch(ctx context.Context, exec SQLExecutor, id int) (*models.BracketMatch, error)
	ListMatchesByRound(ctx context.Context, roundID int) ([]*models.BracketMatch, error)
	UpdateNextMatchInfo(ctx context.Context, exec SQLExecutor, matchID int, nextMatchID, nextMatchSlot *int) error
	UpdateRoundOneSlots(ctx context.Context, exec SQLExecutor, matchID int, team1ID, team2ID, seed1, seed2 *int) error
	UpdateSlot(ctx context.Context, exec SQLExecutor, matchID, slot int, teamID int) error
	UpdateWinner(ctx context.Context, exec SQLExecutor, matchID int, winnerTeamID int, status models.BracketMatchStatus) error

	ReplaceSets(ctx context.Context, exec SQLExecutor, matchID int, sets []models.SetScore) error
	ListSetsByMatch(ctx context.Context, matchID int) ([]models.BracketSet, error)

	// DeleteByKind removes all sets, matches and rounds of one bracket
	// kind for a tournament; regeneration is delete-then-rebuild inside a
	// single transaction.
	DeleteByKind(ctx context.Context, exec SQLExecutor, tournamentID int, kind models.BracketKind) error
}

type postgresBracketRepository struct {
	db *sql.DB
}

func NewPostgresBracketRepository(db *sql.DB) BracketRepository {
	return &postgresBracketRepository{db: db}
}

func (r *postgresBracketRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresBracketRepository) CreateRound(ctx context.Context, exec SQLExecutor, round *models.BracketRound) error {
	query := `
		INSERT INTO bracket_rounds (tournament_id, kind, number, name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		round.TournamentID,
		round.Kind,
		round.Number,
		round.Name,
	).Scan(&round.ID, &round.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "bracket_rounds_tournament_id_kind_number_key" {
			return ErrBracketRoundConflict
		}
		return fmt.Errorf("failed to create bracket round: %w", err)
	}
	return nil
}

func (r *postgresBracketRepository) GetRound(ctx context.Context, id int) (*models.BracketRound, error) {
	query := `
		SELECT id, tournament_id, kind, number, name, created_at
		FROM bracket_rounds
		WHERE id = $1`

	round := &models.BracketRound{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&round.ID,
		&round.TournamentID,
		&round.Kind,
		&round.Number,
		&round.Name,
		&round.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketRoundNotFound
		}
		return nil, fmt.Errorf("failed to scan bracket round %d: %w", id, err)
	}
	return round, nil
}

func (r *postgresBracketRepository) ListRounds(ctx context.Context, tournamentID int, kind models.BracketKind) ([]*models.BracketRound, error) {
	query := `
		SELECT id, tournament_id, kind, number, name, created_at
		FROM bracket_rounds
		WHERE tournament_id = $1 AND kind = $2
		ORDER BY number ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query bracket rounds for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	rounds := make([]*models.BracketRound, 0)
	for rows.Next() {
		round := &models.BracketRound{}
		if err := rows.Scan(
			&round.ID,
			&round.TournamentID,
			&round.Kind,
			&round.Number,
			&round.Name,
			&round.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bracket round row: %w", err)
		}
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during bracket round rows iteration: %w", err)
	}
	return rounds, nil
}

const bracketMatchColumns = `id, round_id, number, team1_id, team2_id, seed1, seed2, winner_team_id, status, next_match_id, next_match_slot, created_at`

func (r *postgresBracketRepository) CreateMatch(ctx context.Context, exec SQLExecutor, match *models.BracketMatch) error {
	query := `
		INSERT INTO bracket_matches
			(round_id, number, team1_id, team2_id, seed1, seed2, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		match.RoundID,
		match.Number,
		match.Team1ID,
		match.Team2ID,
		match.Seed1,
		match.Seed2,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "bracket_matches_team1_id_fkey", "bracket_matches_team2_id_fkey":
				return ErrBracketTeamInvalid
			case "bracket_matches_round_id_fkey":
				return ErrBracketRoundNotFound
			}
		}
		return fmt.Errorf("failed to create bracket match: %w", err)
	}
	return nil
}

func (r *postgresBracketRepository) GetMatch(ctx context.Context, exec SQLExecutor, id int) (*models.BracketMatch, error) {
	query := `SELECT ` + bracketMatchColumns + ` FROM bracket_matches WHERE id = $1`

	match := &models.BracketMatch{}
	err := r.getExecutor(exec).QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.RoundID,
		&match.Number,
		&match.Team1ID,
		&match.Team2ID,
		&match.Seed1,
		&match.Seed2,
		&match.WinnerTeamID,
		&match.Status,
		&match.NextMatchID,
		&match.NextMatchSlot,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan bracket match %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresBracketRepository) ListMatchesByRound(ctx context.Context, roundID int) ([]*models.BracketMatch, error) {
	query := `SELECT ` + bracketMatchColumns + ` FROM bracket_matches WHERE round_id = $1 ORDER BY number ASC`

	rows, err := r.db.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bracket matches for round %d: %w", roundID, err)
	}
	defer rows.Close()

	matches := make([]*models.BracketMatch, 0)
	for rows.Next() {
		match := &models.BracketMatch{}
		if err := rows.Scan(
			&match.ID,
			&match.RoundID,
			&match.Number,
			&match.Team1ID,
			&match.Team2ID,
			&match.Seed1,
			&match.Seed2,
			&match.WinnerTeamID,
			&match.Status,
			&match.NextMatchID,
			&match.NextMatchSlot,
			&match.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bracket match row: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during bracket match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresBracketRepository) UpdateNextMatchInfo(ctx context.Context, exec SQLExecutor, matchID int, nextMatchID, nextMatchSlot *int) error {
	query := `UPDATE bracket_matches SET next_match_id = $1, next_match_slot = $2 WHERE id = $3`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, nextMatchID, nextMatchSlot, matchID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "bracket_matches_next_match_id_fkey" {
			return ErrBracketMatchRefInvalid
		}
		return fmt.Errorf("failed to update forward link of bracket match %d: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrBracketMatchNotFound)
}

func (r *postgresBracketRepository) UpdateRoundOneSlots(ctx context.Context, exec SQLExecutor, matchID int, team1ID, team2ID, seed1, seed2 *int) error {
	query := `UPDATE bracket_matches SET team1_id = $1, team2_id = $2, seed1 = $3, seed2 = $4 WHERE id = $5`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, team1ID, team2ID, seed1, seed2, matchID)
	if err != nil {
		return fmt.Errorf("failed to update round-1 slots of bracket match %d: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrBracketMatchNotFound)
}

func (r *postgresBracketRepository) UpdateSlot(ctx context.Context, exec SQLExecutor, matchID, slot int, teamID int) error {
	var query string
	switch slot {
	case 1:
		query = `UPDATE bracket_matches SET team1_id = $1 WHERE id = $2`
	case 2:
		query = `UPDATE bracket_matches SET team2_id = $1 WHERE id = $2`
	default:
		return fmt.Errorf("invalid bracket match slot %d", slot)
	}
	result, err := r.getExecutor(exec).ExecContext(ctx, query, teamID, matchID)
	if err != nil {
		return fmt.Errorf("failed to update slot %d of bracket match %d: %w", slot, matchID, err)
	}
	return checkAffectedRows(result, ErrBracketMatchNotFound)
}

func (r *postgresBracketRepository) UpdateWinner(ctx context.Context, exec SQLExecutor, matchID int, winnerTeamID int, status models.BracketMatchStatus) error {
	query := `UPDATE bracket_matches SET winner_team_id = $1, status = $2 WHERE id = $3`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, winnerTeamID, status, matchID)
	if err != nil {
		return fmt.Errorf("failed to update winner of bracket match %d: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrBracketMatchNotFound)
}

func (r *postgresBracketRepository) ReplaceSets(ctx context.Context, exec SQLExecutor, matchID int, sets []models.SetScore) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx, `DELETE FROM bracket_sets WHERE match_id = $1`, matchID); err != nil {
		return fmt.Errorf("failed to clear sets of bracket match %d: %w", matchID, err)
	}
	for i, set := range sets {
		_, err := executor.ExecContext(ctx,
			`INSERT INTO bracket_sets (match_id, number, games1, games2) VALUES ($1, $2, $3, $4)`,
			matchID, i+1, set.Games1, set.Games2,
		)
		if err != nil {
			return fmt.Errorf("failed to insert set %d of bracket match %d: %w", i+1, matchID, err)
		}
	}
	return nil
}

func (r *postgresBracketRepository) ListSetsByMatch(ctx context.Context, matchID int) ([]models.BracketSet, error) {
	query := `
		SELECT id, match_id, number, games1, games2
		FROM bracket_sets
		WHERE match_id = $1
		ORDER BY number ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sets for bracket match %d: %w", matchID, err)
	}
	defer rows.Close()

	sets := make([]models.BracketSet, 0)
	for rows.Next() {
		var set models.BracketSet
		if err := rows.Scan(&set.ID, &set.MatchID, &set.Number, &set.Games1, &set.Games2); err != nil {
			return nil, fmt.Errorf("failed to scan bracket set row: %w", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during bracket set rows iteration: %w", err)
	}
	return sets, nil
}

func (r *postgresBracketRepository) DeleteByKind(ctx context.Context, exec SQLExecutor, tournamentID int, kind models.BracketKind) error {
	executor := r.getExecutor(exec)

	// Children first: sets, then matches (forward links cleared so the
	// self-referencing FK cannot block deletion), then rounds.
	_, err := executor.ExecContext(ctx, `
		DELETE FROM bracket_sets
		WHERE match_id IN (
			SELECT m.id FROM bracket_matches m
			JOIN bracket_rounds r ON r.id = m.round_id
			WHERE r.tournament_id = $1 AND r.kind = $2
		)`, tournamentID, kind)
	if err != nil {
		return fmt.Errorf("failed to delete bracket sets for tournament %d: %w", tournamentID, err)
	}

	_, err = executor.ExecContext(ctx, `
		UPDATE bracket_matches SET next_match_id = NULL, next_match_slot = NULL
		WHERE round_id IN (
			SELECT id FROM bracket_rounds WHERE tournament_id = $1 AND kind = $2
		)`, tournamentID, kind)
	if err != nil {
		return fmt.Errorf("failed to clear forward links for tournament %d: %w", tournamentID, err)
	}

	_, err = executor.ExecContext(ctx, `
		DELETE FROM bracket_matches
		WHERE round_id IN (
			SELECT id FROM bracket_rounds WHERE tournament_id = $1 AND kind = $2
		)`, tournamentID, kind)
	if err != nil {
		return fmt.Errorf("failed to delete bracket matches for tournament %d: %w", tournamentID, err)
	}

	_, err = executor.ExecContext(ctx,
		`DELETE FROM bracket_rounds WHERE tournament_id = $1 AND kind = $2`, tournamentID, kind)
	if err != nil {
		return fmt.Errorf("failed to delete bracket rounds for tournament %d: %w", tournamentID, err)
	}
	return nil
}
