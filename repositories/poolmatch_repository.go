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
	ErrPoolMatchNotFound    = errors.New("pool match not found")
	ErrPoolMatchTeamInvalid = errors.New("pool match team conflict or invalid")
)

type PoolMatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.PoolMatch) error
	GetByID(ctx context.Context, id int) (*models.PoolMatch, error)
	ListByPool(ctx context.Context, poolID int) ([]*models.PoolMatch, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.PoolMatch, error)
	// UpdateResult writes the formatted score, the per-side aggregates,
	// the finished status and the (nullable) winner in one statement.
	UpdateResult(ctx context.Context, exec SQLExecutor, match *models.PoolMatch) error
}

type postgresPoolMatchRepository struct {
	db *sql.DB
}

func NewPostgresPoolMatchRepository(db *sql.DB) PoolMatchRepository {
	return &postgresPoolMatchRepository{db: db}
}

const poolMatchColumns = `id, tournament_id, pool_id, team_a_id, team_b_id, score, sets_a, sets_b, games_a, games_b, status, winner_team_id, created_at`

func (r *postgresPoolMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.PoolMatch) error {
	query := `
		INSERT INTO pool_matches
			(tournament_id, pool_id, team_a_id, team_b_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		match.TournamentID,
		match.PoolID,
		match.TeamAID,
		match.TeamBID,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "pool_matches_team_a_id_fkey", "pool_matches_team_b_id_fkey":
				return ErrPoolMatchTeamInvalid
			case "pool_matches_pool_id_fkey":
				return ErrPoolNotFound
			}
		}
		return fmt.Errorf("failed to create pool match: %w", err)
	}
	return nil
}

func (r *postgresPoolMatchRepository) GetByID(ctx context.Context, id int) (*models.PoolMatch, error) {
	query := `SELECT ` + poolMatchColumns + ` FROM pool_matches WHERE id = $1`

	match := &models.PoolMatch{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.TournamentID,
		&match.PoolID,
		&match.TeamAID,
		&match.TeamBID,
		&match.Score,
		&match.SetsA,
		&match.SetsB,
		&match.GamesA,
		&match.GamesB,
		&match.Status,
		&match.WinnerTeamID,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPoolMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan pool match %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresPoolMatchRepository) ListByPool(ctx context.Context, poolID int) ([]*models.PoolMatch, error) {
	query := `SELECT ` + poolMatchColumns + ` FROM pool_matches WHERE pool_id = $1 ORDER BY id ASC`
	return r.list(ctx, query, poolID)
}

func (r *postgresPoolMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.PoolMatch, error) {
	query := `SELECT ` + poolMatchColumns + ` FROM pool_matches WHERE tournament_id = $1 ORDER BY pool_id ASC, id ASC`
	return r.list(ctx, query, tournamentID)
}

func (r *postgresPoolMatchRepository) list(ctx context.Context, query string, arg interface{}) ([]*models.PoolMatch, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query pool matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.PoolMatch, 0)
	for rows.Next() {
		match := &models.PoolMatch{}
		if err := rows.Scan(
			&match.ID,
			&match.TournamentID,
			&match.PoolID,
			&match.TeamAID,
			&match.TeamBID,
			&match.Score,
			&match.SetsA,
			&match.SetsB,
			&match.GamesA,
			&match.GamesB,
			&match.Status,
			&match.WinnerTeamID,
			&match.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pool match row: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during pool match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresPoolMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, match *models.PoolMatch) error {
	query := `
		UPDATE pool_matches
		SET score = $1, sets_a = $2, sets_b = $3, games_a = $4, games_b = $5,
		    status = $6, winner_team_id = $7
		WHERE id = $8`

	result, err := exec.ExecContext(ctx, query,
		match.Score,
		match.SetsA,
		match.SetsB,
		match.GamesA,
		match.GamesB,
		match.Status,
		match.WinnerTeamID,
		match.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pool match %d result: %w", match.ID, err)
	}
	return checkAffectedRows(result, ErrPoolMatchNotFound)
}
