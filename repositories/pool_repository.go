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
	ErrPoolNotFound           = errors.New("pool not found")
	ErrPoolNameConflict       = errors.New("pool name already in use in this tournament")
	ErrPoolMembershipConflict = errors.New("team is already a member of this pool")
	ErrPoolTeamInvalid        = errors.New("pool membership team conflict or invalid")
)

type PoolRepository interface {
	Create(ctx context.Context, pool *models.Pool) error
	GetByID(ctx context.Context, id int) (*models.Pool, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Pool, error)
	AddTeam(ctx context.Context, poolID, teamID int) error
	// ListTeams returns the pool's member teams ordered by name, which is
	// the stable order match generation and consolation filling rely on.
	ListTeams(ctx context.Context, poolID int) ([]models.Team, error)
}

type postgresPoolRepository struct {
	db *sql.DB
}

func NewPostgresPoolRepository(db *sql.DB) PoolRepository {
	return &postgresPoolRepository{db: db}
}

func (r *postgresPoolRepository) Create(ctx context.Context, pool *models.Pool) error {
	query := `
		INSERT INTO pools (tournament_id, name, order_index)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		pool.TournamentID,
		pool.Name,
		pool.OrderIndex,
	).Scan(&pool.ID, &pool.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "pools_tournament_id_name_key" {
			return ErrPoolNameConflict
		}
		return fmt.Errorf("failed to create pool: %w", err)
	}
	return nil
}

func (r *postgresPoolRepository) GetByID(ctx context.Context, id int) (*models.Pool, error) {
	query := `
		SELECT id, tournament_id, name, order_index, created_at
		FROM pools
		WHERE id = $1`

	pool := &models.Pool{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pool.ID,
		&pool.TournamentID,
		&pool.Name,
		&pool.OrderIndex,
		&pool.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPoolNotFound
		}
		return nil, fmt.Errorf("failed to scan pool %d: %w", id, err)
	}
	return pool, nil
}

func (r *postgresPoolRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Pool, error) {
	query := `
		SELECT id, tournament_id, name, order_index, created_at
		FROM pools
		WHERE tournament_id = $1
		ORDER BY order_index ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pools for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	pools := make([]*models.Pool, 0)
	for rows.Next() {
		pool := &models.Pool{}
		if err := rows.Scan(
			&pool.ID,
			&pool.TournamentID,
			&pool.Name,
			&pool.OrderIndex,
			&pool.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pool row: %w", err)
		}
		pools = append(pools, pool)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during pool rows iteration: %w", err)
	}
	return pools, nil
}

func (r *postgresPoolRepository) AddTeam(ctx context.Context, poolID, teamID int) error {
	query := `INSERT INTO pool_teams (pool_id, team_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, poolID, teamID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "pool_teams_pkey":
				return ErrPoolMembershipConflict
			case "pool_teams_pool_id_fkey":
				return ErrPoolNotFound
			case "pool_teams_team_id_fkey":
				return ErrPoolTeamInvalid
			}
		}
		return fmt.Errorf("failed to add team %d to pool %d: %w", teamID, poolID, err)
	}
	return nil
}

func (r *postgresPoolRepository) ListTeams(ctx context.Context, poolID int) ([]models.Team, error) {
	query := `
		SELECT t.id, t.tournament_id, t.name, t.seeded, t.crest_key, t.created_at
		FROM teams t
		JOIN pool_teams pt ON pt.team_id = t.id
		WHERE pt.pool_id = $1
		ORDER BY t.name ASC`

	rows, err := r.db.QueryContext(ctx, query, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams for pool %d: %w", poolID, err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(
			&team.ID,
			&team.TournamentID,
			&team.Name,
			&team.Seeded,
			&team.CrestKey,
			&team.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pool team row: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during pool team rows iteration: %w", err)
	}
	return teams, nil
}
