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

// SeededTeam is one qualifier with its assigned bracket seed. PoolRank is
// the position the team held in its pool (1 = pool winner); wildcards keep
// the rank they occupied even though they qualified across pools.
type SeededTeam struct {
	TeamID   int    `json:"team_id"`
	TeamName string `json:"team_name"`
	Seed     int    `json:"seed"`
	PoolRank int    `json:"pool_rank"`
	Wildcard bool   `json:"wildcard"`
}

// SelectQualifiers picks the qualifierCount best teams across the given
// per-pool standings and assigns seeds 1..qualifierCount.
//
// Base allocation takes the top floor(Q/poolCount) of every pool; the
// remaining slots go to the best-ranked teams among all not yet qualified,
// compared with the same standings comparator. Seeds are then assigned by
// pool-rank tier (all pool winners first, then runners-up, ...), keeping
// the standings order within a tier.
func SelectQualifiers(poolStandings [][]models.PoolStanding, qualifierCount int) ([]SeededTeam, error) {
	if qualifierCount < 2 || !brackets.IsPowerOfTwo(qualifierCount) {
		return nil, fmt.Errorf("%w: got %d", ErrQualifierCountInvalid, qualifierCount)
	}
	poolCount := len(poolStandings)
	if poolCount <= 0 {
		return nil, ErrNoPoolsDefined
	}

	type candidate struct {
		standing models.PoolStanding
		poolRank int
		wildcard bool
	}

	perPool := qualifierCount / poolCount
	qualified := make([]candidate, 0, qualifierCount)
	leftovers := make([]candidate, 0)

	for _, standings := range poolStandings {
		for i, st := range standings {
			c := candidate{standing: st, poolRank: i + 1}
			if i < perPool {
				qualified = append(qualified, c)
			} else {
				leftovers = append(leftovers, c)
			}
		}
	}

	// Wildcard fill: best remaining teams across all pools, ranked by the
	// same comparator as within a pool.
	sort.Slice(leftovers, func(i, j int) bool {
		return leftovers[i].standing.Less(&leftovers[j].standing)
	})
	for i := 0; len(qualified) < qualifierCount && i < len(leftovers); i++ {
		leftovers[i].wildcard = true
		qualified = append(qualified, leftovers[i])
	}
	if len(qualified) < qualifierCount {
		return nil, fmt.Errorf("%w: only %d teams available for %d qualifier slots",
			ErrQualifierCountInvalid, len(qualified), qualifierCount)
	}

	// Seed by rank tier, standings order inside each tier.
	sort.SliceStable(qualified, func(i, j int) bool {
		if qualified[i].poolRank != qualified[j].poolRank {
			return qualified[i].poolRank < qualified[j].poolRank
		}
		return qualified[i].standing.Less(&qualified[j].standing)
	})

	qualified = qualified[:qualifierCount]
	seeds := make([]SeededTeam, len(qualified))
	for i, c := range qualified {
		seeds[i] = SeededTeam{
			TeamID:   c.standing.TeamID,
			TeamName: c.standing.TeamName,
			Seed:     i + 1,
			PoolRank: c.poolRank,
			Wildcard: c.wildcard,
		}
	}
	return seeds, nil
}

type SeedingService interface {
	// Qualifiers computes the current seed list without touching any
	// bracket rows.
	Qualifiers(ctx context.Context, tournamentID int) ([]SeededTeam, error)
	// RecomputeSeeding reruns qualification and rewrites the slots and
	// seed numbers of the main bracket's first round. Later rounds are
	// untouched; it refuses to run once a first-round match is decided.
	RecomputeSeeding(ctx context.Context, tournamentID int) error
}

type seedingService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	poolRepo       repositories.PoolRepository
	poolMatchRepo  repositories.PoolMatchRepository
	bracketRepo    repositories.BracketRepository
	hub            *brackets.Hub
}

func NewSeedingService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	poolRepo repositories.PoolRepository,
	poolMatchRepo repositories.PoolMatchRepository,
	bracketRepo repositories.BracketRepository,
	hub *brackets.Hub,
) SeedingService {
	return &seedingService{
		db:             db,
		tournamentRepo: tournamentRepo,
		poolRepo:       poolRepo,
		poolMatchRepo:  poolMatchRepo,
		bracketRepo:    bracketRepo,
		hub:            hub,
	}
}

func (s *seedingService) Qualifiers(ctx context.Context, tournamentID int) ([]SeededTeam, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}

	poolStandings, err := s.allPoolStandings(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return SelectQualifiers(poolStandings, tournament.QualifierCount)
}

func (s *seedingService) RecomputeSeeding(ctx context.Context, tournamentID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The decided-match check must hold while the slots are rewritten, so
	// the lock comes before any bracket read.
	if err := s.tournamentRepo.LockForUpdate(ctx, tx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}

	seeds, err := s.Qualifiers(ctx, tournamentID)
	if err != nil {
		return err
	}

	rounds, err := s.bracketRepo.ListRounds(ctx, tournamentID, models.BracketMain)
	if err != nil {
		return fmt.Errorf("failed to list main bracket rounds: %w", err)
	}
	if len(rounds) == 0 {
		return ErrBracketNotFound
	}
	firstRound, err := s.bracketRepo.ListMatchesByRound(ctx, rounds[0].ID)
	if err != nil {
		return fmt.Errorf("failed to list first-round matches: %w", err)
	}
	if len(firstRound)*2 != len(seeds) {
		return fmt.Errorf("%w: bracket holds %d first-round slots, seeding produced %d qualifiers",
			ErrQualifierCountInvalid, len(firstRound)*2, len(seeds))
	}
	for _, m := range firstRound {
		if m.WinnerTeamID != nil {
			return ErrMatchAlreadyDecided
		}
	}

	order := brackets.SeedOrder(len(seeds))
	for i, m := range firstRound {
		s1 := seeds[order[2*i]-1]
		s2 := seeds[order[2*i+1]-1]
		if err := s.bracketRepo.UpdateRoundOneSlots(ctx, tx, m.ID,
			&s1.TeamID, &s2.TeamID, &s1.Seed, &s2.Seed); err != nil {
			return fmt.Errorf("failed to rewrite slots of match %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seeding update: %w", err)
	}

	s.hub.BroadcastToRoom(brackets.TournamentRoom(tournamentID), brackets.WebSocketMessage{
		Type:    brackets.EventBracketUpdated,
		Payload: map[string]interface{}{"tournament_id": tournamentID, "kind": models.BracketMain},
	})
	return nil
}

func (s *seedingService) allPoolStandings(ctx context.Context, tournamentID int) ([][]models.PoolStanding, error) {
	pools, err := s.poolRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools of tournament %d: %w", tournamentID, err)
	}
	if len(pools) == 0 {
		return nil, ErrNoPoolsDefined
	}

	poolStandings := make([][]models.PoolStanding, 0, len(pools))
	for _, pool := range pools {
		teams, err := s.poolRepo.ListTeams(ctx, pool.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list teams of pool %d: %w", pool.ID, err)
		}
		matches, err := s.poolMatchRepo.ListByPool(ctx, pool.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list matches of pool %d: %w", pool.ID, err)
		}
		poolStandings = append(poolStandings, ComputeStandings(teams, matches))
	}
	return poolStandings, nil
}
