package services

import (
	"context"
	"sort"

	"github.com/padelgrid/tournament-system/models"
	"github.com/padelgrid/tournament-system/repositories"
)

// In-memory repository fakes for service tests that stay off the
// transactional paths.

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
}

func newFakeTournamentRepo(tournaments ...*models.Tournament) *fakeTournamentRepo {
	r := &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament)}
	for _, t := range tournaments {
		r.tournaments[t.ID] = t
	}
	return r
}

func (r *fakeTournamentRepo) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.ID = len(r.tournaments) + 1
	r.tournaments[tournament.ID] = tournament
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return t, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context, organizerID *int, status *models.TournamentStatus) ([]*models.Tournament, error) {
	out := make([]*models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTournamentRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.TournamentStatus) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

func (r *fakeTournamentRepo) LockForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	return nil
}

type fakePoolRepo struct {
	pools map[int]*models.Pool
	teams map[int][]models.Team
}

func newFakePoolRepo() *fakePoolRepo {
	return &fakePoolRepo{
		pools: make(map[int]*models.Pool),
		teams: make(map[int][]models.Team),
	}
}

func (r *fakePoolRepo) addPool(pool *models.Pool, teams ...models.Team) {
	r.pools[pool.ID] = pool
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	r.teams[pool.ID] = teams
}

func (r *fakePoolRepo) Create(ctx context.Context, pool *models.Pool) error {
	pool.ID = len(r.pools) + 1
	r.pools[pool.ID] = pool
	return nil
}

func (r *fakePoolRepo) GetByID(ctx context.Context, id int) (*models.Pool, error) {
	p, ok := r.pools[id]
	if !ok {
		return nil, repositories.ErrPoolNotFound
	}
	return p, nil
}

func (r *fakePoolRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Pool, error) {
	out := make([]*models.Pool, 0)
	for _, p := range r.pools {
		if p.TournamentID == tournamentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r *fakePoolRepo) AddTeam(ctx context.Context, poolID, teamID int) error {
	return nil
}

func (r *fakePoolRepo) ListTeams(ctx context.Context, poolID int) ([]models.Team, error) {
	return r.teams[poolID], nil
}

type fakePoolMatchRepo struct {
	matches []*models.PoolMatch
}

func (r *fakePoolMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.PoolMatch) error {
	match.ID = len(r.matches) + 1
	r.matches = append(r.matches, match)
	return nil
}

func (r *fakePoolMatchRepo) GetByID(ctx context.Context, id int) (*models.PoolMatch, error) {
	for _, m := range r.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, repositories.ErrPoolMatchNotFound
}

func (r *fakePoolMatchRepo) ListByPool(ctx context.Context, poolID int) ([]*models.PoolMatch, error) {
	out := make([]*models.PoolMatch, 0)
	for _, m := range r.matches {
		if m.PoolID != nil && *m.PoolID == poolID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakePoolMatchRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.PoolMatch, error) {
	out := make([]*models.PoolMatch, 0)
	for _, m := range r.matches {
		if m.TournamentID == tournamentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakePoolMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, match *models.PoolMatch) error {
	for i, m := range r.matches {
		if m.ID == match.ID {
			r.matches[i] = match
			return nil
		}
	}
	return repositories.ErrPoolMatchNotFound
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: make(map[int]*models.Team)}
	for _, team := range teams {
		r.teams[team.ID] = team
	}
	return r
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	team.ID = len(r.teams) + 1
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

func (r *fakeTeamRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	out := make([]*models.Team, 0)
	for _, team := range r.teams {
		if team.TournamentID == tournamentID {
			out = append(out, team)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTeamRepo) UpdateSeeded(ctx context.Context, id int, seeded bool) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.Seeded = seeded
	return nil
}

func (r *fakeTeamRepo) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.CrestKey = crestKey
	return nil
}

type fakeBracketRepo struct {
	lastID  int
	rounds  map[int]*models.BracketRound
	matches map[int]*models.BracketMatch
	sets    map[int][]models.BracketSet
}

func newFakeBracketRepo() *fakeBracketRepo {
	return &fakeBracketRepo{
		rounds:  make(map[int]*models.BracketRound),
		matches: make(map[int]*models.BracketMatch),
		sets:    make(map[int][]models.BracketSet),
	}
}

func (r *fakeBracketRepo) nextID() int {
	r.lastID++
	return r.lastID
}

func (r *fakeBracketRepo) CreateRound(ctx context.Context, exec repositories.SQLExecutor, round *models.BracketRound) error {
	round.ID = r.nextID()
	r.rounds[round.ID] = round
	return nil
}

func (r *fakeBracketRepo) GetRound(ctx context.Context, id int) (*models.BracketRound, error) {
	round, ok := r.rounds[id]
	if !ok {
		return nil, repositories.ErrBracketRoundNotFound
	}
	return round, nil
}

func (r *fakeBracketRepo) ListRounds(ctx context.Context, tournamentID int, kind models.BracketKind) ([]*models.BracketRound, error) {
	out := make([]*models.BracketRound, 0)
	for _, round := range r.rounds {
		if round.TournamentID == tournamentID && round.Kind == kind {
			out = append(out, round)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *fakeBracketRepo) CreateMatch(ctx context.Context, exec repositories.SQLExecutor, match *models.BracketMatch) error {
	match.ID = r.nextID()
	r.matches[match.ID] = match
	return nil
}

func (r *fakeBracketRepo) GetMatch(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.BracketMatch, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrBracketMatchNotFound
	}
	// Callers get a row copy, as a scan would produce.
	copied := *match
	return &copied, nil
}

func (r *fakeBracketRepo) ListMatchesByRound(ctx context.Context, roundID int) ([]*models.BracketMatch, error) {
	out := make([]*models.BracketMatch, 0)
	for _, match := range r.matches {
		if match.RoundID == roundID {
			copied := *match
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *fakeBracketRepo) UpdateNextMatchInfo(ctx context.Context, exec repositories.SQLExecutor, matchID int, nextMatchID, nextMatchSlot *int) error {
	match, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrBracketMatchNotFound
	}
	match.NextMatchID = nextMatchID
	match.NextMatchSlot = nextMatchSlot
	return nil
}

func (r *fakeBracketRepo) UpdateRoundOneSlots(ctx context.Context, exec repositories.SQLExecutor, matchID int, team1ID, team2ID, seed1, seed2 *int) error {
	match, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrBracketMatchNotFound
	}
	match.Team1ID = team1ID
	match.Team2ID = team2ID
	match.Seed1 = seed1
	match.Seed2 = seed2
	return nil
}

func (r *fakeBracketRepo) UpdateSlot(ctx context.Context, exec repositories.SQLExecutor, matchID, slot int, teamID int) error {
	match, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrBracketMatchNotFound
	}
	if slot == 1 {
		match.Team1ID = &teamID
	} else {
		match.Team2ID = &teamID
	}
	return nil
}

func (r *fakeBracketRepo) UpdateWinner(ctx context.Context, exec repositories.SQLExecutor, matchID int, winnerTeamID int, status models.BracketMatchStatus) error {
	match, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrBracketMatchNotFound
	}
	match.WinnerTeamID = &winnerTeamID
	match.Status = status
	return nil
}

func (r *fakeBracketRepo) ReplaceSets(ctx context.Context, exec repositories.SQLExecutor, matchID int, sets []models.SetScore) error {
	rows := make([]models.BracketSet, 0, len(sets))
	for i, set := range sets {
		rows = append(rows, models.BracketSet{
			ID:      r.nextID(),
			MatchID: matchID,
			Number:  i + 1,
			Games1:  set.Games1,
			Games2:  set.Games2,
		})
	}
	r.sets[matchID] = rows
	return nil
}

func (r *fakeBracketRepo) ListSetsByMatch(ctx context.Context, matchID int) ([]models.BracketSet, error) {
	return r.sets[matchID], nil
}

func (r *fakeBracketRepo) DeleteByKind(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, kind models.BracketKind) error {
	for id, round := range r.rounds {
		if round.TournamentID != tournamentID || round.Kind != kind {
			continue
		}
		for matchID, match := range r.matches {
			if match.RoundID == id {
				delete(r.matches, matchID)
				delete(r.sets, matchID)
			}
		}
		delete(r.rounds, id)
	}
	return nil
}
