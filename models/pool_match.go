package models

import "time"

type PoolMatchStatus string

const (
	PoolMatchUpcoming PoolMatchStatus = "upcoming"
	PoolMatchLive     PoolMatchStatus = "live"
	PoolMatchFinished PoolMatchStatus = "finished"
)

// PoolMatch is one round-robin fixture between two teams of the same pool.
// Score holds the formatted set list ("6-3,4-6,7-6"); the numeric columns
// are aggregates derived from it when a result is recorded. WinnerTeamID
// stays NULL for a drawn or unfinished match.
type PoolMatch struct {
	ID           int             `json:"id" db:"id"`
	TournamentID int             `json:"tournament_id" db:"tournament_id"`
	PoolID       *int            `json:"pool_id,omitempty" db:"pool_id"`
	TeamAID      int             `json:"team_a_id" db:"team_a_id"`
	TeamBID      int             `json:"team_b_id" db:"team_b_id"`
	Score        *string         `json:"score,omitempty" db:"score"`
	SetsA        int             `json:"sets_a" db:"sets_a"`
	SetsB        int             `json:"sets_b" db:"sets_b"`
	GamesA       int             `json:"games_a" db:"games_a"`
	GamesB       int             `json:"games_b" db:"games_b"`
	Status       PoolMatchStatus `json:"status" db:"status"`
	WinnerTeamID *int            `json:"winner_team_id,omitempty" db:"winner_team_id"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`

	TeamA *Team `json:"team_a,omitempty" db:"-"`
	TeamB *Team `json:"team_b,omitempty" db:"-"`
}

// IsBetween reports whether the match pairs the two given teams,
// in either order.
func (m *PoolMatch) IsBetween(teamID, otherID int) bool {
	return (m.TeamAID == teamID && m.TeamBID == otherID) ||
		(m.TeamAID == otherID && m.TeamBID == teamID)
}
