package models

import (
	"fmt"
	"time"
)

// BracketKind distinguishes the main (qualifier) bracket from the
// consolation bracket built from non-qualified teams.
type BracketKind string

const (
	BracketMain        BracketKind = "main"
	BracketConsolation BracketKind = "consolation"
)

type BracketMatchStatus string

const (
	BracketMatchUpcoming  BracketMatchStatus = "upcoming"
	BracketMatchLive      BracketMatchStatus = "live"
	BracketMatchCompleted BracketMatchStatus = "completed"
)

type BracketRound struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	Kind         BracketKind `json:"kind" db:"kind"`
	Number       int         `json:"number" db:"number"`
	Name         string      `json:"name" db:"name"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	Matches []BracketMatch `json:"matches,omitempty" db:"-"`
}

// BracketMatch is one elimination fixture. NextMatchID/NextMatchSlot form
// the forward link: the winner is written into slot 1 or 2 of that match.
// Matches of the final round carry no forward link. Seed1/Seed2 are set
// only in round 1 of the main bracket.
type BracketMatch struct {
	ID            int                `json:"id" db:"id"`
	RoundID       int                `json:"round_id" db:"round_id"`
	Number        int                `json:"number" db:"number"`
	Team1ID       *int               `json:"team1_id,omitempty" db:"team1_id"`
	Team2ID       *int               `json:"team2_id,omitempty" db:"team2_id"`
	Seed1         *int               `json:"seed1,omitempty" db:"seed1"`
	Seed2         *int               `json:"seed2,omitempty" db:"seed2"`
	WinnerTeamID  *int               `json:"winner_team_id,omitempty" db:"winner_team_id"`
	Status        BracketMatchStatus `json:"status" db:"status"`
	NextMatchID   *int               `json:"next_match_id,omitempty" db:"next_match_id"`
	NextMatchSlot *int               `json:"next_match_slot,omitempty" db:"next_match_slot"`
	CreatedAt     time.Time          `json:"created_at" db:"created_at"`

	Sets  []BracketSet `json:"sets,omitempty" db:"-"`
	Team1 *Team        `json:"team1,omitempty" db:"-"`
	Team2 *Team        `json:"team2,omitempty" db:"-"`
}

// Ready reports whether both slots are filled. A match stays Ready after
// its winner is recorded; whether a decided match may still be corrected
// depends on the state of the next match, not on the match itself.
func (m *BracketMatch) Ready() bool {
	return m.Team1ID != nil && m.Team2ID != nil
}

type BracketSet struct {
	ID      int `json:"id" db:"id"`
	MatchID int `json:"match_id" db:"match_id"`
	Number  int `json:"number" db:"number"`
	Games1  int `json:"games1" db:"games1"`
	Games2  int `json:"games2" db:"games2"`
}

// RoundName derives the display name for a knockout tier from the number
// of teams entering it.
func RoundName(teamCount int) string {
	switch teamCount {
	case 2:
		return "final"
	case 4:
		return "semifinals"
	case 8:
		return "quarterfinals"
	default:
		return fmt.Sprintf("round of %d", teamCount)
	}
}
