package models

// PoolStanding is derived state: it is recomputed from PoolMatch rows on
// every read and never persisted.
type PoolStanding struct {
	TeamID       int    `json:"team_id"`
	TeamName     string `json:"team_name"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	SetsFor      int    `json:"sets_for"`
	SetsAgainst  int    `json:"sets_against"`
	GamesFor     int    `json:"games_for"`
	GamesAgainst int    `json:"games_against"`
	SetDiff      int    `json:"set_diff"`
	GameDiff     int    `json:"game_diff"`
	Points       int    `json:"points"`

	Team *Team `json:"team,omitempty"`
}

// Less is the ranking comparator shared by standings display and
// qualification: points, then set difference, then game difference, then
// team name as the deterministic final tiebreak.
func (s *PoolStanding) Less(other *PoolStanding) bool {
	if s.Points != other.Points {
		return s.Points > other.Points
	}
	if s.SetDiff != other.SetDiff {
		return s.SetDiff > other.SetDiff
	}
	if s.GameDiff != other.GameDiff {
		return s.GameDiff > other.GameDiff
	}
	return s.TeamName < other.TeamName
}
