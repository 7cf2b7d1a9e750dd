package brackets

import "github.com/padelgrid/tournament-system/models"

// Pairing is one round-robin fixture to be created.
type Pairing struct {
	TeamAID int
	TeamBID int
}

// MissingPairings returns, for one pool, the round-robin pairings that do
// not yet exist among the given matches. Every unordered pair of distinct
// teams plays exactly once; a pair is skipped when a match between the
// two teams already exists in either orientation, which makes repeated
// generation idempotent. Pools with fewer than two teams produce nothing.
func MissingPairings(teams []models.Team, existing []*models.PoolMatch) []Pairing {
	if len(teams) < 2 {
		return nil
	}

	pairings := make([]Pairing, 0, len(teams)*(len(teams)-1)/2)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			found := false
			for _, m := range existing {
				if m.IsBetween(teams[i].ID, teams[j].ID) {
					found = true
					break
				}
			}
			if !found {
				pairings = append(pairings, Pairing{TeamAID: teams[i].ID, TeamBID: teams[j].ID})
			}
		}
	}
	return pairings
}
