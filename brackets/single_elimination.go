package brackets

import (
	"errors"
	"fmt"

	"github.com/padelgrid/tournament-system/models"
)

var (
	ErrInvalidSize = errors.New("bracket size must be a power of two, minimum 2")
	ErrEntryCount  = errors.New("entry count does not match bracket size")
)

// Entry is one team fed into a bracket. Seed is 1-based for seeded
// brackets and zero for unseeded ones.
type Entry struct {
	TeamID int
	Seed   int
}

// Match is a bracket fixture before persistence. Matches are addressed by
// (Round, Number), both 1-based; the forward link points at the
// next-round match that receives this match's winner and the slot it
// lands in. Final-round matches have NextNumber zero.
type Match struct {
	Round  int
	Number int

	Team1ID *int
	Team2ID *int
	Seed1   *int
	Seed2   *int

	NextNumber int
	NextSlot   int
}

// Round is one knockout tier of the skeleton.
type Round struct {
	Number    int
	Name      string
	TeamCount int
	Matches   []*Match
}

// Skeleton is the full round/match graph produced by Build, ordered by
// round then match number.
type Skeleton struct {
	Rounds []Round
}

// Build constructs a single-elimination skeleton for len(entries) teams.
//
// Seeded brackets receive entries in seed order (entries[0] is seed 1)
// and place them in round 1 by the canonical SeedOrder pairing. Unseeded
// brackets pair entries directly in input order. Rounds after the first
// start with both slots empty; they are filled only by winner
// advancement. Matches 2k-1 and 2k of every round feed match k of the
// next round, slots 1 and 2 respectively.
func Build(entries []Entry, seeded bool) (*Skeleton, error) {
	size := len(entries)
	if !IsPowerOfTwo(size) || size < 2 {
		return nil, fmt.Errorf("%w: got %d entries", ErrInvalidSize, size)
	}

	skeleton := &Skeleton{}
	roundNumber := 0
	for teamsRemaining := size; teamsRemaining >= 2; teamsRemaining /= 2 {
		roundNumber++
		round := Round{
			Number:    roundNumber,
			Name:      models.RoundName(teamsRemaining),
			TeamCount: teamsRemaining,
		}
		matchCount := teamsRemaining / 2
		isFinal := matchCount == 1
		for n := 1; n <= matchCount; n++ {
			m := &Match{Round: roundNumber, Number: n}
			if !isFinal {
				m.NextNumber = (n + 1) / 2
				if n%2 != 0 {
					m.NextSlot = 1
				} else {
					m.NextSlot = 2
				}
			}
			round.Matches = append(round.Matches, m)
		}
		skeleton.Rounds = append(skeleton.Rounds, round)
	}

	firstRound := skeleton.Rounds[0].Matches
	if seeded {
		order := SeedOrder(size)
		for i, m := range firstRound {
			e1 := entries[order[2*i]-1]
			e2 := entries[order[2*i+1]-1]
			if e1.Seed != order[2*i] || e2.Seed != order[2*i+1] {
				return nil, fmt.Errorf("%w: entries are not in seed order", ErrEntryCount)
			}
			m.Team1ID = &e1.TeamID
			m.Team2ID = &e2.TeamID
			m.Seed1 = &e1.Seed
			m.Seed2 = &e2.Seed
		}
	} else {
		for i, m := range firstRound {
			m.Team1ID = &entries[2*i].TeamID
			m.Team2ID = &entries[2*i+1].TeamID
		}
	}

	return skeleton, nil
}
