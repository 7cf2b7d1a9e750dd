package models

import "time"

// TournamentStatus mirrors the ENUM in the tournaments table.
type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

type Tournament struct {
	ID             int              `json:"id" db:"id"`
	Name           string           `json:"name" db:"name"`
	Description    *string          `json:"description,omitempty" db:"description"`
	Location       *string          `json:"location,omitempty" db:"location"`
	OrganizerID    int              `json:"organizer_id" db:"organizer_id"`
	Status         TournamentStatus `json:"status" db:"status"`
	QualifierCount int              `json:"qualifier_count" db:"qualifier_count"`
	StartDate      time.Time        `json:"start_date" db:"start_date"`
	EndDate        time.Time        `json:"end_date" db:"end_date"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`

	// Optional linked data, populated by services, not mapped directly.
	Organizer   *User          `json:"organizer,omitempty" db:"-"`
	Teams       []Team         `json:"teams,omitempty" db:"-"`
	Pools       []Pool         `json:"pools,omitempty" db:"-"`
	PoolMatches []PoolMatch    `json:"pool_matches,omitempty" db:"-"`
	Brackets    []BracketRound `json:"brackets,omitempty" db:"-"`
}
