package services

import "errors"

// Shared sentinel errors, grouped by the way the HTTP layer maps them.
var (
	// Not found
	ErrNotFound           = errors.New("requested resource not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPoolNotFound       = errors.New("pool not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrBracketNotFound    = errors.New("bracket not found")

	// Configuration
	ErrQualifierCountInvalid = errors.New("qualifier count must be a power of two, minimum 2")
	ErrNoPoolsDefined        = errors.New("tournament has no pools")

	// Conflicts
	ErrBracketAlreadyExists   = errors.New("a bracket of this kind already exists, regenerate it instead")
	ErrMatchAlreadyDecided    = errors.New("match already has a recorded winner")
	ErrTeamNameConflict       = errors.New("team name is already in use in this tournament")
	ErrPoolNameConflict       = errors.New("pool name is already in use in this tournament")
	ErrTeamAlreadyInPool      = errors.New("team is already a member of this pool")
	ErrTournamentNameConflict = errors.New("tournament name is already in use")

	// Validation / business rules
	ErrInvalidSetCount     = errors.New("a result must contain between 1 and 5 sets")
	ErrInvalidSetScore     = errors.New("set score violates the padel set rule")
	ErrDrawnBracketMatch   = errors.New("an elimination match cannot end in a draw")
	ErrInvalidSlot         = errors.New("slot position must be 1 or 2")
	ErrTeamNameRequired    = errors.New("team name is required")
	ErrTeamWrongTournament = errors.New("team does not belong to this tournament")

	// State
	ErrSlotsNotDefined     = errors.New("teams are not yet defined for this match")
	ErrNotEnoughEliminated = errors.New("not enough eliminated teams for a consolation bracket (minimum 4)")

	// Tournament administration
	ErrTournamentNameRequired     = errors.New("tournament name is required")
	ErrTournamentInvalidDateRange = errors.New("tournament end date must be after start date")

	// Auth
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
)
