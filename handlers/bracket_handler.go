package handlers

import (
	"fmt"
	"net/http"

	"github.com/padelgrid/tournament-system/models"
	"github.com/padelgrid/tournament-system/services"
)

type BracketHandler struct {
	bracketService services.BracketService
	seedingService services.SeedingService
}

func NewBracketHandler(bracketService services.BracketService, seedingService services.SeedingService) *BracketHandler {
	return &BracketHandler{
		bracketService: bracketService,
		seedingService: seedingService,
	}
}

func bracketKindFromURL(r *http.Request) (models.BracketKind, error) {
	switch kind := r.URL.Query().Get("kind"); kind {
	case "", string(models.BracketMain):
		return models.BracketMain, nil
	case string(models.BracketConsolation):
		return models.BracketConsolation, nil
	default:
		return "", fmt.Errorf("invalid bracket kind %q", kind)
	}
}

func (h *BracketHandler) BuildMain(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		QualifierCount int `json:"qualifier_count"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.bracketService.BuildMainBracket(r.Context(), tournamentID, input.QualifierCount); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	rounds, err := h.bracketService.GetBracket(r.Context(), tournamentID, models.BracketMain)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) BuildConsolation(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.bracketService.BuildConsolationBracket(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	rounds, err := h.bracketService.GetBracket(r.Context(), tournamentID, models.BracketConsolation)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) Get(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	kind, err := bracketKindFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rounds, err := h.bracketService.GetBracket(r.Context(), tournamentID, kind)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	kind, err := bracketKindFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.bracketService.Regenerate(r.Context(), tournamentID, kind); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	rounds, err := h.bracketService.GetBracket(r.Context(), tournamentID, kind)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Qualifiers previews the current seeding without touching the bracket.
func (h *BracketHandler) Qualifiers(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	seeds, err := h.seedingService.Qualifiers(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"qualifiers": seeds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Reseed rewrites the first round of the main bracket from the current
// standings, as long as no first round match has been decided.
func (h *BracketHandler) Reseed(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.seedingService.RecomputeSeeding(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	rounds, err := h.bracketService.GetBracket(r.Context(), tournamentID, models.BracketMain)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
