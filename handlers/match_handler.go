package handlers

import (
	"errors"
	"net/http"

	"github.com/padelgrid/tournament-system/models"
	"github.com/padelgrid/tournament-system/services"
)

type MatchHandler struct {
	resultService services.ResultService
}

func NewMatchHandler(resultService services.ResultService) *MatchHandler {
	return &MatchHandler{resultService: resultService}
}

type setInput struct {
	Games1 int `json:"games1"`
	Games2 int `json:"games2"`
}

func toSetScores(sets []setInput) []models.SetScore {
	scores := make([]models.SetScore, len(sets))
	for i, s := range sets {
		scores[i] = models.SetScore{Games1: s.Games1, Games2: s.Games2}
	}
	return scores
}

func (h *MatchHandler) RecordPoolResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Sets []setInput `json:"sets"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.resultService.RecordPoolMatchResult(r.Context(), matchID, toSetScores(input.Sets)); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match_id": matchID}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) RecordBracketResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Sets []setInput `json:"sets"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.resultService.RecordBracketMatchResult(r.Context(), matchID, toSetScores(input.Sets)); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match_id": matchID}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// OverrideSlot places a team into one slot of an undecided bracket match.
func (h *MatchHandler) OverrideSlot(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Slot   int `json:"slot"`
		TeamID int `json:"team_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TeamID < 1 {
		badRequestResponse(w, r, errors.New("team_id is required"))
		return
	}

	if err := h.resultService.OverrideBracketSlot(r.Context(), matchID, input.Slot, input.TeamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match_id": matchID, "slot": input.Slot, "team_id": input.TeamID}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
