package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dom/league-skinset-finder/internal/finder"
	"github.com/dom/league-skinset-finder/internal/service"
)

const maxResolveBody = 1 << 20

type FinderHandler struct {
	finderService *service.FinderService
}

func NewFinderHandler(finderService *service.FinderService) *FinderHandler {
	return &FinderHandler{finderService: finderService}
}

type ResolveResponse struct {
	QueryID      string               `json:"queryId"`
	IndexVersion string               `json:"indexVersion"`
	Players      []string             `json:"players"`
	Count        int                  `json:"count"`
	Cached       bool                 `json:"cached"`
	ElapsedMs    int64                `json:"elapsedMs"`
	Results      []finder.ResultEntry `json:"results"`
}

func (h *FinderHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req service.ResolveInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxResolveBody)).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.finderService.Resolve(r.Context(), req)
	if err != nil {
		writeFinderError(w, "finder.Resolve", err)
		return
	}

	players := result.Players
	if players == nil {
		players = []string{}
	}
	resp := ResolveResponse{
		QueryID:      result.QueryID.String(),
		IndexVersion: result.IndexVersion,
		Players:      players,
		Count:        len(result.Results),
		Cached:       result.Cached,
		ElapsedMs:    result.Elapsed.Milliseconds(),
		Results:      result.Results,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type LimitsResponse struct {
	MaxPlayers     int `json:"maxPlayers"`
	MaxAssignments int `json:"maxAssignments"`
}

// Limits reports the search limits applied to every resolve.
func (h *FinderHandler) Limits(w http.ResponseWriter, r *http.Request) {
	limits := h.finderService.Limits()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LimitsResponse{
		MaxPlayers:     limits.MaxPlayers,
		MaxAssignments: limits.MaxAssignments,
	})
}

func writeFinderError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, finder.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, finder.ErrRosterTooLarge), errors.Is(err, finder.ErrSearchTooLarge):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrIndexNotLoaded):
		http.Error(w, "Skinset data is not loaded yet", http.StatusServiceUnavailable)
	default:
		log.Printf("ERROR [%s]: %v", op, err)
		http.Error(w, "Failed to resolve comps", http.StatusInternalServerError)
	}
}
