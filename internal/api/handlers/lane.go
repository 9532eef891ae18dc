package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/league-skinset-finder/internal/domain"
)

type LaneResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Lanes lists the lanes in enumeration order.
func Lanes(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Lanes []LaneResponse `json:"lanes"`
	}{Lanes: make([]LaneResponse, len(domain.AllLanes))}

	for i, l := range domain.AllLanes {
		resp.Lanes[i] = LaneResponse{ID: l.String(), Name: l.DisplayName()}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
