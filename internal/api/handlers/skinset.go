package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/go-chi/chi/v5"
)

type SkinsetHandler struct {
	skinsetService *service.SkinsetService
}

func NewSkinsetHandler(skinsetService *service.SkinsetService) *SkinsetHandler {
	return &SkinsetHandler{skinsetService: skinsetService}
}

type SkinsetResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Champions []string `json:"champions"`
}

type SkinsetsResponse struct {
	Skinsets []SkinsetResponse `json:"skinsets"`
}

func toSkinsetResponse(s *domain.Skinset) SkinsetResponse {
	return SkinsetResponse{
		ID:        s.ID,
		Name:      s.Name,
		Champions: s.ChampionIDs(),
	}
}

func (h *SkinsetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	skinsets, err := h.skinsetService.GetAll(r.Context())
	if err != nil {
		log.Printf("ERROR [skinset.GetAll]: %v", err)
		http.Error(w, "Failed to get skinsets", http.StatusInternalServerError)
		return
	}

	resp := SkinsetsResponse{Skinsets: make([]SkinsetResponse, len(skinsets))}
	for i, s := range skinsets {
		resp.Skinsets[i] = toSkinsetResponse(s)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *SkinsetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	skinset, err := h.skinsetService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSkinsetNotFound) {
			http.Error(w, "Skinset not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [skinset.Get] skinsetID=%s: %v", id, err)
		http.Error(w, "Failed to get skinset", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toSkinsetResponse(skinset))
}
