package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dom/league-skinset-finder/internal/refdata"
	"github.com/dom/league-skinset-finder/internal/service"
)

const maxReferenceBody = 4 << 20

type AdminHandler struct {
	adminService   *service.AdminService
	skinsetService *service.SkinsetService
}

func NewAdminHandler(adminService *service.AdminService, skinsetService *service.SkinsetService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		skinsetService: skinsetService,
	}
}

type TokenRequest struct {
	Password string `json:"password"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *AdminHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Password == "" {
		http.Error(w, "Password is required", http.StatusBadRequest)
		return
	}

	token, err := h.adminService.IssueToken(req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		case errors.Is(err, service.ErrAdminDisabled):
			http.Error(w, "Admin access is disabled", http.StatusForbidden)
		default:
			log.Printf("ERROR [admin.Token]: %v", err)
			http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TokenResponse{Token: token.Token, ExpiresAt: token.ExpiresAt})
}

// ImportReference replaces the skinset and lane data with a YAML document.
func (h *AdminHandler) ImportReference(w http.ResponseWriter, r *http.Request) {
	ds, err := refdata.Load(http.MaxBytesReader(w, r.Body, maxReferenceBody))
	if err != nil {
		if errors.Is(err, refdata.ErrInvalidDataset) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.skinsetService.Import(r.Context(), ds)
	if err != nil {
		log.Printf("ERROR [admin.ImportReference]: %v", err)
		http.Error(w, "Failed to import reference data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
