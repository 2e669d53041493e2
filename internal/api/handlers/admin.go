package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/yfcm/prayer-chain/internal/service"
)

// AdminHandler serves the organizer dashboard endpoints that do not belong
// to a single feature area.
type AdminHandler struct {
	authService *service.AuthService
}

func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

type registrantResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Location    string `json:"location,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

// ListUsers returns every registrant, oldest first. The dashboard renders
// this list and exports it as CSV.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]registrantResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, registrantResponse{
			ID:          u.ID.String(),
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Location:    u.Location,
			CreatedAt:   u.CreatedAt.UnixMilli(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
