package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/yfcm/prayer-chain/internal/api/middleware"
	"github.com/yfcm/prayer-chain/internal/domain"
	"github.com/yfcm/prayer-chain/internal/service"
)

type PrayerHandler struct {
	prayerService *service.PrayerService
}

func NewPrayerHandler(prayerService *service.PrayerService) *PrayerHandler {
	return &PrayerHandler{prayerService: prayerService}
}

type prayerResponse struct {
	ID        string   `json:"id"`
	UserName  string   `json:"userName"`
	Content   string   `json:"content"`
	AmenCount int      `json:"amenCount"`
	AmenedBy  []string `json:"amenedBy"`
	CreatedAt int64    `json:"createdAt"`
}

func toPrayerResponse(p *domain.PrayerPost) prayerResponse {
	ids := p.AmenedByIDs()
	amenedBy := make([]string, 0, len(ids))
	for _, id := range ids {
		amenedBy = append(amenedBy, id.String())
	}
	return prayerResponse{
		ID:        p.ID.String(),
		UserName:  p.UserName,
		Content:   p.Content,
		AmenCount: len(ids),
		AmenedBy:  amenedBy,
		CreatedAt: p.CreatedAt.UnixMilli(),
	}
}

func (h *PrayerHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.prayerService.List(r.Context(), 50)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]prayerResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, toPrayerResponse(p))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"prayers": resp})
}

type CreatePrayerRequest struct {
	Content string `json:"content"`
}

func (h *PrayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreatePrayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userName := middleware.GetUserName(r.Context())
	if userName == "" {
		userName = "Intercessor"
	}

	post, err := h.prayerService.Post(r.Context(), userID, userName, req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyContent) || errors.Is(err, domain.ErrContentTooLong) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toPrayerResponse(post))
}

func (h *PrayerHandler) Amen(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	prayerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid prayer ID", http.StatusBadRequest)
		return
	}

	post, err := h.prayerService.Amen(r.Context(), prayerID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPrayerNotFound) {
			http.Error(w, "Prayer not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toPrayerResponse(post))
}

func (h *PrayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	prayerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid prayer ID", http.StatusBadRequest)
		return
	}

	if err := h.prayerService.Delete(r.Context(), prayerID); err != nil {
		if errors.Is(err, domain.ErrPrayerNotFound) {
			http.Error(w, "Prayer not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
