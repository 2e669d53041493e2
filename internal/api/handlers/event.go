package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yfcm/prayer-chain/internal/api/middleware"
	"github.com/yfcm/prayer-chain/internal/domain"
	"github.com/yfcm/prayer-chain/internal/service"
	"gorm.io/datatypes"
)

type EventHandler struct {
	eventService *service.EventService
}

func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Timing returns the live event clock. Clients poll this every second in
// place of the old config-document subscription.
func (h *EventHandler) Timing(w http.ResponseWriter, r *http.Request) {
	timing := h.eventService.Timing(r.Context(), time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(timing)
}

type UpdateStartDateRequest struct {
	StartDate time.Time `json:"startDate"`
}

func (h *EventHandler) UpdateStartDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateStartDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StartDate.IsZero() {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.eventService.UpdateStartDate(r.Context(), userID, req.StartDate); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

type themeResponse struct {
	HourBlock       int      `json:"hourBlock"`
	Title           string   `json:"title"`
	Scripture       string   `json:"scripture"`
	Points          []string `json:"points"`
	PrimaryColor    string   `json:"primaryColor"`
	GlowColor       string   `json:"glowColor"`
	BackgroundColor string   `json:"backgroundColor"`
}

func toThemeResponse(t domain.PrayerTheme) themeResponse {
	return themeResponse{
		HourBlock:       t.HourBlock,
		Title:           t.Title,
		Scripture:       t.Scripture,
		Points:          t.PointList(),
		PrimaryColor:    t.PrimaryColor,
		GlowColor:       t.GlowColor,
		BackgroundColor: t.BackgroundColor,
	}
}

func (h *EventHandler) Themes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.eventService.Themes(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]themeResponse, 0, len(themes))
	for _, t := range themes {
		resp = append(resp, toThemeResponse(t))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"themes": resp})
}

func (h *EventHandler) Theme(w http.ResponseWriter, r *http.Request) {
	hourBlock, err := strconv.Atoi(chi.URLParam(r, "hourBlock"))
	if err != nil || hourBlock < 0 || hourBlock > 23 {
		http.Error(w, "Invalid hour block", http.StatusBadRequest)
		return
	}

	theme, err := h.eventService.Theme(r.Context(), hourBlock)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toThemeResponse(theme))
}

type UpdateThemeRequest struct {
	Title           string   `json:"title"`
	Scripture       string   `json:"scripture"`
	Points          []string `json:"points"`
	PrimaryColor    string   `json:"primaryColor"`
	GlowColor       string   `json:"glowColor"`
	BackgroundColor string   `json:"backgroundColor"`
}

func (h *EventHandler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	hourBlock, err := strconv.Atoi(chi.URLParam(r, "hourBlock"))
	if err != nil || !isThemeBlock(hourBlock) {
		http.Error(w, "Invalid hour block", http.StatusBadRequest)
		return
	}

	var req UpdateThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	theme := &domain.PrayerTheme{
		HourBlock:       hourBlock,
		Title:           req.Title,
		Scripture:       req.Scripture,
		PrimaryColor:    req.PrimaryColor,
		GlowColor:       req.GlowColor,
		BackgroundColor: req.BackgroundColor,
	}
	if len(req.Points) > 0 {
		encoded, err := json.Marshal(req.Points)
		if err != nil {
			http.Error(w, "Invalid points", http.StatusBadRequest)
			return
		}
		theme.Points = datatypes.JSON(encoded)
	}

	if err := h.eventService.UpdateTheme(r.Context(), theme); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func isThemeBlock(hourBlock int) bool {
	for _, b := range domain.ThemeBlocks {
		if b == hourBlock {
			return true
		}
	}
	return false
}
