package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/yfcm/prayer-chain/internal/api/middleware"
	"github.com/yfcm/prayer-chain/internal/domain"
	"github.com/yfcm/prayer-chain/internal/service"
)

type WatchHandler struct {
	watchService *service.WatchService
}

func NewWatchHandler(watchService *service.WatchService) *WatchHandler {
	return &WatchHandler{watchService: watchService}
}

type ClaimResponse struct {
	Claimed  bool         `json:"claimed"`
	Released bool         `json:"released"`
	Notice   string       `json:"notice,omitempty"`
	Slot     *domain.Slot `json:"slot,omitempty"`
}

// List returns all 24 slots. The Mine flag is filled in when the caller is
// authenticated; anonymous browsing still sees occupancy.
func (h *WatchHandler) List(w http.ResponseWriter, r *http.Request) {
	var slots []domain.Slot
	var err error

	if userID, ok := middleware.GetUserID(r.Context()); ok {
		slots, err = h.watchService.ListSlots(r.Context(), &userID)
	} else {
		slots, err = h.watchService.ListSlots(r.Context(), nil)
	}
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"slots": slots})
}

// Claim handles the slot button. Conflicts with the one-watch rule come back
// as 200 with an informational notice, matching the wall's toast behavior:
// "you are already posted" is not an error condition.
func (h *WatchHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	hourIdx, err := strconv.Atoi(chi.URLParam(r, "hourIdx"))
	if err != nil {
		http.Error(w, "Invalid hour index", http.StatusBadRequest)
		return
	}

	userName := middleware.GetUserName(r.Context())
	if userName == "" {
		userName = "A Watchman"
	}

	result, err := h.watchService.Claim(r.Context(), userID, userName, hourIdx, middleware.GetIsAdmin(r.Context()))

	w.Header().Set("Content-Type", "application/json")
	switch {
	case errors.Is(err, domain.ErrInvalidHour):
		http.Error(w, "Invalid hour index", http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrAlreadyPosted):
		json.NewEncoder(w).Encode(ClaimResponse{
			Notice: "You are already posted here. Stand firm in your watch!",
		})
		return
	case errors.Is(err, domain.ErrAlreadyCommitted):
		json.NewEncoder(w).Encode(ClaimResponse{
			Notice: "You have already committed to a watch. Please remain faithful to your post.",
		})
		return
	case err != nil:
		http.Error(w, "Failed to record watch. Please try again.", http.StatusInternalServerError)
		return
	}

	if result.Released {
		json.NewEncoder(w).Encode(ClaimResponse{Released: true, Notice: "Watch removed."})
		return
	}

	json.NewEncoder(w).Encode(ClaimResponse{
		Claimed: true,
		Notice:  "Your watch has been recorded in the scrolls.",
	})
}

// ClearUser releases every slot a user holds. Admin moderation path.
func (h *WatchHandler) ClearUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	if err := h.watchService.ClearUserCommitments(r.Context(), userID); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *WatchHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	coverage, err := h.watchService.Coverage(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(coverage)
}
