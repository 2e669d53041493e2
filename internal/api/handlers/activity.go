package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/yfcm/prayer-chain/internal/domain"
	"github.com/yfcm/prayer-chain/internal/service"
)

type ActivityHandler struct {
	activityService *service.ActivityService
}

func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

type activityResponse struct {
	ID        string              `json:"id"`
	UserName  string              `json:"userName"`
	Type      domain.ActivityType `json:"type"`
	Location  string              `json:"location,omitempty"`
	CreatedAt int64               `json:"createdAt"`
}

func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events, err := h.activityService.Recent(r.Context(), limit)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]activityResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, activityResponse{
			ID:        e.ID.String(),
			UserName:  e.UserName,
			Type:      e.Type,
			Location:  e.Location,
			CreatedAt: e.CreatedAt.UnixMilli(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"events": resp})
}
