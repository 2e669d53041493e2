package handlers

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/yfcm/prayer-chain/internal/config"
	"github.com/yfcm/prayer-chain/internal/service"
	"github.com/yfcm/prayer-chain/internal/websocket"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced at the router; the browser's websocket
		// handshake does not carry preflight.
		return true
	},
}

type WebSocketHandler struct {
	hub         *websocket.Hub
	authService *service.AuthService
	cfg         *config.Config
}

func NewWebSocketHandler(hub *websocket.Hub, authService *service.AuthService, cfg *config.Config) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, authService: authService, cfg: cfg}
}

// Serve upgrades the connection into the altar room. Browsers cannot set an
// Authorization header on a websocket handshake, so the token rides the
// query string.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Token required", http.StatusUnauthorized)
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		log.Printf("ERROR [handlers.WebSocket] token validation failed: %v", err)
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	userIDStr, ok := (*claims)["sub"].(string)
	if !ok {
		http.Error(w, "Invalid token claims", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusUnauthorized)
		return
	}

	email, _ := (*claims)["email"].(string)
	userName, _ := (*claims)["name"].(string)
	if userName == "" {
		userName = "Intercessor"
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [handlers.WebSocket] upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, userID, userName, h.cfg.IsAdmin(email))
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
