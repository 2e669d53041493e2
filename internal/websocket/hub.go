// Package websocket hosts the altar room: one shared real-time space where
// everyone connected during the event sees bursts, promptings, and the
// admin-steered focus point.
package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/yfcm/prayer-chain/internal/presence"
)

type FocusRequest struct {
	Client     *Client
	PointIndex int
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	setFocus   chan *FocusRequest
	syncState  chan *Client
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool

	// focusedPoint is the prayer point the room is currently centered on,
	// nil until an admin sets one.
	focusedPoint *int

	tracker *presence.Tracker
	mu      sync.RWMutex
}

func NewHub(tracker *presence.Tracker) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 64),
		setFocus:   make(chan *FocusRequest),
		syncState:  make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		tracker:    tracker,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()
			h.tracker.Heartbeat(client.userID)
			h.sendState(client)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()
			h.tracker.Leave(client.userID)

		case msg := <-h.broadcast:
			h.broadcastAll(msg)

		case req := <-h.setFocus:
			point := req.PointIndex
			h.mu.Lock()
			h.focusedPoint = &point
			h.mu.Unlock()
			h.broadcastAll(mustMessage(MessageTypeFocusChanged, FocusChangedPayload{
				PointIndex: point,
				UserName:   req.Client.userName,
			}))

		case client := <-h.syncState:
			h.sendState(client)
		}
	}
}

// Stop gracefully shuts the room down, waiting for Run() to exit.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister safely removes a client, tolerating a hub that is stopping.
func (h *Hub) Unregister(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()

	if stopped {
		return
	}

	select {
	case h.unregister <- client:
	default:
	}
}

// BroadcastPresence pushes the online count to everyone in the room. Wired
// as the presence tracker's change callback.
func (h *Hub) BroadcastPresence(online int) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.broadcast <- mustMessage(MessageTypePresence, PresencePayload{Online: online}):
	default:
		log.Printf("websocket: dropping presence broadcast, hub busy")
	}
}

func (h *Hub) broadcastAll(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal broadcast: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		client.trySend(data)
	}
}

func (h *Hub) sendState(client *Client) {
	h.mu.RLock()
	focused := h.focusedPoint
	h.mu.RUnlock()

	client.Send(mustMessage(MessageTypeStateSync, StateSyncPayload{
		Online:       h.tracker.Count(),
		FocusedPoint: focused,
	}))
}
