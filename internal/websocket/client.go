package websocket

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4 * 1024
	maxPromptingChars = 100
)

var allowedEmojis = map[string]bool{
	"🔥": true,
	"🙏": true,
	"🙌": true,
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	userID   uuid.UUID
	userName string
	isAdmin  bool
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, userName string, isAdmin bool) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		userID:   userID,
		userName: userName,
		isAdmin:  isAdmin,
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("failed to unmarshal message: %v", err)
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeBurst:
		var payload BurstPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid burst payload")
			return
		}
		if !allowedEmojis[payload.Emoji] {
			c.sendError("INVALID_EMOJI", "Unsupported emoji")
			return
		}
		c.hub.broadcast <- mustMessage(MessageTypeBurstShared, BurstSharedPayload{
			Emoji:    payload.Emoji,
			UserName: c.userName,
		})

	case MessageTypePrompting:
		var payload PromptingPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid prompting payload")
			return
		}
		text := strings.TrimSpace(payload.Text)
		if text == "" || len([]rune(text)) > maxPromptingChars {
			c.sendError("INVALID_PROMPTING", "Prompting must be 1-100 characters")
			return
		}
		c.hub.broadcast <- mustMessage(MessageTypePromptingShared, PromptingSharedPayload{
			Text:     text,
			UserName: c.userName,
		})

	case MessageTypeFocus:
		// Only organizers steer the room's focus.
		if !c.isAdmin {
			c.sendError("FORBIDDEN", "Only admins can set the focus point")
			return
		}
		var payload FocusPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid focus payload")
			return
		}
		c.hub.setFocus <- &FocusRequest{
			Client:     c,
			PointIndex: payload.PointIndex,
		}

	case MessageTypeSync:
		c.hub.syncState <- c
	}
}

func (c *Client) sendError(code, message string) {
	msg, _ := NewMessage(MessageTypeError, ErrorPayload{
		Code:    code,
		Message: message,
	})
	data, _ := json.Marshal(msg)
	c.trySend(data)
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal message: %v", err)
		return
	}
	c.trySend(data)
}

// trySend drops the message if the client's buffer is full rather than
// blocking the hub.
func (c *Client) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) Close() {
	close(c.send)
}

func mustMessage(msgType MessageType, payload interface{}) *Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		log.Printf("failed to build %s message: %v", msgType, err)
		return &Message{Type: msgType, Timestamp: time.Now().UnixMilli()}
	}
	return msg
}
