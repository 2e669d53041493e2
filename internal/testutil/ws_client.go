package testutil

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	gorillaWS "github.com/gorilla/websocket"
	"github.com/yfcm/prayer-chain/internal/websocket"
)

// WSClient is a test WebSocket client for the altar room
type WSClient struct {
	t        *testing.T
	conn     *gorillaWS.Conn
	messages chan *websocket.Message
	errors   chan error
	done     chan struct{}
	mu       sync.Mutex
}

// NewWSClient connects to the altar room
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:        t,
		conn:     conn,
		messages: make(chan *websocket.Message, 100),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

func (c *WSClient) readPump() {
	defer close(c.messages)
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				select {
				case <-c.done:
					return
				case c.errors <- err:
				}
				return
			}

			var msg websocket.Message
			if err := json.Unmarshal(data, &msg); err != nil {
				c.errors <- err
				continue
			}

			select {
			case c.messages <- &msg:
			case <-c.done:
				return
			}
		}
	}
}

// Close closes the WebSocket connection gracefully
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

func (c *WSClient) send(msgType websocket.MessageType, payload interface{}) {
	c.t.Helper()

	msg, err := websocket.NewMessage(msgType, payload)
	if err != nil {
		c.t.Fatalf("failed to build %s message: %v", msgType, err)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Fatalf("failed to marshal %s message: %v", msgType, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteMessage(gorillaWS.TextMessage, data); err != nil {
		c.t.Fatalf("failed to send %s message: %v", msgType, err)
	}
}

// SendBurst fires an emoji burst into the room
func (c *WSClient) SendBurst(emoji string) {
	c.send(websocket.MessageTypeBurst, websocket.BurstPayload{Emoji: emoji})
}

// SendPrompting shares a short prompting with the room
func (c *WSClient) SendPrompting(text string) {
	c.send(websocket.MessageTypePrompting, websocket.PromptingPayload{Text: text})
}

// SendFocus steers the room's focus to a prayer point (admin only)
func (c *WSClient) SendFocus(pointIndex int) {
	c.send(websocket.MessageTypeFocus, websocket.FocusPayload{PointIndex: pointIndex})
}

// SendSync requests a fresh state snapshot
func (c *WSClient) SendSync() {
	c.send(websocket.MessageTypeSync, struct{}{})
}

// WaitForMessage waits for the next message of the given type, discarding
// others, up to the timeout.
func (c *WSClient) WaitForMessage(msgType websocket.MessageType, timeout time.Duration) *websocket.Message {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case msg, ok := <-c.messages:
			if !ok {
				c.t.Fatalf("connection closed while waiting for %s", msgType)
				return nil
			}
			if msg.Type == msgType {
				return msg
			}
		case err := <-c.errors:
			c.t.Fatalf("websocket error while waiting for %s: %v", msgType, err)
			return nil
		case <-deadline:
			c.t.Fatalf("timed out waiting for %s message", msgType)
			return nil
		}
	}
}

// DialRaw attempts a bare websocket handshake, returning the HTTP response
// so callers can assert on rejected upgrades.
func DialRaw(url string) (*gorillaWS.Conn, *http.Response, error) {
	dialer := gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second
	return dialer.Dial(url, nil)
}

// DecodePayload unmarshals a message payload into out
func DecodePayload(t *testing.T, msg *websocket.Message, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		t.Fatalf("failed to decode %s payload: %v", msg.Type, err)
	}
}
