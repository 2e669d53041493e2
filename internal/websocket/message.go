package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// Client to Server
	MessageTypeBurst     MessageType = "BURST"
	MessageTypePrompting MessageType = "PROMPTING"
	MessageTypeFocus     MessageType = "FOCUS"
	MessageTypeSync      MessageType = "SYNC"

	// Server to Client
	MessageTypeBurstShared     MessageType = "BURST_SHARED"
	MessageTypePromptingShared MessageType = "PROMPTING_SHARED"
	MessageTypeFocusChanged    MessageType = "FOCUS_CHANGED"
	MessageTypePresence        MessageType = "PRESENCE"
	MessageTypeStateSync       MessageType = "STATE_SYNC"
	MessageTypeError           MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Client to Server payloads

type BurstPayload struct {
	Emoji string `json:"emoji"`
}

type PromptingPayload struct {
	Text string `json:"text"`
}

type FocusPayload struct {
	PointIndex int `json:"pointIndex"`
}

// Server to Client payloads

type BurstSharedPayload struct {
	Emoji    string `json:"emoji"`
	UserName string `json:"userName"`
}

type PromptingSharedPayload struct {
	Text     string `json:"text"`
	UserName string `json:"userName"`
}

type FocusChangedPayload struct {
	PointIndex int    `json:"pointIndex"`
	UserName   string `json:"userName"`
}

type PresencePayload struct {
	Online int `json:"online"`
}

type StateSyncPayload struct {
	Online       int  `json:"online"`
	FocusedPoint *int `json:"focusedPoint"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
