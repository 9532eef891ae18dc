package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/league-skinset-finder/internal/finder"
)

type MessageType string

const (
	// Client to Server
	MessageTypeResolve MessageType = "RESOLVE"
	MessageTypeCancel  MessageType = "CANCEL"

	// Server to Client
	MessageTypeResult MessageType = "RESULT"
	MessageTypeDone   MessageType = "DONE"
	MessageTypeError  MessageType = "ERROR"
)

// Message is the envelope for every frame. Seq is the number of the resolve
// request a server message belongs to, starting at 1 per connection.
type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Seq       int             `json:"seq,omitempty"`
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

// Server to Client payloads

type ResultPayload struct {
	Index    int                `json:"index"`
	Picks    finder.Assignment  `json:"picks"`
	Skinsets []finder.SkinsetID `json:"skinsets"`
}

type DonePayload struct {
	QueryID      string   `json:"queryId"`
	IndexVersion string   `json:"indexVersion"`
	Players      []string `json:"players"`
	Count        int      `json:"count"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	ErrCodeInvalidPayload = "INVALID_PAYLOAD"
	ErrCodeUnknownType    = "UNKNOWN_TYPE"
	ErrCodeInvalidRoster  = "INVALID_ROSTER"
	ErrCodeRosterTooLarge = "ROSTER_TOO_LARGE"
	ErrCodeSearchTooLarge = "SEARCH_TOO_LARGE"
	ErrCodeIndexNotLoaded = "INDEX_NOT_LOADED"
	ErrCodeInternal       = "INTERNAL"
)
