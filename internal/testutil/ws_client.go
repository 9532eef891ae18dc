package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/dom/league-skinset-finder/internal/websocket"
	gorillaWS "github.com/gorilla/websocket"
)

// WSClient is a test WebSocket client
type WSClient struct {
	t        *testing.T
	conn     *gorillaWS.Conn
	messages chan *websocket.Message
	errors   chan error
	done     chan struct{}
	mu       sync.Mutex
}

// NewWSClient creates a new WebSocket test client
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := *gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:        t,
		conn:     conn,
		messages: make(chan *websocket.Message, 1024),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

// readPump reads messages from the WebSocket connection
func (c *WSClient) readPump() {
	defer close(c.messages)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			case c.errors <- err:
			default:
			}
			return
		}

		var msg websocket.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			select {
			case c.errors <- err:
			default:
			}
			continue
		}

		select {
		case c.messages <- &msg:
		case <-c.done:
			return
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

// Send writes a raw message envelope
func (c *WSClient) Send(msgType websocket.MessageType, payload interface{}) {
	c.t.Helper()

	msg, err := websocket.NewMessage(msgType, payload)
	if err != nil {
		c.t.Fatalf("failed to build message: %v", err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Fatalf("failed to marshal message: %v", err)
	}

	c.mu.Lock()
	err = c.conn.WriteMessage(gorillaWS.TextMessage, data)
	c.mu.Unlock()

	if err != nil {
		c.t.Fatalf("failed to send message: %v", err)
	}
}

// Resolve starts a streamed resolve
func (c *WSClient) Resolve(input service.ResolveInput) {
	c.t.Helper()
	c.Send(websocket.MessageTypeResolve, input)
}

// ExpectMessage waits for the next message and checks its type
func (c *WSClient) ExpectMessage(msgType websocket.MessageType, timeout time.Duration) *websocket.Message {
	c.t.Helper()

	msg := c.ExpectAnyMessage(timeout)
	if msg.Type != msgType {
		c.t.Fatalf("expected message type %s, got %s: %s", msgType, msg.Type, string(msg.Payload))
	}
	return msg
}

// ExpectAnyMessage waits for the next message of any type
func (c *WSClient) ExpectAnyMessage(timeout time.Duration) *websocket.Message {
	c.t.Helper()

	select {
	case msg, ok := <-c.messages:
		if !ok {
			c.t.Fatalf("connection closed while waiting for message")
		}
		return msg
	case err := <-c.errors:
		c.t.Fatalf("websocket error: %v", err)
	case <-time.After(timeout):
		c.t.Fatalf("timed out waiting for message")
	}
	return nil
}

// CollectResults reads RESULT messages until DONE and returns both
func (c *WSClient) CollectResults(timeout time.Duration) ([]websocket.ResultPayload, *websocket.DonePayload) {
	c.t.Helper()

	var results []websocket.ResultPayload
	deadline := time.Now().Add(timeout)
	for {
		msg := c.ExpectAnyMessage(time.Until(deadline))
		switch msg.Type {
		case websocket.MessageTypeResult:
			var payload websocket.ResultPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				c.t.Fatalf("failed to decode result: %v", err)
			}
			results = append(results, payload)
		case websocket.MessageTypeDone:
			var payload websocket.DonePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				c.t.Fatalf("failed to decode done: %v", err)
			}
			return results, &payload
		default:
			c.t.Fatalf("unexpected message %s: %s", msg.Type, string(msg.Payload))
		}
	}
}

// ExpectError waits for an ERROR message and returns its payload
func (c *WSClient) ExpectError(timeout time.Duration) *websocket.ErrorPayload {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeError, timeout)
	var payload websocket.ErrorPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode error: %v", err)
	}
	return &payload
}
