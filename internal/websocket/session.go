package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dom/league-skinset-finder/internal/finder"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

// Resolver streams finder results for a resolve request.
type Resolver interface {
	Stream(ctx context.Context, in service.ResolveInput, fn func(finder.ResultEntry) error) (*service.StreamSummary, error)
}

// Session serves one websocket connection. Each RESOLVE cancels the query
// still running for the connection, if any, and starts a new one.
type Session struct {
	conn     *websocket.Conn
	resolver Resolver
	send     chan []byte

	mu     sync.Mutex
	seq    int
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSession(conn *websocket.Conn, resolver Resolver) *Session {
	return &Session{
		conn:     conn,
		resolver: resolver,
		send:     make(chan []byte, 256),
	}
}

// Run blocks until the connection closes or ctx is done.
func (s *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.WritePump(ctx)
	s.ReadPump(ctx)

	s.cancelQuery()
	s.wg.Wait()
}

func (s *Session) ReadPump(ctx context.Context) {
	defer s.conn.Close()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError(ctx, 0, ErrCodeInvalidPayload, "Invalid message")
			continue
		}

		s.handleMessage(ctx, &msg)
	}
}

func (s *Session) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := s.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Session) handleMessage(ctx context.Context, msg *Message) {
	switch msg.Type {
	case MessageTypeResolve:
		var input service.ResolveInput
		if err := json.Unmarshal(msg.Payload, &input); err != nil {
			s.sendError(ctx, 0, ErrCodeInvalidPayload, "Invalid resolve payload")
			return
		}
		s.startQuery(ctx, input)

	case MessageTypeCancel:
		s.cancelQuery()

	default:
		s.sendError(ctx, 0, ErrCodeUnknownType, "Unknown message type: "+string(msg.Type))
	}
}

func (s *Session) startQuery(ctx context.Context, input service.ResolveInput) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	qctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.runQuery(qctx, seq, input)
	}()
}

func (s *Session) cancelQuery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) runQuery(ctx context.Context, seq int, input service.ResolveInput) {
	index := 0
	summary, err := s.resolver.Stream(ctx, input, func(e finder.ResultEntry) error {
		err := s.enqueue(ctx, seq, MessageTypeResult, ResultPayload{
			Index:    index,
			Picks:    e.Assignment,
			Skinsets: e.Skinsets,
		})
		index++
		return err
	})
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		code, message := errorCode(err)
		if code == ErrCodeInternal {
			log.Printf("ERROR [websocket.runQuery]: %v", err)
		}
		s.sendError(ctx, seq, code, message)
		return
	}

	s.enqueue(ctx, seq, MessageTypeDone, DonePayload{
		QueryID:      summary.QueryID.String(),
		IndexVersion: summary.IndexVersion,
		Players:      summary.Players,
		Count:        summary.Count,
	})
}

// enqueue blocks while the send buffer is full, so a slow reader slows the query down.
// Nothing is queued once ctx is done.
func (s *Session) enqueue(ctx context.Context, seq int, msgType MessageType, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	msg.Seq = seq
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case s.send <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) sendError(ctx context.Context, seq int, code, message string) {
	if err := s.enqueue(ctx, seq, MessageTypeError, ErrorPayload{Code: code, Message: message}); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("failed to send error: %v", err)
	}
}

func errorCode(err error) (string, string) {
	switch {
	case errors.Is(err, finder.ErrInvalidInput):
		return ErrCodeInvalidRoster, err.Error()
	case errors.Is(err, finder.ErrRosterTooLarge):
		return ErrCodeRosterTooLarge, err.Error()
	case errors.Is(err, finder.ErrSearchTooLarge):
		return ErrCodeSearchTooLarge, err.Error()
	case errors.Is(err, service.ErrIndexNotLoaded):
		return ErrCodeIndexNotLoaded, "Skinset data is not loaded yet"
	default:
		return ErrCodeInternal, "Failed to resolve comps"
	}
}
