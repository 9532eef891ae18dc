package handlers

import (
	"log"
	"net/http"

	"github.com/dom/league-skinset-finder/internal/websocket"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

type StreamHandler struct {
	resolver websocket.Resolver
}

func NewStreamHandler(resolver websocket.Resolver) *StreamHandler {
	return &StreamHandler{resolver: resolver}
}

func (h *StreamHandler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [stream.Handle] upgrade failed: %v", err)
		return
	}

	websocket.NewSession(conn, h.resolver).Run(r.Context())
}
