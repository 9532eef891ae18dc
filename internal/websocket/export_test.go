package websocket

import (
	"context"

	"github.com/dom/league-skinset-finder/internal/service"
)

func (s *Session) RunQuery(ctx context.Context, seq int, input service.ResolveInput) {
	s.runQuery(ctx, seq, input)
}

func (s *Session) Queued() int {
	return len(s.send)
}
