package handlers_test

import (
	"testing"
	"time"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/finder"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/dom/league-skinset-finder/internal/testutil"
	"github.com/dom/league-skinset-finder/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const streamTimeout = 5 * time.Second

func TestStreamHandler_Resolve(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedReference(t, ts)

	client := testutil.NewWSClient(t, ts.StreamURL())
	client.Resolve(twoPlayerInput())

	results, done := client.CollectResults(streamTimeout)
	require.Len(t, results, 2)
	assert.Equal(t, 2, done.Count)
	assert.Equal(t, []string{"Alice", "Player 2"}, done.Players)
	assert.Equal(t, ts.Services.Finder.IndexVersion(), done.IndexVersion)
	assert.NotEmpty(t, done.QueryID)

	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, finder.Assignment{
		{Champion: "Ahri", Lane: domain.LaneMid},
		{Champion: "Lux", Lane: domain.LaneSupport},
	}, results[0].Picks)
	assert.Equal(t, []finder.SkinsetID{"Star Guardian"}, results[0].Skinsets)

	assert.Equal(t, 1, results[1].Index)
	assert.Equal(t, []finder.SkinsetID{"Arcade"}, results[1].Skinsets)
}

func TestStreamHandler_MatchesResolve(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedReference(t, ts)

	in := twoPlayerInput()
	in.ExcludedSkinsets = []string{"arcade"}

	resolved, err := ts.Services.Finder.Resolve(t.Context(), in)
	require.NoError(t, err)

	client := testutil.NewWSClient(t, ts.StreamURL())
	client.Resolve(in)

	results, done := client.CollectResults(streamTimeout)
	require.Len(t, results, len(resolved.Results))
	assert.Equal(t, len(resolved.Results), done.Count)
	for i, r := range results {
		assert.Equal(t, resolved.Results[i].Assignment, r.Picks)
		assert.Equal(t, resolved.Results[i].Skinsets, r.Skinsets)
	}
}

func TestStreamHandler_SequencesQueries(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedReference(t, ts)

	client := testutil.NewWSClient(t, ts.StreamURL())

	client.Resolve(twoPlayerInput())
	client.CollectResults(streamTimeout)

	client.Resolve(twoPlayerInput())
	msg := client.ExpectMessage(websocket.MessageTypeResult, streamTimeout)
	assert.Equal(t, 2, msg.Seq)
}

func TestStreamHandler_Errors(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedReference(t, ts)

	tests := []struct {
		name         string
		send         func(*testutil.WSClient)
		expectedCode string
	}{
		{
			name: "empty roster",
			send: func(c *testutil.WSClient) {
				c.Resolve(service.ResolveInput{})
			},
			expectedCode: websocket.ErrCodeInvalidRoster,
		},
		{
			name: "too many players",
			send: func(c *testutil.WSClient) {
				in := service.ResolveInput{}
				for i := 0; i < 6; i++ {
					in.Players = append(in.Players, service.PlayerInput{
						Champions: []finder.Candidate{{Champion: "Ahri"}},
					})
				}
				c.Resolve(in)
			},
			expectedCode: websocket.ErrCodeRosterTooLarge,
		},
		{
			name: "unknown type",
			send: func(c *testutil.WSClient) {
				c.Send(websocket.MessageType("SUBSCRIBE"), nil)
			},
			expectedCode: websocket.ErrCodeUnknownType,
		},
		{
			name: "bad payload",
			send: func(c *testutil.WSClient) {
				c.Send(websocket.MessageTypeResolve, "players")
			},
			expectedCode: websocket.ErrCodeInvalidPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testutil.NewWSClient(t, ts.StreamURL())
			tt.send(client)

			payload := client.ExpectError(streamTimeout)
			assert.Equal(t, tt.expectedCode, payload.Code)
			assert.NotEmpty(t, payload.Message)
		})
	}
}

func TestStreamHandler_RecoversAfterError(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedReference(t, ts)

	client := testutil.NewWSClient(t, ts.StreamURL())

	client.Resolve(service.ResolveInput{})
	client.ExpectError(streamTimeout)

	client.Resolve(twoPlayerInput())
	results, done := client.CollectResults(streamTimeout)
	assert.Len(t, results, 2)
	assert.Equal(t, 2, done.Count)
}
