package client_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dom/league-skinset-finder/internal/client"
	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/finder"
	"github.com/dom/league-skinset-finder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_Resolve(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedReference(t, ts)
	c := client.NewAPIClient(ts.BaseURL() + "/")
	ctx := context.Background()

	resp, err := c.Resolve(ctx, client.ResolveRequest{
		Players: []client.Player{
			{Name: "Alice", Champions: []finder.Candidate{{Champion: "Ahri"}}},
			{Champions: []finder.Candidate{{Champion: "Lux", Lanes: domain.NewLaneSet(domain.LaneSupport)}}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Player 2"}, resp.Players)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, []finder.SkinsetID{"Star Guardian"}, resp.Results[0].Skinsets)

	_, err = c.Resolve(ctx, client.ResolveRequest{})
	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, statusErr.Message, "invalid roster")
}

func TestAPIClient_Skinsets(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedReference(t, ts)
	c := client.NewAPIClient(ts.BaseURL())

	skinsets, err := c.Skinsets(context.Background())
	require.NoError(t, err)
	require.Len(t, skinsets, 2)
	assert.Equal(t, "arcade", skinsets[0].ID)
	assert.Equal(t, []string{"Ahri", "Caitlyn"}, skinsets[0].Champions)
}

func TestAPIClient_AdminFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	c := client.NewAPIClient(ts.BaseURL())
	ctx := context.Background()

	_, err := c.Login(ctx, "wrong")
	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)

	_, err = c.ImportReference(ctx, "", strings.NewReader(testutil.ReferenceYAML))
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)

	token, err := c.Login(ctx, testutil.AdminPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	result, err := c.ImportReference(ctx, token, strings.NewReader(testutil.ReferenceYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Skinsets)
	assert.Equal(t, 4, result.Champions)

	skinsets, err := c.Skinsets(ctx)
	require.NoError(t, err)
	assert.Len(t, skinsets, 2)
}
