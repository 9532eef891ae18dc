package handlers_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/finder"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/dom/league-skinset-finder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ResolveResponse struct {
	QueryID      string               `json:"queryId"`
	IndexVersion string               `json:"indexVersion"`
	Players      []string             `json:"players"`
	Count        int                  `json:"count"`
	Cached       bool                 `json:"cached"`
	ElapsedMs    int64                `json:"elapsedMs"`
	Results      []finder.ResultEntry `json:"results"`
}

func twoPlayerInput() service.ResolveInput {
	return service.ResolveInput{
		Players: []service.PlayerInput{
			{Name: "Alice", Champions: []finder.Candidate{{Champion: "Ahri"}}},
			{Champions: []finder.Candidate{{Champion: "Lux"}, {Champion: "Caitlyn"}}},
		},
	}
}

func postResolve(t *testing.T, ts *testutil.TestServer, body interface{}) *http.Response {
	t.Helper()
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/comps/resolve"), body, "")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestFinderHandler_Resolve(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedReference(t, ts)

	resp := postResolve(t, ts, twoPlayerInput())
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result ResolveResponse
	testutil.AssertJSONResponse(t, resp, &result)

	assert.NotEmpty(t, result.QueryID)
	assert.Equal(t, ts.Services.Finder.IndexVersion(), result.IndexVersion)
	assert.Equal(t, []string{"Alice", "Player 2"}, result.Players)
	require.Equal(t, 2, result.Count)
	require.Len(t, result.Results, 2)

	assert.Equal(t, finder.Assignment{
		{Champion: "Ahri", Lane: domain.LaneMid},
		{Champion: "Lux", Lane: domain.LaneSupport},
	}, result.Results[0].Assignment)
	assert.Equal(t, []finder.SkinsetID{"Star Guardian"}, result.Results[0].Skinsets)

	assert.Equal(t, finder.Assignment{
		{Champion: "Ahri", Lane: domain.LaneMid},
		{Champion: "Caitlyn", Lane: domain.LaneBottom},
	}, result.Results[1].Assignment)
	assert.Equal(t, []finder.SkinsetID{"Arcade"}, result.Results[1].Skinsets)

	for _, e := range result.Results {
		testutil.AssertValidAssignment(t, e.Assignment)
	}
	testutil.AssertContainsSkinset(t, result.Results[0], "Star Guardian")
}

func TestFinderHandler_ResolveExcludesSkinsets(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedReference(t, ts)

	tests := []struct {
		name     string
		excluded []string
		want     []string
	}{
		{name: "by slug", excluded: []string{"star-guardian"}, want: []string{"Arcade"}},
		{name: "by name", excluded: []string{"Arcade"}, want: []string{"Star Guardian"}},
		{name: "both", excluded: []string{"Arcade", "Star Guardian"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := twoPlayerInput()
			in.ExcludedSkinsets = tt.excluded

			resp := postResolve(t, ts, in)
			defer resp.Body.Close()
			testutil.AssertStatusCode(t, resp, http.StatusOK)

			var result ResolveResponse
			testutil.AssertJSONResponse(t, resp, &result)

			var got []string
			for _, e := range result.Results {
				for _, s := range e.Skinsets {
					got = append(got, string(s))
				}
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), result.Count)
		})
	}
}

func TestFinderHandler_ResolveCached(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedReference(t, ts)

	first := postResolve(t, ts, twoPlayerInput())
	defer first.Body.Close()
	var firstResult ResolveResponse
	testutil.AssertJSONResponse(t, first, &firstResult)
	assert.False(t, firstResult.Cached)

	second := postResolve(t, ts, twoPlayerInput())
	defer second.Body.Close()
	var secondResult ResolveResponse
	testutil.AssertJSONResponse(t, second, &secondResult)
	assert.True(t, secondResult.Cached)
	assert.Equal(t, firstResult.Results, secondResult.Results)
	assert.NotEqual(t, firstResult.QueryID, secondResult.QueryID)
}

func TestFinderHandler_ResolveErrors(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedReference(t, ts)

	sixPlayers := service.ResolveInput{}
	for _, c := range []finder.ChampionID{"Ahri", "Lux", "Jinx", "Caitlyn", "Garen", "Vi"} {
		sixPlayers.Players = append(sixPlayers.Players, service.PlayerInput{
			Champions: []finder.Candidate{{Champion: c}},
		})
	}

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "malformed body",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request body",
		},
		{
			name:           "empty roster",
			body:           service.ResolveInput{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid roster",
		},
		{
			name: "every player excluded",
			body: service.ResolveInput{Players: []service.PlayerInput{
				{Exclude: true, Champions: []finder.Candidate{{Champion: "Ahri"}}},
			}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid roster",
		},
		{
			name: "duplicate champion for one player",
			body: service.ResolveInput{Players: []service.PlayerInput{
				{Champions: []finder.Candidate{{Champion: "Ahri"}, {Champion: "Ahri"}}},
			}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "more than once",
		},
		{
			name:           "too many players",
			body:           sixPlayers,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "player limit",
		},
		{
			name:           "unknown lane",
			body:           `{"players":[{"champions":[{"champion":"Ahri","lanes":["roam"]}]}]}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postResolve(t, ts, tt.body)
			defer resp.Body.Close()
			testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedBody)
		})
	}
}

func TestFinderHandler_ResolveExplicitLanes(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedReference(t, ts)

	body := `{"players":[
		{"champions":[{"champion":"Jinx","lanes":["adc"]}]},
		{"champions":[{"champion":"Lux","lanes":["mid"]}]}
	]}`
	req, err := http.NewRequest(http.MethodPost, ts.APIURL("/comps/resolve"), bytes.NewBufferString(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result ResolveResponse
	testutil.AssertJSONResponse(t, resp, &result)
	require.Len(t, result.Results, 1)
	assert.Equal(t, finder.Assignment{
		{Champion: "Jinx", Lane: domain.LaneBottom},
		{Champion: "Lux", Lane: domain.LaneMid},
	}, result.Results[0].Assignment)
}

func TestFinderHandler_Limits(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/comps/limits"))
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result struct {
		MaxPlayers     int `json:"maxPlayers"`
		MaxAssignments int `json:"maxAssignments"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, ts.Config.MaxPlayers, result.MaxPlayers)
	assert.Equal(t, ts.Config.MaxAssignments, result.MaxAssignments)
}
