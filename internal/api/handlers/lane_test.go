package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dom/league-skinset-finder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanes(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/lanes"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result struct {
		Lanes []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"lanes"`
	}
	testutil.AssertJSONResponse(t, resp, &result)

	ids := make([]string, len(result.Lanes))
	for i, l := range result.Lanes {
		ids[i] = l.ID
		assert.NotEmpty(t, l.Name)
	}
	assert.Equal(t, []string{"top", "jungle", "mid", "bottom", "support"}, ids)
}
