package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/finder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	// Error responses are plain text in this API
	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertValidAssignment checks that no champion or lane repeats
func AssertValidAssignment(t *testing.T, a finder.Assignment) {
	t.Helper()

	champions := make(map[finder.ChampionID]bool, len(a))
	lanes := make(map[domain.Lane]bool, len(a))
	for _, p := range a {
		assert.False(t, champions[p.Champion], "champion %s repeated in %v", p.Champion, a)
		assert.False(t, lanes[p.Lane], "lane %s repeated in %v", p.Lane, a)
		champions[p.Champion] = true
		lanes[p.Lane] = true
	}
}

// AssertContainsSkinset verifies a result entry shares the given skinset
func AssertContainsSkinset(t *testing.T, entry finder.ResultEntry, skinset string) {
	t.Helper()
	assert.Contains(t, entry.Skinsets, finder.SkinsetID(skinset), "skinset %s not shared by %v", skinset, entry.Assignment)
}
