package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/repository/postgres"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/dom/league-skinset-finder/internal/testutil"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDataDragon(t *testing.T, version string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{version, "14.1.1"})
	})
	mux.HandleFunc("/cdn/"+version+"/data/en_US/champion.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"type": "champion",
			"format": "standAloneComplex",
			"version": "` + version + `",
			"data": {
				"Ahri": {"id": "Ahri", "key": "103", "name": "Ahri", "title": "the Nine-Tailed Fox", "tags": ["Mage", "Assassin"], "image": {"full": "Ahri.png"}},
				"Zed": {"id": "Zed", "key": "238", "name": "Zed", "title": "the Master of Shadows", "tags": ["Assassin"], "image": {"full": "Zed.png"}}
			}
		}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestChampionService_SyncFromDataDragon(t *testing.T) {
	testDB := testutil.NewSQLiteDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	cfg.DataDragonVersion = ""
	ctx := context.Background()

	dd := newDataDragon(t, "14.2.1")
	championService := service.NewChampionService(repos.Champion, cfg)
	championService.SetBaseURL(dd.URL)

	testutil.NewChampionBuilder().
		WithID("Ahri").
		WithTitle("stale title").
		WithLanes(domain.LaneMid).
		Build(t, testDB.DB)

	count, version, err := championService.SyncFromDataDragon(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "14.2.1", version)

	ahri, err := repos.Champion.GetByID(ctx, "Ahri")
	require.NoError(t, err)
	assert.Equal(t, "the Nine-Tailed Fox", ahri.Title)
	assert.Equal(t, "103", ahri.Key)
	assert.Equal(t, dd.URL+"/cdn/14.2.1/img/champion/Ahri.png", ahri.ImageURL)
	assert.Equal(t, []string{"Mage", "Assassin"}, ahri.TagList())
	assert.Equal(t, domain.NewLaneSet(domain.LaneMid), ahri.LaneSet(), "sync must keep stored lanes")

	zed, err := repos.Champion.GetByID(ctx, "Zed")
	require.NoError(t, err)
	assert.Equal(t, "Zed", zed.Name)
	assert.True(t, zed.LaneSet().IsEmpty())
}

func TestChampionService_GetLatestVersion(t *testing.T) {
	testDB := testutil.NewSQLiteDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	dd := newDataDragon(t, "14.3.1")

	t.Run("pinned by config", func(t *testing.T) {
		cfg := testutil.TestConfig()
		championService := service.NewChampionService(repos.Champion, cfg)
		championService.SetBaseURL(dd.URL)

		version, err := championService.GetLatestVersion(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "14.1.1", version)
	})

	t.Run("latest from versions list", func(t *testing.T) {
		cfg := testutil.TestConfig()
		cfg.DataDragonVersion = ""
		championService := service.NewChampionService(repos.Champion, cfg)
		championService.SetBaseURL(dd.URL)

		version, err := championService.GetLatestVersion(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "14.3.1", version)
	})

	t.Run("upstream failure", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		}))
		defer broken.Close()

		cfg := testutil.TestConfig()
		cfg.DataDragonVersion = ""
		championService := service.NewChampionService(repos.Champion, cfg)
		championService.SetBaseURL(broken.URL)

		_, err := championService.GetLatestVersion(context.Background())
		assert.Error(t, err)
	})
}

func TestChampionService_ScheduleSync(t *testing.T) {
	testDB := testutil.NewSQLiteDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	cfg.DataDragonVersion = ""
	ctx := context.Background()

	dd := newDataDragon(t, "14.2.1")
	championService := service.NewChampionService(repos.Champion, cfg)
	championService.SetBaseURL(dd.URL)

	c := cron.New()

	_, err := championService.ScheduleSync(ctx, c, "not a schedule")
	assert.Error(t, err)

	id, err := championService.ScheduleSync(ctx, c, "0 4 * * *")
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)

	c.Entry(id).Job.Run()

	champions, err := repos.Champion.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, champions, 2)
}
