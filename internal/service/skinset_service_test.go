package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/refdata"
	"github.com/dom/league-skinset-finder/internal/repository/postgres"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/dom/league-skinset-finder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDataset(t *testing.T, doc string) *refdata.Dataset {
	t.Helper()
	ds, err := refdata.Load(bytes.NewBufferString(doc))
	require.NoError(t, err)
	return ds
}

func TestSkinsetService_Import(t *testing.T) {
	testDB := testutil.NewSQLiteDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	ctx := context.Background()

	finderService := service.NewFinderService(repos.Champion, repos.Skinset, nil, cfg)
	skinsetService := service.NewSkinsetService(repos.Skinset, repos.Champion, finderService)

	// Metadata from a sync must survive an import.
	testutil.NewChampionBuilder().WithID("Ahri").WithTitle("the Nine-Tailed Fox").Build(t, testDB.DB)

	result, err := skinsetService.Import(ctx, loadDataset(t, testutil.ReferenceYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Skinsets)
	assert.Equal(t, 4, result.Champions)
	assert.NotEmpty(t, finderService.IndexVersion())

	ahri, err := repos.Champion.GetByID(ctx, "Ahri")
	require.NoError(t, err)
	assert.Equal(t, "the Nine-Tailed Fox", ahri.Title)
	assert.Equal(t, domain.NewLaneSet(domain.LaneMid), ahri.LaneSet())

	lux, err := repos.Champion.GetByID(ctx, "Lux")
	require.NoError(t, err)
	assert.Equal(t, domain.NewLaneSet(domain.LaneMid, domain.LaneSupport), lux.LaneSet())

	sg, err := skinsetService.Get(ctx, "star-guardian")
	require.NoError(t, err)
	assert.Equal(t, "Star Guardian", sg.Name)
	assert.Equal(t, []string{"Ahri", "Jinx", "Lux"}, sg.ChampionIDs())

	t.Run("replaces previous skinsets", func(t *testing.T) {
		version := finderService.IndexVersion()

		_, err := skinsetService.Import(ctx, loadDataset(t, `
skinsets:
  - name: Pulsefire
    champions: [Ezreal, Caitlyn]
lanes:
  Ezreal: [bottom]
`))
		require.NoError(t, err)
		assert.NotEqual(t, version, finderService.IndexVersion())

		all, err := skinsetService.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "pulsefire", all[0].ID)

		_, err = skinsetService.Get(ctx, "star-guardian")
		assert.ErrorIs(t, err, domain.ErrSkinsetNotFound)
	})
}

func TestSkinsetService_SeedIfEmpty(t *testing.T) {
	testDB := testutil.NewSQLiteDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	ctx := context.Background()

	finderService := service.NewFinderService(repos.Champion, repos.Skinset, nil, cfg)
	skinsetService := service.NewSkinsetService(repos.Skinset, repos.Champion, finderService)

	seeded, err := skinsetService.SeedIfEmpty(ctx, loadDataset(t, testutil.ReferenceYAML))
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = skinsetService.SeedIfEmpty(ctx, loadDataset(t, "skinsets:\n  - name: Pulsefire\n    champions: [Ezreal]\n"))
	require.NoError(t, err)
	assert.False(t, seeded)

	all, err := skinsetService.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSkinsetService_SeedFromBundledData(t *testing.T) {
	testDB := testutil.NewSQLiteDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	ctx := context.Background()

	finderService := service.NewFinderService(repos.Champion, repos.Skinset, nil, cfg)
	skinsetService := service.NewSkinsetService(repos.Skinset, repos.Champion, finderService)

	ds, err := refdata.Default()
	require.NoError(t, err)

	seeded, err := skinsetService.SeedIfEmpty(ctx, ds)
	require.NoError(t, err)
	assert.True(t, seeded)

	count, err := repos.Skinset.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(ds.Skinsets)), count)
}
