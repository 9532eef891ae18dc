package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dom/league-skinset-finder/internal/config"
	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/repository"
)

const (
	dataDragonBaseURL = "https://ddragon.leagueoflegends.com"
)

type ChampionService struct {
	championRepo repository.ChampionRepository
	cfg          *config.Config
	httpClient   *http.Client
	baseURL      string
}

func NewChampionService(championRepo repository.ChampionRepository, cfg *config.Config) *ChampionService {
	return &ChampionService{
		championRepo: championRepo,
		cfg:          cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: dataDragonBaseURL,
	}
}

func (s *ChampionService) GetAllChampions(ctx context.Context) ([]*domain.Champion, error) {
	return s.championRepo.GetAll(ctx)
}

func (s *ChampionService) GetChampion(ctx context.Context, id string) (*domain.Champion, error) {
	return s.championRepo.GetByID(ctx, id)
}

type DataDragonVersionResponse []string

type DataDragonChampionsResponse struct {
	Type    string                        `json:"type"`
	Format  string                        `json:"format"`
	Version string                        `json:"version"`
	Data    map[string]DataDragonChampion `json:"data"`
}

type DataDragonChampion struct {
	ID    string   `json:"id"`
	Key   string   `json:"key"`
	Name  string   `json:"name"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Image struct {
		Full string `json:"full"`
	} `json:"image"`
}

// SyncFromDataDragon refreshes champion metadata from Data Dragon. Lane
// eligibility comes from the reference data and is left as stored.
func (s *ChampionService) SyncFromDataDragon(ctx context.Context) (int, string, error) {
	version, err := s.getLatestVersion(ctx)
	if err != nil {
		return 0, "", fmt.Errorf("failed to get latest version: %w", err)
	}

	championsURL := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", s.baseURL, version)
	var championsResp DataDragonChampionsResponse
	if err := s.getJSON(ctx, championsURL, &championsResp); err != nil {
		return 0, "", fmt.Errorf("failed to fetch champions: %w", err)
	}

	now := time.Now()
	champions := make([]*domain.Champion, 0, len(championsResp.Data))
	for _, c := range championsResp.Data {
		tagsJSON, _ := json.Marshal(c.Tags)
		champion := &domain.Champion{
			ID:           c.ID,
			Key:          c.Key,
			Name:         c.Name,
			Title:        c.Title,
			ImageURL:     fmt.Sprintf("%s/cdn/%s/img/champion/%s", s.baseURL, version, c.Image.Full),
			Tags:         tagsJSON,
			LastSyncedAt: now,
		}
		champions = append(champions, champion)
	}

	if err := s.championRepo.UpsertMetadata(ctx, champions); err != nil {
		return 0, "", fmt.Errorf("failed to upsert champions: %w", err)
	}

	return len(champions), version, nil
}

func (s *ChampionService) getLatestVersion(ctx context.Context) (string, error) {
	if s.cfg.DataDragonVersion != "" {
		return s.cfg.DataDragonVersion, nil
	}

	var versions DataDragonVersionResponse
	if err := s.getJSON(ctx, s.baseURL+"/api/versions.json", &versions); err != nil {
		return "", err
	}

	if len(versions) == 0 {
		return "", fmt.Errorf("no versions available")
	}

	return versions[0], nil
}

func (s *ChampionService) getJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (s *ChampionService) GetLatestVersion(ctx context.Context) (string, error) {
	return s.getLatestVersion(ctx)
}
