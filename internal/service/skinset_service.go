package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/refdata"
	"github.com/dom/league-skinset-finder/internal/repository"
)

type SkinsetService struct {
	skinsetRepo  repository.SkinsetRepository
	championRepo repository.ChampionRepository
	finder       *FinderService
}

func NewSkinsetService(skinsetRepo repository.SkinsetRepository, championRepo repository.ChampionRepository, finder *FinderService) *SkinsetService {
	return &SkinsetService{
		skinsetRepo:  skinsetRepo,
		championRepo: championRepo,
		finder:       finder,
	}
}

func (s *SkinsetService) GetAll(ctx context.Context) ([]*domain.Skinset, error) {
	return s.skinsetRepo.GetAll(ctx)
}

func (s *SkinsetService) Get(ctx context.Context, id string) (*domain.Skinset, error) {
	return s.skinsetRepo.GetByID(ctx, id)
}

type ImportResult struct {
	Skinsets  int `json:"skinsets"`
	Champions int `json:"champions"`
}

// Import replaces the stored skinsets with ds, updates champion lanes and
// reloads the finder index.
func (s *SkinsetService) Import(ctx context.Context, ds *refdata.Dataset) (*ImportResult, error) {
	if err := s.championRepo.SetLanes(ctx, ds.Lanes); err != nil {
		return nil, fmt.Errorf("failed to store champion lanes: %w", err)
	}

	now := time.Now()
	skinsets := make([]*domain.Skinset, len(ds.Skinsets))
	for i, entry := range ds.Skinsets {
		id := refdata.Slug(entry.Name)
		members := make([]domain.SkinsetMember, len(entry.Champions))
		for j, c := range entry.Champions {
			members[j] = domain.SkinsetMember{SkinsetID: id, ChampionID: c}
		}
		skinsets[i] = &domain.Skinset{
			ID:        id,
			Name:      entry.Name,
			Members:   members,
			UpdatedAt: now,
		}
	}

	if err := s.skinsetRepo.ReplaceAll(ctx, skinsets); err != nil {
		return nil, fmt.Errorf("failed to store skinsets: %w", err)
	}

	if err := s.finder.Reload(ctx); err != nil {
		return nil, err
	}

	return &ImportResult{
		Skinsets:  len(skinsets),
		Champions: len(ds.Champions()),
	}, nil
}

// SeedIfEmpty imports ds when no skinsets are stored yet.
func (s *SkinsetService) SeedIfEmpty(ctx context.Context, ds *refdata.Dataset) (bool, error) {
	n, err := s.skinsetRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	res, err := s.Import(ctx, ds)
	if err != nil {
		return false, err
	}
	log.Printf("INFO [skinset.SeedIfEmpty]: seeded %d skinsets", res.Skinsets)
	return true, nil
}
