package repository

import (
	"context"

	"github.com/dom/league-skinset-finder/internal/domain"
)

type ChampionRepository interface {
	Upsert(ctx context.Context, champion *domain.Champion) error
	UpsertMany(ctx context.Context, champions []*domain.Champion) error
	// UpsertMetadata writes Data Dragon fields and leaves lanes untouched.
	UpsertMetadata(ctx context.Context, champions []*domain.Champion) error
	SetLanes(ctx context.Context, lanes map[string]domain.LaneSet) error
	GetAll(ctx context.Context) ([]*domain.Champion, error)
	GetByID(ctx context.Context, id string) (*domain.Champion, error)
}

type SkinsetRepository interface {
	// ReplaceAll swaps the whole skinset table in one transaction.
	ReplaceAll(ctx context.Context, skinsets []*domain.Skinset) error
	GetAll(ctx context.Context) ([]*domain.Skinset, error)
	GetByID(ctx context.Context, id string) (*domain.Skinset, error)
	Count(ctx context.Context) (int64, error)
}

type Repositories struct {
	Champion ChampionRepository
	Skinset  SkinsetRepository
}
