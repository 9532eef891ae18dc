package service

import (
	"github.com/dom/league-skinset-finder/internal/cache"
	"github.com/dom/league-skinset-finder/internal/config"
	"github.com/dom/league-skinset-finder/internal/repository"
)

type Services struct {
	Admin    *AdminService
	Champion *ChampionService
	Skinset  *SkinsetService
	Finder   *FinderService
}

func NewServices(repos *repository.Repositories, resultCache cache.ResultCache, cfg *config.Config) *Services {
	finderService := NewFinderService(repos.Champion, repos.Skinset, resultCache, cfg)
	return &Services{
		Admin:    NewAdminService(cfg),
		Champion: NewChampionService(repos.Champion, cfg),
		Skinset:  NewSkinsetService(repos.Skinset, repos.Champion, finderService),
		Finder:   finderService,
	}
}
