package postgres

import (
	"context"
	"errors"

	"github.com/dom/league-skinset-finder/internal/domain"
	"gorm.io/gorm"
)

type skinsetRepository struct {
	db *gorm.DB
}

func NewSkinsetRepository(db *gorm.DB) *skinsetRepository {
	return &skinsetRepository{db: db}
}

func (r *skinsetRepository) ReplaceAll(ctx context.Context, skinsets []*domain.Skinset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.SkinsetMember{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Skinset{}).Error; err != nil {
			return err
		}
		if len(skinsets) == 0 {
			return nil
		}
		// Members are inserted through the association.
		return tx.Create(skinsets).Error
	})
}

func (r *skinsetRepository) GetAll(ctx context.Context) ([]*domain.Skinset, error) {
	var skinsets []*domain.Skinset
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("champion_id ASC")
		}).
		Order("name ASC").
		Find(&skinsets).Error
	if err != nil {
		return nil, err
	}
	return skinsets, nil
}

func (r *skinsetRepository) GetByID(ctx context.Context, id string) (*domain.Skinset, error) {
	var skinset domain.Skinset
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("champion_id ASC")
		}).
		First(&skinset, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSkinsetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &skinset, nil
}

func (r *skinsetRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Skinset{}).Count(&n).Error
	return n, err
}
