package postgres

import (
	"context"
	"errors"

	"github.com/dom/league-skinset-finder/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type championRepository struct {
	db *gorm.DB
}

func NewChampionRepository(db *gorm.DB) *championRepository {
	return &championRepository{db: db}
}

func (r *championRepository) Upsert(ctx context.Context, champion *domain.Champion) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(champion).Error
}

func (r *championRepository) UpsertMany(ctx context.Context, champions []*domain.Champion) error {
	if len(champions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(champions).Error
}

func (r *championRepository) UpsertMetadata(ctx context.Context, champions []*domain.Champion) error {
	if len(champions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"key", "name", "title", "image_url", "tags", "last_synced_at"}),
	}).Create(champions).Error
}

// SetLanes updates lane eligibility for existing champions. Champions that
// are not stored yet are created with their id as the name.
func (r *championRepository) SetLanes(ctx context.Context, lanes map[string]domain.LaneSet) error {
	if len(lanes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, set := range lanes {
			var champion domain.Champion
			err := tx.First(&champion, "id = ?", id).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				champion = domain.Champion{ID: id, Name: id}
				champion.SetLaneSet(set)
				if err := tx.Create(&champion).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				champion.SetLaneSet(set)
				if err := tx.Model(&domain.Champion{}).Where("id = ?", id).Update("lanes", champion.Lanes).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *championRepository) GetAll(ctx context.Context) ([]*domain.Champion, error) {
	var champions []*domain.Champion
	err := r.db.WithContext(ctx).Order("name ASC").Find(&champions).Error
	if err != nil {
		return nil, err
	}
	return champions, nil
}

func (r *championRepository) GetByID(ctx context.Context, id string) (*domain.Champion, error) {
	var champion domain.Champion
	err := r.db.WithContext(ctx).First(&champion, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrChampionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &champion, nil
}
