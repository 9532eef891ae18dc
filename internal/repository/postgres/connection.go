package postgres

import (
	"strings"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the database and migrates the schema. URLs starting
// with sqlite:// or file: use SQLite, anything else is treated as a
// PostgreSQL DSN.
func NewConnection(databaseURL string) (*gorm.DB, error) {
	return Open(databaseURL, logger.Default.LogMode(logger.Info))
}

// Open is NewConnection with a caller supplied gorm logger.
func Open(databaseURL string, log logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(databaseURL), &gorm.Config{
		Logger: log,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Champion{},
		&domain.Skinset{},
		&domain.SkinsetMember{},
	)
}

func dialector(databaseURL string) gorm.Dialector {
	switch {
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://"))
	case strings.HasPrefix(databaseURL, "file:"):
		return sqlite.Open(databaseURL)
	default:
		return postgres.Open(databaseURL)
	}
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Champion: NewChampionRepository(db),
		Skinset:  NewSkinsetRepository(db),
	}
}
