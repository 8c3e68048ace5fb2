package modelio

import (
	"fmt"
	"log/slog"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/oeai/oeaimport/pkg/config"
	"github.com/oeai/oeaimport/pkg/ent/model"
)

type modelio struct {
	db *gorm.DB
}

// New returns a new instance of Model
func New(db *gorm.DB) model.Model {
	res := modelio{db: db}
	return &res
}

// Open connects gorm to the database configured in cfg.
func Open(cfg config.Config) (*gorm.DB, error) {
	var dialect string
	switch cfg.Backend {
	case config.BackendPostgres:
		dialect = "postgres"
	case config.BackendMySQL:
		dialect = "mysql"
	default:
		return nil, fmt.Errorf("backend %q has no schema to migrate", cfg.Backend)
	}
	db, err := gorm.Open(dialect, cfg.DSN())
	if err != nil {
		slog.Error("Cannot connect to database", "error", err)
		return nil, err
	}
	db.LogMode(false)
	return db, nil
}

// Migrate creates tables in the database.
func (m *modelio) Migrate() error {
	err := m.db.AutoMigrate(
		&model.Profession{},
		&model.Person{},
		&model.Institution{},
		&model.Place{},
		&model.URI{},
		&model.Contains{},
		&model.LocatedIn{},
		&model.Includes{},
		&model.EngagedIn{},
	).Error
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
