package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/cache"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/config"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/database"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/engine"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/profile"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/recommend"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/schedule"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/taxonomy"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// app bundles the engine with the resources it borrows. Close it when the
// command is done.
type app struct {
	cfg    *config.Config
	db     *sqlx.DB
	engine *engine.Engine
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	generator, err := newHintGenerator(cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &app{
		cfg: cfg,
		db:  db,
		engine: engine.New(
			event.NewDBRepository(db),
			schedule.NewDBRepository(db),
			profile.NewDBRepository(db),
			newResolver(cfg, db),
			cache.NewMemoryCache(),
			generator,
			cfg.Analytics,
		),
	}, nil
}

// newResolver prefers the remote taxonomy service when one is configured,
// otherwise categories resolve against the local alias table.
func newResolver(cfg *config.Config, db *sqlx.DB) taxonomy.Resolver {
	if cfg.Taxonomy.Host != "" {
		return taxonomy.NewHTTPResolver(cfg.Taxonomy.CacheDirectory, taxonomy.HTTPConfig{
			Host: cfg.Taxonomy.Host,
			Key:  cfg.Taxonomy.Key,
		})
	}
	return taxonomy.NewDBResolver(db)
}

func newHintGenerator(cfg *config.Config) (*recommend.Generator, error) {
	if cfg.Hints.TemplatesFile != "" {
		generator, err := recommend.NewGeneratorFromFile(cfg.Hints.TemplatesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load hint templates: %w", err)
		}
		return generator, nil
	}
	return recommend.NewGenerator()
}

func (a *app) close() {
	_ = a.db.Close()
}
