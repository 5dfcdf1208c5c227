package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/l1jgo/sanctuary/internal/care"
	"github.com/l1jgo/sanctuary/internal/config"
	"github.com/l1jgo/sanctuary/internal/core/event"
	"github.com/l1jgo/sanctuary/internal/data"
	"github.com/l1jgo/sanctuary/internal/factory"
	"github.com/l1jgo/sanctuary/internal/persist"
	"github.com/l1jgo/sanctuary/internal/registry"
	"github.com/l1jgo/sanctuary/internal/scripting"
	"go.uber.org/zap"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	rosterPath string
	empty      bool
	seed       int64
}

// app is everything one command invocation works with.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	out     io.Writer
	factory *factory.Factory
	zoo     *registry.Zoo
	bus     *event.Bus
	engine  *scripting.Engine
	rules   care.Rules
	rng     *rand.Rand
}

func loadConfig(explicit string) (*config.Config, error) {
	path := config.Path(explicit)
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	// Only the implicit default location may be absent.
	if errors.Is(err, os.ErrNotExist) && explicit == "" && os.Getenv(config.EnvPath) == "" {
		return config.Default(), nil
	}
	return nil, fmt.Errorf("load config: %w", err)
}

func newApp(opts globalOptions, out io.Writer) (*app, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &app{cfg: cfg, log: log, out: out, bus: event.NewBus()}

	species := data.DefaultSpeciesTable()
	if cfg.Data.SpeciesFile != "" {
		species, err = data.LoadSpeciesTable(cfg.Data.SpeciesFile)
		if err != nil {
			return nil, fmt.Errorf("load species table: %w", err)
		}
	}
	a.factory = factory.New(species)

	if cfg.Scripting.Enabled {
		a.engine, err = scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return nil, fmt.Errorf("scripting: %w", err)
		}
		a.rules = a.engine
	}

	seed := cfg.Random.Seed
	if opts.seed != 0 {
		seed = opts.seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a.rng = rand.New(rand.NewSource(seed))

	a.zoo, err = registry.NewZoo(cfg.Sanctuary.Name, cfg.Sanctuary.Capacity,
		registry.WithLogger(log), registry.WithBus(a.bus))
	if err != nil {
		a.close()
		return nil, err
	}

	rosterPath := cfg.Data.RosterFile
	if opts.rosterPath != "" {
		rosterPath = opts.rosterPath
	}
	if !opts.empty && rosterPath != "" {
		if err := a.populate(rosterPath); err != nil {
			a.close()
			return nil, err
		}
	}
	// Admissions during start-up are not news.
	a.bus.Flush()

	log.Debug("sanctuary ready",
		zap.String("zoo", a.zoo.Name()),
		zap.Int("animals", a.zoo.Count()),
		zap.Int("species", species.Count()),
		zap.Bool("scripting", a.engine != nil),
		zap.Int64("seed", seed))
	return a, nil
}

func (a *app) populate(path string) error {
	entries, err := data.LoadRoster(path)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	animals, err := a.factory.Populate(entries)
	if err != nil {
		return fmt.Errorf("populate %s: %w", path, err)
	}
	for _, an := range animals {
		if err := a.zoo.Add(an); err != nil {
			return fmt.Errorf("populate %s: %w", path, err)
		}
	}
	return nil
}

func (a *app) newVet() *care.Veterinarian {
	vet := care.NewVeterinarian(a.cfg.Sanctuary.Veterinarian, a.cfg.Sanctuary.Specialization, a.out, a.rules, a.log)
	vet.Watch(a.bus)
	return vet
}

// openDB connects to PostgreSQL and applies pending migrations.
func (a *app) openDB(ctx context.Context) (*persist.DB, error) {
	if !a.cfg.Database.Enabled {
		return nil, errors.New("database is disabled; set [database] enabled = true")
	}
	db, err := persist.NewDB(ctx, a.cfg.Database, a.log)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := persist.RunMigrations(ctx, db.Pool, a.log); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

func (a *app) close() {
	if a.zoo != nil {
		a.zoo.Close()
	}
	if a.engine != nil {
		a.engine.Close()
	}
	_ = a.log.Sync()
}
