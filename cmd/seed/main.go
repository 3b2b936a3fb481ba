// Command seed fills the database with a consistent fake dataset.
//
//	seed [-migrate] [-fresh] [-dry-run]
//
// -fresh truncates every table first. -dry-run seeds an in-memory store
// instead of MySQL and only reports the row counts.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/terrain-rental/internal/config"
	"github.com/iliyamo/terrain-rental/internal/database"
	"github.com/iliyamo/terrain-rental/internal/factory"
	"github.com/iliyamo/terrain-rental/internal/logger"
	"github.com/iliyamo/terrain-rental/internal/repository"
	"github.com/iliyamo/terrain-rental/internal/repository/memory"
	"github.com/iliyamo/terrain-rental/internal/seeder"
)

func main() {
	migrate := flag.Bool("migrate", true, "create missing tables before seeding")
	fresh := flag.Bool("fresh", false, "truncate all tables before seeding")
	dryRun := flag.Bool("dry-run", false, "seed an in-memory store instead of MySQL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log, *migrate, *fresh, *dryRun); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger, migrate, fresh, dryRun bool) error {
	ctx := context.Background()

	var store *repository.Store
	if dryRun {
		store = memory.NewStore()
		log.Info("dry run, seeding in-memory store")
	} else {
		db, err := database.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		if migrate {
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}
		}
		if fresh {
			if err := database.Reset(ctx, db); err != nil {
				return err
			}
			log.Info("tables truncated")
		}
		store = repository.NewMySQLStore(db)
	}

	seed := cfg.Seed.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fac := factory.New(factory.NewFakerSource(seed), store)
	fac.BcryptCost = cfg.BcryptCost

	log.Info("seeding", zap.Int64("random_seed", seed))
	_, err := seeder.New(fac, cfg.Seed, log).Run(ctx)
	return err
}
