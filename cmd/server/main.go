package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/annapurna-pos/api/internal/catalog"
	"github.com/annapurna-pos/api/internal/config"
	"github.com/annapurna-pos/api/internal/database"
	"github.com/annapurna-pos/api/internal/logger"
	"github.com/annapurna-pos/api/internal/router"
	"github.com/annapurna-pos/api/internal/session"
)

func main() {
	cfg := config.Load()
	log := logger.New("pos-api")

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db_connect_failed", "startup", "unable to connect to database", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Error("migrate_failed", "startup", "unable to apply migrations", err)
		os.Exit(1)
	}

	queries := database.New(pool)

	// First-run menu import. A malformed source is fatal: no partial
	// catalog is usable.
	loader := catalog.NewLoader(pool, queries, func(db database.DBTX) catalog.Store {
		return database.New(db)
	}, cfg.MenuCSVPath)
	menu, err := loader.Load(ctx)
	if err != nil {
		if errors.Is(err, catalog.ErrFormat) {
			log.Error("menu_import_failed", "startup", "menu source is malformed", err)
		} else {
			log.Error("menu_load_failed", "startup", "unable to load menu", err)
		}
		os.Exit(1)
	}
	log.Info("menu_loaded", "startup", fmt.Sprintf("catalog ready with %d items", len(menu)))

	sess := session.New()
	r := router.New(cfg, log, queries, pool, menu, sess)

	log.Info("server_starting", "startup", fmt.Sprintf("listening on :%s", cfg.Port))
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Error("server_failed", "startup", "http server exited", err)
		os.Exit(1)
	}
}
