package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"methodology-advisor/internal/consultations"
	"methodology-advisor/internal/expert"
	"methodology-advisor/internal/services/health"
	"methodology-advisor/internal/shared/config"
	"methodology-advisor/internal/shared/server"
	"methodology-advisor/internal/shared/storage/db"
)

// Storage backends reported by App.Storage.
const (
	StorageDisabled = "disabled"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// App holds shared dependencies.
type App struct {
	Config              config.Config
	Router              *gin.Engine
	DB                  *sql.DB
	Storage             string
	Rules               *expert.RuleSet
	ConsultationsRepo   consultations.Repo
	ConsultationService *consultations.Service
	ConsultationHandler *consultations.Handler
	Health              *health.Service
}

// Build compiles the rule catalog, opens storage and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	rules, err := expert.BuildRuleSet()
	if err != nil {
		return nil, fmt.Errorf("build rule set: %w", err)
	}

	app := &App{
		Config:  cfg,
		Rules:   rules,
		Storage: StorageDisabled,
	}

	if cfg.HistoryEnabled {
		if err := buildStorage(ctx, app); err != nil {
			return nil, err
		}
	}

	app.ConsultationService = consultations.NewService(rules, app.ConsultationsRepo)
	app.ConsultationHandler = consultations.NewHandler(app.ConsultationService)
	app.Health = health.NewService(app.DB, rules.Len(), app.Storage)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		Health:              app.Health,
		ConsultationHandler: app.ConsultationHandler,
	})

	return app, nil
}

// Close releases the database handle, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildStorage(ctx context.Context, app *App) error {
	cfg := app.Config
	var (
		sqlDB   *sql.DB
		dialect string
		err     error
	)
	switch cfg.DatabaseDriver() {
	case "":
		app.ConsultationsRepo = consultations.NewMemoryRepo()
		app.Storage = StorageMemory
		return nil
	case "sqlite":
		dialect = db.DialectSQLite
		sqlDB, err = db.OpenSQLite(ctx, cfg.SQLitePath())
	default:
		dialect = db.DialectPostgres
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	}
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB, dialect); err != nil {
			sqlDB.Close()
		}
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			log.Printf("bootstrap: database unavailable; using in-memory history: %v", err)
			app.ConsultationsRepo = consultations.NewMemoryRepo()
			app.Storage = StorageMemory
			return nil
		}
		return err
	}

	app.DB = sqlDB
	if dialect == db.DialectSQLite {
		app.ConsultationsRepo = &consultations.SQLiteRepo{DB: sqlDB}
		app.Storage = StorageSQLite
	} else {
		app.ConsultationsRepo = &consultations.PGRepo{DB: sqlDB}
		app.Storage = StoragePostgres
	}
	return nil
}
