package main

// Run database migrations:
//   go run ./cmd/migrate
//
// DATABASE_URL selects the target: a postgres URL or sqlite:<path>.

import (
	"context"
	"database/sql"
	"log"
	"os"

	"methodology-advisor/internal/shared/config"
	"methodology-advisor/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var (
		sqlDB   *sql.DB
		dialect string
		err     error
	)
	switch cfg.DatabaseDriver() {
	case "":
		log.Printf("DATABASE_URL is empty; nothing to migrate")
		os.Exit(1)
	case "sqlite":
		dialect = db.DialectSQLite
		sqlDB, err = db.OpenSQLite(ctx, cfg.SQLitePath())
	default:
		dialect = db.DialectPostgres
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	}
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB, dialect); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	log.Printf("migrations applied (%s)", dialect)
}
