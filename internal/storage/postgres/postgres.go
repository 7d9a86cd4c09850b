// Package postgres opens the PostgreSQL-backed storage.Store.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mmynk/forkful/internal/storage/sqldb"
)

// Open connects to databaseURL through pgx and runs migrations.
func Open(ctx context.Context, databaseURL string) (*sqldb.Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(20)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	store, err := sqldb.New(ctx, db, sqldb.Postgres)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
