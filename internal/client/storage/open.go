package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/pgdesk/internal/client/migrations"
	"github.com/dmitrijs2005/pgdesk/internal/client/repositories/kv"
	"github.com/dmitrijs2005/pgdesk/internal/filex"
	"github.com/dmitrijs2005/pgdesk/internal/logging"
)

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := gooseUp(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// OpenSQLite opens (or creates) the SQLite database at dsn, creating its
// directory if needed, applies
// migrations and returns a Store over it.
func OpenSQLite(ctx context.Context, dsn string, log logging.Logger) (*Store, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection: every ":memory:" connection would be its own database
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewStore(kv.NewSQLiteRepository(db), log), nil
}

// OpenRedis returns a Store over the Redis server at addr. The connection is
// checked with PING.
func OpenRedis(ctx context.Context, addr string, log logging.Logger) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return NewStore(kv.NewRedisRepository(rdb, ""), log), nil
}
