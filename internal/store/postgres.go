package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresKV 单表键值存储：app_blobs(key TEXT PRIMARY KEY, value TEXT)
type PostgresKV struct {
	db *sql.DB
}

// NewPostgresDB 创建 PostgreSQL 连接
func NewPostgresDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// NewPostgresKV ensures the blob table exists and returns the store.
func NewPostgresKV(db *sql.DB) (*PostgresKV, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS app_blobs (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create app_blobs table: %w", err)
	}
	return &PostgresKV{db: db}, nil
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM app_blobs WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrMiss
		}
		return "", fmt.Errorf("failed to get blob: %w", err)
	}
	return value, nil
}

func (p *PostgresKV) Set(ctx context.Context, key string, value string) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO app_blobs (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert blob: %w", err)
	}
	return nil
}
