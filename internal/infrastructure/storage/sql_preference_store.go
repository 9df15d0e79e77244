package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"mushroom-doctor/internal/domain/port"
)

// Имена драйверов database/sql. Драйвер pgx регистрируется в cmd.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// SQLPreferenceStore хранит настройки в таблице preferences (SQLite или Postgres).
type SQLPreferenceStore struct {
	DB *sql.DB
}

// OpenSQLite открывает файл SQLite и создаёт схему.
func OpenSQLite(path string) (*SQLPreferenceStore, error) {
	db, err := sql.Open(DriverSQLite, path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return newSQLPreferenceStore(db)
}

// OpenPostgres подключается к Postgres через pgx и создаёт схему.
func OpenPostgres(ctx context.Context, dsn string) (*SQLPreferenceStore, error) {
	db, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return newSQLPreferenceStore(db)
}

func newSQLPreferenceStore(db *sql.DB) (*SQLPreferenceStore, error) {
	s := &SQLPreferenceStore{DB: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate preferences: %w", err)
	}
	return s, nil
}

// migrate создаёт таблицу, если её нет. Синтаксис общий для SQLite и Postgres.
func (s *SQLPreferenceStore) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS preferences (
		scope TEXT NOT NULL,
		name TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (scope, name)
	)`

	_, err := s.DB.Exec(schema)
	return err
}

// Get возвращает значение настройки.
func (s *SQLPreferenceStore) Get(ctx context.Context, scope, name string) (string, bool, error) {
	const q = `select value from preferences where scope=$1 and name=$2`

	var value string
	err := s.DB.QueryRowContext(ctx, q, scope, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select preference: %w", err)
	}
	return value, true, nil
}

// Set сохраняет/обновляет значение. PK: (scope, name).
func (s *SQLPreferenceStore) Set(ctx context.Context, scope, name, value string) error {
	const q = `
insert into preferences(scope, name, value)
values ($1,$2,$3)
on conflict (scope, name)
do update set value=excluded.value, updated_at=CURRENT_TIMESTAMP`

	if _, err := s.DB.ExecContext(ctx, q, scope, name, value); err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}

// Close закрывает соединение с базой.
func (s *SQLPreferenceStore) Close() error {
	return s.DB.Close()
}

var _ port.PreferenceStore = (*SQLPreferenceStore)(nil)
