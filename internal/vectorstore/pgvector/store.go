// Package pgvector подключение к vector store на PostgreSQL + pgvector.
package pgvector

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shestoi/prospect-agent/internal/config"
)

var (
	// ErrTableNotFound таблица с эмбеддингами отсутствует
	ErrTableNotFound = errors.New("vector store table not found")
	// ErrColumnNotFound в таблице нет колонки id или метаданных
	ErrColumnNotFound = errors.New("vector store column not found")
)

// Store держит пул соединений и координаты таблицы с эмбеддингами
type Store struct {
	pool           *pgxpool.Pool
	schema         string
	tableName      string
	table          pgx.Identifier
	idColumn       string
	metadataColumn string
}

// New создаёт пул соединений. Соединения открываются лениво при первом запросе,
// поэтому недоступная БД не мешает старту сервиса (см. Ping для readiness).
func New(ctx context.Context, cfg *config.PGVectorStoreSettings) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("parse vector store connection string: %w", err)
	}
	poolCfg.MinConns = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create vector store pool: %w", err)
	}

	return &Store{
		pool:           pool,
		schema:         cfg.SchemaName,
		tableName:      cfg.TableName,
		table:          pgx.Identifier{cfg.SchemaName, cfg.TableName},
		idColumn:       cfg.IDColumn,
		metadataColumn: cfg.MetadataJSONColumn,
	}, nil
}

// Ping проверяет доступность БД
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Ready проверяет готовность vector store: БД отвечает, таблица и её колонки id и метаданных существуют
func (s *Store) Ready(ctx context.Context) error {
	if err := s.Ping(ctx); err != nil {
		return err
	}
	exists, err := s.TableExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrTableNotFound, s.Table())
	}
	for _, column := range []string{s.idColumn, s.metadataColumn} {
		ok, err := s.columnExists(ctx, column)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s.%s", ErrColumnNotFound, s.Table(), pgx.Identifier{column}.Sanitize())
		}
	}
	return nil
}

// TableExists проверяет, что таблица с эмбеддингами существует
func (s *Store) TableExists(ctx context.Context) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, s.Table()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check vector store table: %w", err)
	}
	return exists, nil
}

func (s *Store) columnExists(ctx context.Context, column string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2 AND column_name = $3
	)`, s.schema, s.tableName, column).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check vector store column %s: %w", column, err)
	}
	return exists, nil
}

// Table возвращает экранированное имя таблицы: "schema"."table"
func (s *Store) Table() string {
	return s.table.Sanitize()
}

// Close закрывает пул
func (s *Store) Close() {
	s.pool.Close()
}
