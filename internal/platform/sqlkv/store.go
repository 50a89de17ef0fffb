package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/scry-decks/internal/store"
)

// Store is a store.Store backed by a SQL table.
type Store struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

var (
	_ store.Store     = (*Store)(nil)
	_ store.KeyReader = (*Store)(nil)
	_ store.Batcher   = (*Store)(nil)
)

// New creates a Store over db. The kv_documents table must already exist.
// If logger is nil, a default logger will be used.
func New(db *sql.DB, dialect Dialect, logger *slog.Logger) *Store {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		db:      db,
		dialect: dialect,
		logger: logger.With(
			slog.String("component", "sqlkv_store"),
			slog.String("dialect", dialect.Name)),
	}
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// GetCollection implements store.Store.
func (s *Store) GetCollection(ctx context.Context, name string) (store.Collection, error) {
	if err := store.ValidateCollection(name); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.SelectCollection, name)
	if err != nil {
		return nil, store.NewStoreError(name, "get", "failed to query collection", s.dialect.mapError(err))
	}
	defer func() { _ = rows.Close() }()

	c := make(store.Collection)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, store.NewStoreError(name, "get", "failed to scan row", err)
		}
		c[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(name, "get", "failed to read rows", s.dialect.mapError(err))
	}

	return c, nil
}

// GetKey implements store.KeyReader.
func (s *Store) GetKey(ctx context.Context, collection, key string) ([]byte, error) {
	if err := store.ValidateCollection(collection); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.QueryRowContext(ctx, s.dialect.SelectKey, collection, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, store.ErrNotFound
	case err != nil:
		return nil, store.NewStoreError(collection, "get", "failed to query key", s.dialect.mapError(err))
	}
	return value, nil
}

// PutCollection implements store.Store. The collection is replaced in one
// database transaction.
func (s *Store) PutCollection(ctx context.Context, name string, c store.Collection) error {
	if err := store.ValidateCollection(name); err != nil {
		return err
	}

	err := runInTransaction(ctx, s.db, s.logger, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.dialect.DeleteCollection, name); err != nil {
			return s.dialect.mapError(err)
		}
		for key, value := range c {
			if _, err := tx.ExecContext(ctx, s.dialect.Upsert, name, key, string(value)); err != nil {
				return s.dialect.mapError(err)
			}
		}
		return nil
	})
	if err != nil {
		return store.NewStoreError(name, "put", "failed to replace collection", err)
	}
	return nil
}

// DeleteKey implements store.Store.
func (s *Store) DeleteKey(ctx context.Context, name, key string) error {
	if err := store.ValidateCollection(name); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, s.dialect.DeleteKey, name, key); err != nil {
		return store.NewStoreError(name, "delete", "failed to delete key", s.dialect.mapError(err))
	}
	return nil
}

// Apply implements store.Batcher. All mutations are written in one
// database transaction.
func (s *Store) Apply(ctx context.Context, mutations []store.Mutation) error {
	for _, m := range mutations {
		if err := store.ValidateCollection(m.Collection); err != nil {
			return err
		}
	}

	err := runInTransaction(ctx, s.db, s.logger, func(ctx context.Context, tx *sql.Tx) error {
		for _, m := range mutations {
			var err error
			if m.Delete {
				_, err = tx.ExecContext(ctx, s.dialect.DeleteKey, m.Collection, m.Key)
			} else {
				_, err = tx.ExecContext(ctx, s.dialect.Upsert, m.Collection, m.Key, string(m.Value))
			}
			if err != nil {
				return s.dialect.mapError(err)
			}
		}
		return nil
	})
	if err != nil {
		return store.NewStoreError("documents", "apply", "failed to apply batch", err)
	}

	s.logger.Debug("applied batch", slog.Int("mutations", len(mutations)))
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
