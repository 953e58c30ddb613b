package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresStore implements Store over a single JSONB table:
//
//	CREATE TABLE documents (
//	    path    TEXT  NOT NULL,
//	    doc_key TEXT  NOT NULL,
//	    fields  JSONB NOT NULL,
//	    PRIMARY KEY (path, doc_key)
//	);
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to the database and verifies the connection.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *PostgresStore) GetDB() *sqlx.DB {
	return s.db
}

// Put creates or fully overwrites the document at key.
func (s *PostgresStore) Put(ctx context.Context, path, key string, fields Fields) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode document %s/%s: %w", path, key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (path, doc_key, fields)
		VALUES ($1, $2, $3)
		ON CONFLICT (path, doc_key) DO UPDATE SET fields = EXCLUDED.fields`,
		path, key, body)
	if err != nil {
		return fmt.Errorf("failed to put document %s/%s: %w", path, key, err)
	}
	return nil
}

// Get returns the document at key, or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, path, key string) (Fields, error) {
	var body []byte
	err := s.db.GetContext(ctx, &body,
		"SELECT fields FROM documents WHERE path = $1 AND doc_key = $2", path, key)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", path, key, err)
	}

	var fields Fields
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode document %s/%s: %w", path, key, err)
	}
	return fields, nil
}

// List returns every document in the collection, ordered by key.
func (s *PostgresStore) List(ctx context.Context, path string) ([]Document, error) {
	rows := []struct {
		DocKey string `db:"doc_key"`
		Fields []byte `db:"fields"`
	}{}
	err := s.db.SelectContext(ctx, &rows,
		"SELECT doc_key, fields FROM documents WHERE path = $1 ORDER BY doc_key", path)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", path, err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		var fields Fields
		if err := json.Unmarshal(row.Fields, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode document %s/%s: %w", path, row.DocKey, err)
		}
		docs = append(docs, Document{Key: row.DocKey, Fields: fields})
	}
	return docs, nil
}

// Delete removes the document at key; absent keys are a no-op.
func (s *PostgresStore) Delete(ctx context.Context, path, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE path = $1 AND doc_key = $2", path, key)
	if err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", path, key, err)
	}
	return nil
}

// BatchDelete removes every listed key inside one transaction, so the
// batch is all-or-nothing at the store level.
func (s *PostgresStore) BatchDelete(ctx context.Context, path string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch delete: %w", err)
	}
	defer tx.Rollback()

	query, args, err := sqlx.In(
		"DELETE FROM documents WHERE path = ? AND doc_key IN (?)", path, keys)
	if err != nil {
		return fmt.Errorf("failed to build batch delete: %w", err)
	}
	query = s.db.Rebind(query)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to batch delete from %s: %w", path, err)
	}
	return tx.Commit()
}
