// Package store is a small typed key/value table on top of database/sql.
// Values are gob encoded.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrBadName  = errors.New("bad name for store")
	ErrNotFound = errors.New("value not found")
)

type Store[T any] struct {
	mu   sync.Mutex
	name string
	db   *sql.DB
}

func isLetter(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isLetters(s string) bool {
	for _, c := range s {
		if !isLetter(c) {
			return false
		}
	}
	return s != ""
}

// New creates the table called name if needed. name is spliced into the
// queries, so it may only contain upper- or lowercase Latin letters.
func New[T any](ctx context.Context, db *sql.DB, name string) (*Store[T], error) {
	if !isLetters(name) {
		return nil, fmt.Errorf("%w: %q", ErrBadName, name)
	}

	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+name+` (
	key		TEXT PRIMARY KEY,
	value	BLOB
);`)
	if err != nil {
		return nil, fmt.Errorf("unable to create table %s: %w", name, err)
	}
	return &Store[T]{name: name, db: db}, nil
}

// Get fails with [ErrNotFound] if key is not present.
func (s *Store[T]) Get(ctx context.Context, key string) (*T, error) {
	var v []byte
	err := s.db.QueryRowContext(
		ctx, `SELECT value FROM `+s.name+` WHERE key = ?;`, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}

	var value T
	if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&value); err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", key, err)
	}
	return &value, nil
}

// Set inserts a new key-value pair or updates an existing one.
func (s *Store[T]) Set(ctx context.Context, key string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO `+s.name+` (key, value)
VALUES(?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value;`,
		key, buf.Bytes())
	return err
}

// Delete removes key without checking if it existed.
func (s *Store[T]) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM `+s.name+` WHERE key = ?;`, key)
	return err
}

func (s *Store[T]) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+s.name+`;`).Scan(&count)
	return count, err
}

// Keys lists every key in ascending order.
func (s *Store[T]) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM `+s.name+` ORDER BY key;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
