// Package store opens the optional postgres and redis backends behind small seams
package store

import (
	"context"
	"errors"
	"time"

	"ballotbox/internal/platform/logger"
)

// Row is a single row result
type Row interface {
	Scan(dest ...any) error
}

// Rows is an open result set; callers Close it
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is the outcome of Exec
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs statements on the pool or inside a transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that also runs fn in a transaction, committing on nil
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// KV stores blobs and hands out short lived locks
// a missing key is found=false, not an error
type KV interface {
	Get(ctx context.Context, key string) (val []byte, found bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Lock(ctx context.Context, key string, ttl time.Duration) (Unlock, error)
	Close() error
}

// Unlock releases a KV lock
type Unlock func(ctx context.Context) error

// Store holds whichever backends were enabled, the rest stay nil
type Store struct {
	Log logger.Logger
	PG  TxRunner
	RDS KV
}

// Open dials every enabled backend and waits until it answers
// on failure anything already opened is closed again
func Open(ctx context.Context, cfg Config, log logger.Logger) (*Store, error) {
	s := &Store{Log: log}

	if cfg.PG.Enabled {
		db, err := openPG(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		s.PG = db
	}

	if cfg.RDS.Enabled {
		kv, err := openRDS(ctx, cfg, log)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.RDS = kv
	}
	return s, nil
}

// Close closes the open backends and joins their errors
func (s *Store) Close() error {
	var errs []error
	if s.RDS != nil {
		errs = append(errs, s.RDS.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
