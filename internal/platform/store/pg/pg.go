// Package pg opens the pgx pool the sql adapter runs on
package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is the pool setup; zero MaxConns keeps the pgx default
type Config struct {
	URL      string
	AppName  string
	MaxConns int32

	// SlowMs flags traced statements at or above it, negative disables
	SlowMs int
	Tracer QueryTracer
}

// PG is an open pool and how its statements are traced
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

// Option tweaks the parsed pool config before the pool is built
type Option func(*pgxpool.Config)

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and builds the pool without waiting for a connection
func Open(ctx context.Context, cfg Config, opts ...Option) (*PG, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	for _, o := range opts {
		o(pc)
	}

	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, Tracer: cfg.Tracer, SlowMs: cfg.SlowMs}, nil
}

// Close closes the pool, nil safe
func (p *PG) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}
