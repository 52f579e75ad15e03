package store

import (
	"context"
	"fmt"
	"time"

	"ballotbox/internal/platform/logger"
	"ballotbox/internal/platform/store/pg"
	"ballotbox/internal/platform/store/rds"
)

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
	backoffStart          = 150 * time.Millisecond
	backoffCeiling        = 2 * time.Second
)

var sleep = func(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// waitReady retries ping with doubling backoff until it passes, attempts run out or ctx ends
func waitReady(ctx context.Context, name string, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	var err error
	for i, wait := 0, backoffStart; i < attempts; i, wait = i+1, min(wait*2, backoffCeiling) {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = ping(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		sleep(ctx, wait)
	}
	return fmt.Errorf("%s ping failed after %d attempts: %w", name, attempts, err)
}

func openPG(ctx context.Context, cfg Config, log logger.Logger) (TxRunner, error) {
	pc := pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}
	if cfg.PG.LogSQL {
		pc.Tracer = pg.LogTracer(log)
	}
	p, err := pg.Open(ctx, pc)
	if err != nil {
		return nil, err
	}

	// boot pings go to the pool so they stay out of the trace
	if err := waitReady(ctx, "postgres", cfg.PG.ConnectRetries, cfg.PG.PingTimeout, p.Pool.Ping); err != nil {
		p.Close()
		return nil, err
	}
	log.Debug().Int32("max_conns", p.Pool.Config().MaxConns).Msg("postgres connected")
	return newPGAdapter(p), nil
}

func openRDS(ctx context.Context, cfg Config, log logger.Logger) (KV, error) {
	r, err := rds.Open(rds.Config{
		Addr:       cfg.RDS.Addr,
		Password:   cfg.RDS.Password,
		DB:         cfg.RDS.DB,
		PoolSize:   cfg.RDS.PoolSize,
		ClientName: cfg.AppName,
	})
	if err != nil {
		return nil, err
	}
	if err := waitReady(ctx, "redis", cfg.RDS.ConnectRetries, cfg.RDS.PingTimeout, r.Ping); err != nil {
		_ = r.Close()
		return nil, err
	}
	log.Debug().Str("addr", cfg.RDS.Addr).Int("db", cfg.RDS.DB).Msg("redis connected")
	return newRDSAdapter(r), nil
}
