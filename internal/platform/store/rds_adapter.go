package store

import (
	"context"
	"errors"
	"time"

	perr "ballotbox/internal/platform/errors"
	"ballotbox/internal/platform/store/rds"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned by KV.Lock when another holder keeps the key past the retry window
var ErrLockHeld = perr.New(perr.ErrorCodeConflict, "lock held by another writer")

// lock retry window, about one second in total
const (
	lockBackoff = 50 * time.Millisecond
	lockRetries = 20
)

// rdsAdapter adapts *rds.RDS to the KV seam
type rdsAdapter struct {
	r *rds.RDS
}

var _ KV = (*rdsAdapter)(nil)

func newRDSAdapter(r *rds.RDS) *rdsAdapter { return &rdsAdapter{r: r} }

func (a *rdsAdapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := a.r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (a *rdsAdapter) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return a.r.Client.Set(ctx, key, val, ttl).Err()
}

func (a *rdsAdapter) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return a.r.Client.Del(ctx, keys...).Err()
}

func (a *rdsAdapter) Lock(ctx context.Context, key string, ttl time.Duration) (Unlock, error) {
	l, err := a.r.Locker.Obtain(ctx, key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(lockBackoff), lockRetries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, perr.Detailf(ErrLockHeld, "lock %q held by another writer", key)
	}
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		if err := l.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, nil
}

func (a *rdsAdapter) Ping(ctx context.Context) error { return a.r.Ping(ctx) }

func (a *rdsAdapter) Close() error { return a.r.Close() }
