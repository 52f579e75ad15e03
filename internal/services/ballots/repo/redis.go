package repo

import (
	"context"
	"time"

	"ballotbox/internal/modkit/repokit"
)

// lock lease for one write; a save is a single SET so this is generous
const redisLockTTL = 10 * time.Second

// Redis stores the blob as a plain JSON string under the key
// writes and clears hold a short lock so replicas never interleave on the key
type Redis struct {
	kv  repokit.KV
	key string
	ttl time.Duration
}

var _ Storage = (*Redis)(nil)

// NewRedis constructs the redis backend, ttl 0 keeps the blob forever
func NewRedis(kv repokit.KV, key string, ttl time.Duration) *Redis {
	if kv == nil {
		panic("ballots.repo.Redis requires a non nil KV")
	}
	if key == "" {
		key = DefaultKey
	}
	return &Redis{kv: kv, key: key, ttl: ttl}
}

// Load reads and decodes the blob
func (r *Redis) Load(ctx context.Context) (Blob, bool, error) {
	raw, found, err := r.kv.Get(ctx, r.key)
	if err != nil || !found {
		return Blob{}, false, err
	}
	recs, err := decode(raw)
	if err != nil {
		return Blob{}, true, err
	}
	return Blob{Records: recs}, true, nil
}

// Save writes the blob under the key lock
func (r *Redis) Save(ctx context.Context, b Blob) error {
	raw, err := encode(b.Records)
	if err != nil {
		return err
	}
	return r.locked(ctx, func() error {
		return r.kv.Set(ctx, r.key, raw, r.ttl)
	})
}

// Clear deletes the blob under the key lock
func (r *Redis) Clear(ctx context.Context) error {
	return r.locked(ctx, func() error {
		return r.kv.Del(ctx, r.key)
	})
}

func (r *Redis) locked(ctx context.Context, fn func() error) (err error) {
	unlock, err := r.kv.Lock(ctx, "lock:"+r.key, redisLockTTL)
	if err != nil {
		return err
	}
	defer func() {
		// release with a fresh context so a cancelled request still frees the key
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if uerr := unlock(rctx); uerr != nil && err == nil {
			err = uerr
		}
	}()
	return fn()
}
