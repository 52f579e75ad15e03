// Package rds provides a redis client with a lock client bound to it
package rds

import (
	"context"
	"errors"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// Config configures the redis client
type Config struct {
	Addr       string
	Password   string
	DB         int
	PoolSize   int
	ClientName string
}

// RDS is a redis client plus the lock client that shares its pool
type RDS struct {
	Client *redis.Client
	Locker *redislock.Client
}

var newClient = redis.NewClient

// Open builds the client without dialing; callers ping before use
func Open(cfg Config) (*RDS, error) {
	if cfg.Addr == "" {
		return nil, errors.New("rds: empty addr")
	}
	c := newClient(&redis.Options{
		Addr:       cfg.Addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		PoolSize:   cfg.PoolSize,
		ClientName: cfg.ClientName,
	})
	return &RDS{Client: c, Locker: redislock.New(c)}, nil
}

// Ping checks the connection
func (r *RDS) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("rds: nil client")
	}
	return r.Client.Ping(ctx).Err()
}

// Close closes the pool
func (r *RDS) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
