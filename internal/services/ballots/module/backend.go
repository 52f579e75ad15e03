package module

import (
	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/store"
)

// StoreConfig enables only the backend set.Store persists to
// postgres reads SERVICE_PGSQL_* and redis SERVICE_REDIS_* from root
func StoreConfig(root config.Conf, app string, set Settings) store.Config {
	cfg := store.Config{AppName: app}
	switch set.Store {
	case StorePG:
		c := root.Prefix("SERVICE_PGSQL_")
		cfg.PG = store.PGConfig{
			Enabled:        true,
			URL:            c.MustString("DBURL"),
			MaxConns:       int32(c.MayInt("MAX_CONNS", 4)),
			SlowQueryMs:    c.MayInt("SLOW_MS", 500),
			LogSQL:         c.MayBool("LOG_SQL", false),
			ConnectRetries: c.MayInt("CONNECT_RETRIES", 0),
			PingTimeout:    c.MayDuration("PING_TIMEOUT", 0),
		}
	case StoreRedis:
		c := root.Prefix("SERVICE_REDIS_")
		cfg.RDS = store.RedisConfig{
			Enabled:        true,
			Addr:           c.MustString("ADDR"),
			Password:       c.MayString("PASSWORD", ""),
			DB:             c.MayInt("DB", 0),
			PoolSize:       c.MayInt("POOL_SIZE", 10),
			ConnectRetries: c.MayInt("CONNECT_RETRIES", 0),
			PingTimeout:    c.MayDuration("PING_TIMEOUT", 0),
		}
	}
	return cfg
}
