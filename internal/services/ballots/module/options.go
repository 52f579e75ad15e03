package module

import (
	"net/http"
	"time"

	"ballotbox/internal/modkit"
	"ballotbox/internal/modkit/httpkit"
	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/logger"
	"ballotbox/internal/services/ballots/repo"
)

// Option is a configuration option for the ballots module
type Option = modkit.Option

// WithPrefix sets the route prefix for the module
func WithPrefix(prefix string) Option { return modkit.WithPrefix(prefix) }

// WithMiddlewares sets the middlewares for the module
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return modkit.WithMiddlewares(mw...)
}

// WithRegister adds routes next to the module's own
func WithRegister(fn func(httpkit.Router)) Option { return modkit.WithRegister(fn) }

// Storage backends
const (
	StoreMemory = "memory"
	StorePG     = "pg"
	StoreRedis  = "redis"
)

// Settings controls storage and pipeline defaults
type Settings struct {
	Store    string
	Key      string
	Location *time.Location
	Date1904 bool
	PageSize int

	MaxUploadBytes int64
	RedisTTL       time.Duration

	// AdminToken guards ingestion and reset as a bearer token, empty leaves them open
	AdminToken string

	// Warm reloads persisted ballots on Start
	Warm bool
}

// FromConfig reads BALLOTS_* under the given view, CORE_BALLOTS_* from the api root
func FromConfig(cfg config.Conf) Settings {
	c := cfg.Prefix("BALLOTS_")
	return Settings{
		Store:          c.MayEnum("STORE", StoreMemory, StoreMemory, StorePG, StoreRedis),
		Key:            c.MayString("KEY", repo.DefaultKey),
		Location:       mustZone(c.MayString("TZ", "")),
		Date1904:       c.MayBool("DATE1904", false),
		PageSize:       c.MayInt("PAGE_SIZE", 10),
		MaxUploadBytes: int64(c.MayInt("MAX_UPLOAD_MB", 10)) << 20,
		RedisTTL:       c.MayDuration("REDIS_TTL", 0),
		AdminToken:     c.MayString("ADMIN_TOKEN", ""),
		Warm:           c.MayBool("WARM", true),
	}
}

// mustZone loads an IANA zone, empty means the process zone
func mustZone(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Get().Panic().Err(err).Str("key", "BALLOTS_TZ").Str("value", name).Msg("invalid time zone")
	}
	return loc
}
