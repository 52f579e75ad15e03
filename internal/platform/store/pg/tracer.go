package pg

import (
	"context"
	"strings"

	"ballotbox/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent is one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives every statement the adapter runs
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// LogTracer writes statements to log regardless of the root level
// plain statements go out at info, slow ones at warn, failed ones at error
func LogTracer(log logger.Logger) QueryTracer {
	return logTracer{log: log.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type logTracer struct{ log zerolog.Logger }

func (t logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	e := t.log.Info()
	switch {
	case ev.Err != nil:
		e = t.log.Error().Err(ev.Err)
	case ev.Slow:
		e = t.log.Warn()
	}
	e.Str("sql", Squash(ev.SQL)).
		Interface("args", ev.Args).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Msg("pg query")
}

// Squash folds whitespace runs to one space and trims the ends
func Squash(sql string) string { return strings.Join(strings.Fields(sql), " ") }
