package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	kit "ballotbox/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":     zerolog.TraceLevel,
		"INFO":      zerolog.InfoLevel,
		" warning ": zerolog.WarnLevel,
		"error":     zerolog.ErrorLevel,
		"":          zerolog.DebugLevel,
		"loud":      zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

// capture points the root logger at a buffer for the test
func capture(t *testing.T, opt Options) *bytes.Buffer {
	t.Helper()
	kit.Serial(t)
	prev := root.Load()
	t.Cleanup(func() { root.Store(prev) })

	var buf bytes.Buffer
	opt.Writer = &buf
	Init(opt)
	return &buf
}

func TestInit_RequestFields(t *testing.T) {
	buf := capture(t, Options{Level: "info", Format: "json", Service: "ballotbox-api", Fields: map[string]string{"build": "test"}})

	ctx := WithRequest(context.Background(), "req-123", "admin")
	C(ctx).Info().Msg("ballots: reset")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	for k, want := range map[string]string{
		"request_id": "req-123",
		"operator":   "admin",
		"service":    "ballotbox-api",
		"build":      "test",
		"message":    "ballots: reset",
	} {
		if line[k] != want {
			t.Fatalf("%s = %v want %q (%s)", k, line[k], want, buf.String())
		}
	}
}

func TestInit_LevelAndNamed(t *testing.T) {
	buf := capture(t, Options{Level: "warn", Format: "console"})

	Named("ballots").Info().Msg("hidden")
	Named("ballots").Warn().Msg("shown")
	C(context.Background()).Warn().Msg("bare")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info leaked at warn: %s", out)
	}
	kit.MustContain(t, out, "shown")
	kit.MustContain(t, out, "component=")
	kit.MustContain(t, out, "bare")
	if strings.Contains(out, "request_id") {
		t.Fatalf("empty context added fields: %s", out)
	}
	if Named("") != Get() {
		t.Fatalf("empty component must return root")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "ballotbox-ingest")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "ballotbox-ingest" {
		t.Fatalf("options %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("options %+v", opt)
	}
}
