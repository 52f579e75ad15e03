package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ballotbox/internal/platform/config"
	phttp "ballotbox/internal/platform/net/http"
)

func TestNewServer_Addr(t *testing.T) {
	t.Setenv("HTTPTEST_PORT", ":4999")
	if got := phttp.NewServer(config.New().Prefix("HTTPTEST_")).Addr(); got != ":4999" {
		t.Fatalf("addr %q", got)
	}
	if got := phttp.NewServer(config.New().Prefix("HTTPTEST_UNSET_")).Addr(); got != ":4000" {
		t.Fatalf("default addr %q", got)
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Setenv("HTTPRUN_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New().Prefix("HTTPRUN_"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestMountProfiler(t *testing.T) {
	srv := phttp.NewServer(config.New())
	phttp.MountProfiler(srv.Router(), "/debug", false)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler: %d", rec.Code)
	}

	srv = phttp.NewServer(config.New())
	phttp.MountProfiler(srv.Router(), "/debug", true)
	for _, p := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: %d", p, rec.Code)
		}
	}
}
