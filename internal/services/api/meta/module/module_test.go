package module

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ballotbox/internal/modkit"
	phttp "ballotbox/internal/platform/net/http"
	"ballotbox/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestNew_MountsMeta(t *testing.T) {
	m := New(modkit.Deps{}, func() (string, bool) { return "memory", false })
	if m.Name() != "meta" || m.Ports() != nil {
		t.Fatalf("name=%s ports=%v", m.Name(), m.Ports())
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready: %d", rec.Code)
	}
	testkit.MustContain(t, rec.Body.String(), `"skipped"`)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/pipeline", nil))
	testkit.MustContain(t, rec.Body.String(), `"store":"memory"`)
}

func TestNew_PrefixOverride(t *testing.T) {
	m := New(modkit.Deps{}, nil, modkit.WithPrefix("/about"))
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/about/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health: %d", rec.Code)
	}
}
