package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "ballotbox/internal/platform/net"
	phttp "ballotbox/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestProtected_WiresOnlyInsideGroup(t *testing.T) {
	t.Parallel()

	root := &fakeRouter{}
	Protected(root, NewPortFunc(StaticToken("k", "admin")), func(gr Router) {
		gr.Post("/upload", nil)
	})
	if root.useCalls != 1 || root.mwLen != 1 {
		t.Fatalf("expected one auth middleware, got use=%d len=%d", root.useCalls, root.mwLen)
	}
	if len(root.routes) != 1 || root.routes[0] != "POST /upload" {
		t.Fatalf("routes: %v", root.routes)
	}
}

func TestProtected_GuardsRequests(t *testing.T) {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)

	var seen string
	ok := func(w http.ResponseWriter, req *http.Request) {
		seen = pnet.Operator(req.Context())
		w.WriteHeader(http.StatusNoContent)
	}
	r.Get("/open", ok)
	Protected(r, NewPortFunc(StaticToken("k", "admin")), func(gr Router) {
		gr.Post("/write", ok)
	})

	cases := []struct {
		name   string
		method string
		path   string
		authz  string
		want   int
		op     string
	}{
		{name: "open route", method: http.MethodGet, path: "/open", want: 204},
		{name: "no token", method: http.MethodPost, path: "/write", want: 401},
		{name: "wrong token", method: http.MethodPost, path: "/write", authz: "Bearer nope", want: 401},
		{name: "good token", method: http.MethodPost, path: "/write", authz: "Bearer k", want: 204, op: "admin"},
	}
	for _, tc := range cases {
		seen = ""
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.authz != "" {
			req.Header.Set("Authorization", tc.authz)
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s: status %d want %d", tc.name, rec.Code, tc.want)
		}
		if seen != tc.op {
			t.Fatalf("%s: operator %q want %q", tc.name, seen, tc.op)
		}
	}
}

func TestProtected_NilPortIsOpen(t *testing.T) {
	mux := chi.NewRouter()
	Protected(phttp.AdaptChi(mux), nil, func(gr Router) {
		gr.Post("/write", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/write", nil))
	if rec.Code != 204 {
		t.Fatalf("status %d", rec.Code)
	}
}
