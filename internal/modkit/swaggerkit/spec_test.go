package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "ballotbox/internal/platform/net/http"
	"ballotbox/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestPatchSpec(t *testing.T) {
	spec := map[string]any{
		"swagger": "2.0",
		"paths": map[string]any{
			"/ballots/stats": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{}}},
			},
			"/ballots/upload": map[string]any{
				"post": map[string]any{"responses": map[string]any{"400": "declared"}},
			},
		},
	}
	patchSpec(spec, "/api/v1")

	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil {
		t.Fatalf("version: %v / %v", spec["openapi"], spec["swagger"])
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers: %v", servers)
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatalf("error schema missing")
	}

	get := spec["paths"].(map[string]any)["/ballots/stats"].(map[string]any)["get"].(map[string]any)
	res := get["responses"].(map[string]any)
	for _, code := range []string{"200", "400", "500"} {
		if _, ok := res[code]; !ok {
			t.Fatalf("stats missing %s: %v", code, res)
		}
	}
	post := spec["paths"].(map[string]any)["/ballots/upload"].(map[string]any)["post"].(map[string]any)
	if post["responses"].(map[string]any)["400"] != "declared" {
		t.Fatalf("declared responses must be kept")
	}
}

func TestPatchSpec_KeepsOAS30AndServers(t *testing.T) {
	spec := map[string]any{"openapi": "3.1.0", "servers": []any{"custom"}}
	patchSpec(spec, "/api/v1")
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("3.1 must be lowered: %v", spec["openapi"])
	}
	if s := spec["servers"].([]any); len(s) != 1 || s[0] != "custom" {
		t.Fatalf("servers overwritten: %v", s)
	}
}

func TestMount(t *testing.T) {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	Mount(r, false)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled docs served: %d", rec.Code)
	}

	mux = chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect: %d", rec.Code)
	}

	testkit.Swap(t, &docReader, func() string { return `{"swagger":"2.0","paths":{}}` })

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil || spec["openapi"] != "3.0.3" {
		t.Fatalf("doc.json: %v %s", err, rec.Body.String())
	}

	docReader = func() string { return "{" }
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("bad doc: %d", rec.Code)
	}
}

func TestDocReader_RegisteredDocument(t *testing.T) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
		t.Fatalf("registered document is not json: %v", err)
	}
	patchSpec(spec, "/api/v1")

	info, _ := spec["info"].(map[string]any)
	if info["title"] != "Ballotbox API" {
		t.Fatalf("info: %v", info)
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range []string{"/ballots/upload", "/ballots/rows", "/ballots/candidates/{candidate}/voters", "/meta/ready"} {
		if _, ok := paths[p]; !ok {
			t.Fatalf("missing path %s", p)
		}
	}
	upload := paths["/ballots/upload"].(map[string]any)["post"].(map[string]any)
	if _, ok := upload["responses"].(map[string]any)["400"]; !ok {
		t.Fatalf("default error responses not added: %v", upload["responses"])
	}
}
