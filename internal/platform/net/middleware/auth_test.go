package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perrs "ballotbox/internal/platform/errors"
	"ballotbox/internal/platform/net"
	"ballotbox/internal/platform/net/middleware"
)

type fakeAuthPort struct {
	op  string
	err error
}

func (f fakeAuthPort) Parse(*http.Request) (string, error) { return f.op, f.err }

func writeStub(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
}

func TestAuth(t *testing.T) {
	cases := []struct {
		name     string
		port     middleware.AuthPort
		wantCode int
		wantNext bool
		wantOp   string
	}{
		{name: "nil port passes through", wantCode: 200, wantNext: true},
		{name: "refused", port: fakeAuthPort{err: perrs.Unauthorizedf("invalid bearer token")}, wantCode: 401},
		{name: "plain error", port: fakeAuthPort{err: errors.New("boom")}, wantCode: 500},
		{name: "operator on context", port: fakeAuthPort{op: "admin"}, wantCode: 200, wantNext: true, wantOp: "admin"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var called bool
			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				seen = net.Operator(r.Context())
				w.WriteHeader(200)
			})

			rr := httptest.NewRecorder()
			middleware.Auth(tc.port, writeStub)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

			if rr.Code != tc.wantCode {
				t.Fatalf("status %d want %d", rr.Code, tc.wantCode)
			}
			if called != tc.wantNext {
				t.Fatalf("next called=%v want %v", called, tc.wantNext)
			}
			if seen != tc.wantOp {
				t.Fatalf("operator %q want %q", seen, tc.wantOp)
			}
		})
	}
}
