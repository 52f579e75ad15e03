package net_test

import (
	"errors"
	"net/http"
	"testing"

	perr "ballotbox/internal/platform/errors"
	pnet "ballotbox/internal/platform/net"
)

func TestReply(t *testing.T) {
	w := pnet.Reply(http.StatusCreated, []string{"Alpha"}, "req-1")
	if w.StatusCode != 201 || w.Status != "Created" || w.RequestID != "req-1" {
		t.Fatalf("wire: %+v", w)
	}
	if w.Code != perr.ErrorCodeUnknown || w.Error != "" {
		t.Fatalf("success must not carry an error: %+v", w)
	}
}

func TestFailure(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
	}{
		{name: "nil", err: nil, status: 200},
		{name: "unauthorized", err: perr.New(perr.ErrorCodeUnauthorized, "missing bearer token"), status: 401, code: perr.ErrorCodeUnauthorized},
		{name: "no valid rows", err: perr.New(perr.ErrorCodeValidation, "no valid rows"), status: 422, code: perr.ErrorCodeValidation},
		{name: "plain error", err: errors.New("boom"), status: 500},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			status, w := pnet.Failure(tc.err, "rid")
			if status != tc.status || w.StatusCode != tc.status {
				t.Fatalf("status %d/%d want %d", status, w.StatusCode, tc.status)
			}
			if w.Code != tc.code {
				t.Fatalf("code %v want %v", w.Code, tc.code)
			}
			if tc.err != nil && w.Error == "" {
				t.Fatalf("error message missing: %+v", w)
			}
			if w.RequestID != "rid" {
				t.Fatalf("request id %q", w.RequestID)
			}
		})
	}
}
