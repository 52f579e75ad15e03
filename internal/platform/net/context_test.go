package net_test

import (
	"context"
	"testing"

	pnet "ballotbox/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	cases := []struct {
		name     string
		reqID    string
		operator string
	}{
		{name: "both", reqID: "req-123", operator: "admin"},
		{name: "request id only", reqID: "r-only"},
		{name: "operator only", operator: "ops"},
		{name: "neither"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctx := pnet.WithRequest(base, tc.reqID, tc.operator)
			if got := pnet.RequestID(ctx); got != tc.reqID {
				t.Fatalf("RequestID got %q want %q", got, tc.reqID)
			}
			if got := pnet.Operator(ctx); got != tc.operator {
				t.Fatalf("Operator got %q want %q", got, tc.operator)
			}
			if tc.reqID == "" && tc.operator == "" && ctx != base {
				t.Fatalf("expected ctx to be unchanged when both ids empty")
			}
		})
	}
}
