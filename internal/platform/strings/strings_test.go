package strings

import (
	"testing"

	"ballotbox/internal/platform/testkit"
)

func TestMustPrefix(t *testing.T) {
	for in, want := range map[string]string{
		"ballots":     "/ballots",
		"/ballots/":   "/ballots",
		" //meta// ":  "/meta",
		"/api/v1/ops": "/api/v1/ops",
	} {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q want %q", in, got, want)
		}
	}
	for _, bad := range []string{"", " ", "/", "//"} {
		testkit.MustPanic(t, func() { MustPrefix(bad) })
	}
}

func TestMustString(t *testing.T) {
	if MustString("ballots", "module name") != "ballots" {
		t.Fatalf("value changed")
	}
	testkit.MustPanic(t, func() { MustString(" \t", "module name") })
}
