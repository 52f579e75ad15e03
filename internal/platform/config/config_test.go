package config

import (
	"testing"
	"time"

	kit "ballotbox/internal/platform/testkit"
)

func TestConf_Strings(t *testing.T) {
	t.Setenv("CFGT_CORE_BALLOTS_KEY", "  votes:v2 ")
	t.Setenv("CFGT_CORE_BALLOTS_BLANK", "   ")

	c := New().Prefix("CFGT_").Prefix("CORE_BALLOTS_")
	if got := c.MustString("KEY"); got != "votes:v2" {
		t.Fatalf("MustString = %q", got)
	}
	if got := c.MayString("BLANK", "def"); got != "def" {
		t.Fatalf("blank MayString = %q", got)
	}
	kit.MustPanic(t, func() { c.MustString("BLANK") })
	kit.MustPanic(t, func() { c.MustString("MISSING") })
}

func TestConf_Typed(t *testing.T) {
	t.Setenv("CFGT_PAGE_SIZE", "25")
	t.Setenv("CFGT_BAD_INT", "ten")
	t.Setenv("CFGT_WARM", "false")
	t.Setenv("CFGT_BAD_BOOL", "maybe")
	t.Setenv("CFGT_TTL", "24h")
	t.Setenv("CFGT_BAD_TTL", "forever")

	c := New().Prefix("CFGT_")
	if c.MayInt("PAGE_SIZE", 10) != 25 || c.MayInt("BAD_INT", 10) != 10 || c.MayInt("MISSING", 10) != 10 {
		t.Fatalf("MayInt")
	}
	if c.MayBool("WARM", true) || !c.MayBool("BAD_BOOL", true) || !c.MayBool("MISSING", true) {
		t.Fatalf("MayBool")
	}
	if c.MayDuration("TTL", 0) != 24*time.Hour || c.MayDuration("BAD_TTL", time.Minute) != time.Minute {
		t.Fatalf("MayDuration")
	}
}

func TestConf_MayEnum(t *testing.T) {
	t.Setenv("CFGT_STORE", "Redis")
	t.Setenv("CFGT_BAD_STORE", "sqlite")

	c := New().Prefix("CFGT_")
	if got := c.MayEnum("STORE", "memory", "memory", "pg", "redis"); got != "redis" {
		t.Fatalf("enum must return the allowed spelling, got %q", got)
	}
	if got := c.MayEnum("MISSING", "memory", "memory", "pg"); got != "memory" {
		t.Fatalf("default %q", got)
	}
	kit.MustPanic(t, func() { c.MayEnum("BAD_STORE", "memory", "memory", "pg", "redis") })
}
