package time

import (
	"testing"
	"time"
)

func TestPtr(t *testing.T) {
	if Ptr(time.Time{}) != nil {
		t.Fatalf("zero time must be nil")
	}
	at := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)
	p := Ptr(at)
	if p == nil || !p.Equal(at) {
		t.Fatalf("Ptr = %v", p)
	}
	*p = p.Add(time.Hour)
	if !at.Equal(time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)) {
		t.Fatalf("Ptr aliased its argument")
	}
}
