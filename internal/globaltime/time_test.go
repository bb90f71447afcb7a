package globaltime

import (
	"testing"
	"time"
)

func TestSetMockTime(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	SetMockTime(fixed)
	t.Cleanup(ResetTime)

	if got := UTC(); !got.Equal(fixed) || got.Location() != time.UTC {
		t.Fatalf("unexpected UTC time: %s", got)
	}
	if got := Since(fixed.Add(-90 * time.Second)); got != 90*time.Second {
		t.Fatalf("unexpected duration: %s", got)
	}
}
