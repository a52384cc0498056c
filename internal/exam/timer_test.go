package exam

import (
	"context"
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-time.Minute, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{time.Minute, "00:01:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{3*time.Hour - time.Second, "02:59:59"},
		{100 * time.Hour, "100:00:00"},
	}
	for _, tc := range tests {
		if got := FormatClock(tc.d); got != tc.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestTakeSnapshotLowTime(t *testing.T) {
	now := time.Now()
	threshold := 300 * time.Second

	tests := []struct {
		name    string
		in      time.Duration
		lowTime bool
		expired bool
	}{
		{"well above threshold", time.Hour, false, false},
		{"just above threshold", threshold + time.Second, false, false},
		{"at threshold", threshold, true, false},
		{"below threshold", time.Minute, true, false},
		{"at deadline", 0, true, true},
		{"past deadline", -time.Minute, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := TakeSnapshot(now.Add(tc.in), now, threshold)
			if snap.LowTime != tc.lowTime {
				t.Errorf("LowTime = %v, want %v", snap.LowTime, tc.lowTime)
			}
			if snap.Expired != tc.expired {
				t.Errorf("Expired = %v, want %v", snap.Expired, tc.expired)
			}
			if tc.expired && snap.Clock != "00:00:00" {
				t.Errorf("expired clock = %q, want 00:00:00", snap.Clock)
			}
		})
	}
}

func TestCountdownExpiredDeadlineFiresOnce(t *testing.T) {
	// Deadline already in the past: the first reading reports 00:00:00 and
	// the expiry callback fires exactly once.
	c := NewCountdown(time.Now().Add(-time.Second), 0, time.Millisecond)

	var ticks []Snapshot
	fired := 0
	c.Run(context.Background(), func(s Snapshot) {
		ticks = append(ticks, s)
	}, func() {
		fired++
	})

	if fired != 1 {
		t.Fatalf("expiry fired %d times, want 1", fired)
	}
	if len(ticks) != 1 {
		t.Fatalf("got %d ticks, want 1", len(ticks))
	}
	if ticks[0].Clock != "00:00:00" {
		t.Errorf("expired clock = %q, want 00:00:00", ticks[0].Clock)
	}
}

func TestCountdownNeverRefires(t *testing.T) {
	c := NewCountdown(time.Now().Add(-time.Minute), 0, time.Millisecond)

	fired := 0
	// Drive the tick directly: even repeated post-expiry ticks must not
	// re-invoke the callback once the fired state is reached.
	for i := 0; i < 5; i++ {
		c.tick(time.Now(), nil, func() { fired++ })
	}
	if fired != 1 {
		t.Errorf("expiry fired %d times across repeated ticks, want 1", fired)
	}
}

func TestCountdownCancellationStopsTicks(t *testing.T) {
	c := NewCountdown(time.Now().Add(time.Hour), 0, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	tickCh := make(chan Snapshot, 64)
	done := make(chan struct{})
	fired := 0

	go func() {
		c.Run(ctx, func(s Snapshot) { tickCh <- s }, func() { fired++ })
		close(done)
	}()

	// Let a few ticks happen, then deactivate.
	<-tickCh
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	if fired != 0 {
		t.Errorf("expiry fired %d times for a live deadline", fired)
	}

	// No further callbacks after deactivation.
	drained := len(tickCh)
	time.Sleep(25 * time.Millisecond)
	if len(tickCh) != drained {
		t.Error("ticks continued after cancellation")
	}
}
