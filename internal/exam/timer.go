package exam

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultTickInterval is the countdown recomputation period.
	DefaultTickInterval = time.Second
	// DefaultLowTimeThreshold is the remaining duration below which the
	// display enters low-time mode.
	DefaultLowTimeThreshold = 5 * time.Minute
)

// Remaining returns the duration until deadline, clamped to zero.
func Remaining(deadline, now time.Time) time.Duration {
	d := deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// FormatClock renders a duration as a zero-padded HH:MM:SS countdown. Hours
// widen past two digits only when they need to.
func FormatClock(d time.Duration) string {
	if d <= 0 {
		return "00:00:00"
	}
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Snapshot is one computed countdown reading.
type Snapshot struct {
	Remaining time.Duration `json:"-"`
	Seconds   int64         `json:"remaining_seconds"`
	Clock     string        `json:"clock"`
	LowTime   bool          `json:"low_time"`
	Expired   bool          `json:"expired"`
}

// TakeSnapshot computes a countdown reading for a deadline at an instant.
// lowThreshold <= 0 falls back to the default.
func TakeSnapshot(deadline, now time.Time, lowThreshold time.Duration) Snapshot {
	if lowThreshold <= 0 {
		lowThreshold = DefaultLowTimeThreshold
	}
	remaining := Remaining(deadline, now)
	return Snapshot{
		Remaining: remaining,
		Seconds:   int64(remaining / time.Second),
		Clock:     FormatClock(remaining),
		LowTime:   remaining <= lowThreshold,
		Expired:   remaining == 0,
	}
}

// Countdown drives a deadline with a one-shot expiry: an armed → fired state
// machine with no way back. Once fired, further ticks cannot re-invoke the
// expiry callback no matter how long the consumer keeps it around.
type Countdown struct {
	deadline  time.Time
	interval  time.Duration
	threshold time.Duration
	fired     bool
}

// NewCountdown creates a countdown toward deadline. Zero interval or
// threshold select the defaults.
func NewCountdown(deadline time.Time, threshold, interval time.Duration) *Countdown {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if threshold <= 0 {
		threshold = DefaultLowTimeThreshold
	}
	return &Countdown{
		deadline:  deadline,
		interval:  interval,
		threshold: threshold,
	}
}

// Deadline returns the absolute deadline.
func (c *Countdown) Deadline() time.Time { return c.deadline }

// Snapshot computes the current reading.
func (c *Countdown) Snapshot(now time.Time) Snapshot {
	return TakeSnapshot(c.deadline, now, c.threshold)
}

// Run blocks, computing a reading immediately and then once per tick
// interval. onTick receives every reading, including the final expired one.
// When remaining reaches zero, onExpire fires exactly once and Run returns.
// Cancelling the context stops the schedule; no callbacks run after that.
// Either callback may be nil.
func (c *Countdown) Run(ctx context.Context, onTick func(Snapshot), onExpire func()) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		if done := c.tick(time.Now(), onTick, onExpire); done {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// tick computes one reading and handles the armed → fired transition.
// Returns true once the countdown has fired and the schedule should stop.
func (c *Countdown) tick(now time.Time, onTick func(Snapshot), onExpire func()) bool {
	snap := c.Snapshot(now)
	if onTick != nil {
		onTick(snap)
	}
	if !snap.Expired {
		return false
	}
	if !c.fired {
		c.fired = true
		if onExpire != nil {
			onExpire()
		}
	}
	return true
}
