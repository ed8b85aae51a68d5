package sim

import (
	"fmt"
	"strings"
	"time"

	"badgagotchi/internal/store"
)

// SurvivalClock measures how long the current life has lasted and keeps
// the best time ever observed, via the record keeper.
type SurvivalClock struct {
	keeper *store.Keeper
	now    func() time.Time
	start  time.Time
}

// NewSurvivalClock creates a clock. A nil now uses wall time.
func NewSurvivalClock(keeper *store.Keeper, now func() time.Time) *SurvivalClock {
	if now == nil {
		now = time.Now
	}
	return &SurvivalClock{keeper: keeper, now: now}
}

// Start marks the birth of a life.
func (c *SurvivalClock) Start() {
	c.start = c.now()
}

// Elapsed returns how long the current life has been running.
func (c *SurvivalClock) Elapsed() time.Duration {
	return c.now().Sub(c.start)
}

// Best returns the best survival time on record.
func (c *SurvivalClock) Best() time.Duration {
	return time.Duration(c.keeper.Record().BestSeconds * float64(time.Second))
}

// Finish stops the life and records a new best if this one beat it.
// Returns the final time and whether it set a record.
func (c *SurvivalClock) Finish() (time.Duration, bool) {
	elapsed := c.Elapsed()
	if elapsed.Seconds() > c.keeper.Record().BestSeconds {
		c.keeper.SetBestSeconds(elapsed.Seconds())
		return elapsed, true
	}
	return elapsed, false
}

// FormatDuration renders a duration as "1d 2h 3m 4s", omitting leading
// zero units. Seconds are always shown, so zero renders as "0s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if len(parts) > 0 || hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if len(parts) > 0 || minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))
	return strings.Join(parts, " ")
}
