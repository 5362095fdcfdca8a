package search

import "time"

// TimeKeeper is a read-only, scoped deadline object the search polls for
// timeout. It records a start instant and a duration; IsTimeout is a
// monotonic-clock comparison, matching the shape of the teacher's
// TimeManager (internal/engine/timeman.go in the pre-transform tree),
// trimmed to the single responsibility the search needs: "have we run
// out of time," with no move-allocation heuristics (those belonged to a
// chess time-control model this system doesn't have — an arena match
// passes one fixed per-move timeout instead).
type TimeKeeper struct {
	start   time.Time
	timeout time.Duration
}

// NewTimeKeeper starts a deadline timeout from now.
func NewTimeKeeper(timeout time.Duration) *TimeKeeper {
	return &TimeKeeper{start: time.Now(), timeout: timeout}
}

// IsTimeout reports whether the deadline has passed.
func (tk *TimeKeeper) IsTimeout() bool {
	return time.Since(tk.start) >= tk.timeout
}

// Elapsed returns the time elapsed since the TimeKeeper was constructed.
func (tk *TimeKeeper) Elapsed() time.Duration {
	return time.Since(tk.start)
}
