package discussion

import "time"

// Remaining is the countdown split into whole units.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// IsZero reports whether no time is left.
func (r Remaining) IsZero() bool {
	return r == Remaining{}
}

// Duration converts the countdown back to a duration.
func (r Remaining) Duration() time.Duration {
	return time.Duration(r.Days)*24*time.Hour +
		time.Duration(r.Hours)*time.Hour +
		time.Duration(r.Minutes)*time.Minute +
		time.Duration(r.Seconds)*time.Second
}

// State is the lifecycle of a discussion at a point in time.
type State string

const (
	StateActive        State = "active"
	StateExpired       State = "expired"
	StateManuallyEnded State = "manually_ended"
)

// Left returns the time left before the discussion ends, never negative.
// An unparsable period counts as already ended.
func Left(period string, start, now time.Time) time.Duration {
	end, err := EndsAt(period, start)
	if err != nil {
		return 0
	}
	d := end.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// CalculateRemaining computes the countdown for a period that started at start.
func CalculateRemaining(period string, start, now time.Time) Remaining {
	d := Left(period, start, now)
	if d <= 0 {
		return Remaining{}
	}

	total := int64(d / time.Second)
	return Remaining{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

// StateOf classifies a discussion. The manual-end sentinel wins over organic expiry.
func StateOf(period string, start, now time.Time) State {
	if IsManualEnd(period) {
		return StateManuallyEnded
	}
	if Left(period, start, now) <= 0 {
		return StateExpired
	}
	return StateActive
}
