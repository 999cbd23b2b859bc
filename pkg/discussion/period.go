// Package discussion holds the rules for an idea's discussion period: parsing the free-text
// duration stored on the idea, formatting it back, and computing the countdown.
package discussion

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ManualEndSentinel is stored as the period when an admin ends a discussion by hand.
const ManualEndSentinel = "0 hours"

// MaxHours caps every period and adjustment at five years
const MaxHours = 5 * 365 * 24

var (
	ErrInvalidPeriod    = errors.New("invalid discussion period")
	ErrInvalidAmount    = errors.New("adjustment amount must be positive")
	ErrExceedsRemaining = errors.New("reduction exceeds remaining discussion time")
	ErrUnknownOperation = errors.New("unknown adjustment operation")
	ErrPeriodTooLong    = errors.New("discussion period exceeds the maximum")
)

var (
	dayPattern  = regexp.MustCompile(`(\d+)\s*days?`)
	hourPattern = regexp.MustCompile(`(\d+)\s*hours?`)
	barePattern = regexp.MustCompile(`^\d+$`)
)

// Parse converts a period string into total hours.
//
// Accepted forms: "N day(s)", "N hour(s)", both combined, or a bare integer meaning hours.
// Text around the tokens is ignored.
func Parse(s string) (int, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return 0, ErrInvalidPeriod
	}

	if barePattern.MatchString(v) {
		n, err := strconv.Atoi(v)
		if err != nil || n > MaxHours {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
		}
		return n, nil
	}

	dayMatches := dayPattern.FindAllStringSubmatch(v, -1)
	hourMatches := hourPattern.FindAllStringSubmatch(v, -1)
	if len(dayMatches) == 0 && len(hourMatches) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	total := 0
	for _, m := range dayMatches {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > MaxHours/24 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
		}
		total += n * 24
	}
	for _, m := range hourMatches {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > MaxHours {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
		}
		total += n
	}
	if total > MaxHours {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return total, nil
}

// Format renders total hours in the "<N> days <N> hours" convention.
// Plurals are not corrected: 24 yields "1 days".
func Format(totalHours int) string {
	if totalHours < 0 {
		totalHours = 0
	}
	days := totalHours / 24
	hours := totalHours % 24

	switch {
	case days > 0 && hours > 0:
		return fmt.Sprintf("%d days %d hours", days, hours)
	case days > 0:
		return fmt.Sprintf("%d days", days)
	default:
		return fmt.Sprintf("%d hours", hours)
	}
}

// Normalize parses and re-formats a period.
func Normalize(s string) (string, error) {
	h, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(h), nil
}

// IsManualEnd reports whether the period is the explicit manual-end sentinel.
func IsManualEnd(period string) bool {
	return strings.EqualFold(strings.TrimSpace(period), ManualEndSentinel)
}

// EndsAt returns start plus the period.
func EndsAt(period string, start time.Time) (time.Time, error) {
	h, err := Parse(period)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(h) * time.Hour), nil
}
