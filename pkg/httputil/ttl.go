package httputil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	errs "github.com/matzehuels/chirp/pkg/errors"
)

// TTL decides whether a cached entry is still fresh.
//
// A TTL is evaluated at lookup time, so relative expressions such as
// "today" move with the clock: an entry written yesterday evening is fresh
// under "today" until midnight and expired right after.
type TTL interface {
	// Expired reports whether an entry written at storedAt is stale at now.
	Expired(storedAt, now time.Time) bool

	// String returns the expression the TTL was built from.
	String() string
}

// Fixed returns a TTL of constant length. A non-positive d never expires.
func Fixed(d time.Duration) TTL { return fixedTTL(d) }

type fixedTTL time.Duration

func (t fixedTTL) Expired(storedAt, now time.Time) bool {
	if t <= 0 {
		return false
	}
	return now.Sub(storedAt) >= time.Duration(t)
}

func (t fixedTTL) String() string {
	if t <= 0 {
		return "never"
	}
	return time.Duration(t).String()
}

// relativeTTL expires entries written before a cutoff derived from now.
type relativeTTL struct {
	expr   string
	cutoff func(now time.Time) time.Time
}

func (t relativeTTL) Expired(storedAt, now time.Time) bool {
	return storedAt.Before(t.cutoff(now))
}

func (t relativeTTL) String() string { return t.expr }

// ParseTTL parses a TTL expression.
//
// Accepted forms:
//   - "" or "never": entries never expire
//   - a Go duration: "90s", "30m", "1h30m"
//   - a bare number of seconds: "3600"
//   - a relative phrase: "10 minutes", "-10 minutes", "2 hours ago", "1 week"
//   - a calendar anchor: "today" or "midnight" (fresh if written since
//     local midnight), "yesterday" (fresh if written since the previous
//     midnight), "now" (always expired)
//
// The sign of a relative phrase is ignored: "-10 minutes", "10 minutes ago"
// and "10 minutes" all accept entries written within the last ten minutes.
// Day, week, month and year units follow the calendar in the clock's location.
func ParseTTL(expr string) (TTL, error) {
	s := strings.ToLower(strings.TrimSpace(expr))

	switch s {
	case "", "never", "0":
		return Fixed(0), nil
	case "now":
		return relativeTTL{expr: s, cutoff: func(now time.Time) time.Time { return now.Add(time.Nanosecond) }}, nil
	case "today", "midnight":
		return relativeTTL{expr: s, cutoff: startOfDay}, nil
	case "yesterday":
		return relativeTTL{expr: s, cutoff: func(now time.Time) time.Time {
			return startOfDay(now).AddDate(0, 0, -1)
		}}, nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		return Fixed(absDuration(d)), nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Fixed(absDuration(time.Duration(n) * time.Second)), nil
	}

	cutoff, err := parseRelative(s)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidTTL, err, "invalid cache TTL %q", expr)
	}
	return relativeTTL{expr: s, cutoff: cutoff}, nil
}

// MustParseTTL is like ParseTTL but panics on error. It is intended for
// constant expressions.
func MustParseTTL(expr string) TTL {
	t, err := ParseTTL(expr)
	if err != nil {
		panic(err)
	}
	return t
}

// parseRelative parses "[+|-]N unit[s] [ago]".
func parseRelative(s string) (func(time.Time) time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) > 0 && fields[len(fields)-1] == "ago" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) != 2 {
		return nil, fmt.Errorf("want \"N unit\", got %d words", len(fields))
	}

	n, err := strconv.Atoi(strings.TrimPrefix(fields[0], "+"))
	if err != nil {
		return nil, fmt.Errorf("bad count %q", fields[0])
	}
	if n < 0 {
		n = -n
	}

	unit := strings.TrimSuffix(fields[1], "s")
	switch unit {
	case "sec", "second":
		return back(time.Duration(n) * time.Second), nil
	case "min", "minute":
		return back(time.Duration(n) * time.Minute), nil
	case "hour":
		return back(time.Duration(n) * time.Hour), nil
	case "day":
		return backDate(0, 0, n), nil
	case "week":
		return backDate(0, 0, 7*n), nil
	case "month":
		return backDate(0, n, 0), nil
	case "year":
		return backDate(n, 0, 0), nil
	}
	return nil, fmt.Errorf("unknown unit %q", fields[1])
}

func back(d time.Duration) func(time.Time) time.Time {
	return func(now time.Time) time.Time { return now.Add(-d) }
}

func backDate(years, months, days int) func(time.Time) time.Time {
	return func(now time.Time) time.Time { return now.AddDate(-years, -months, -days) }
}

func startOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
