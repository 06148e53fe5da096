package pgliteral

import (
	"fmt"
	"strings"
	"time"
)

const (
	microsPerMillisecond = 1000
	microsPerSecond      = 1000 * microsPerMillisecond
	microsPerMinute      = 60 * microsPerSecond
	microsPerHour        = 60 * microsPerMinute
	microsPerDay         = 24 * microsPerHour
)

// intervalParts is the calendar-like decomposition of a signed span.
// The sign is recorded separately from the component magnitudes.
type intervalParts struct {
	days         int64
	hours        int64
	minutes      int64
	seconds      int64
	milliseconds int64
	microseconds int64
	negative     bool
}

// decomposeInterval splits the absolute value of d into calendar-like
// components at microsecond resolution.
func decomposeInterval(d time.Duration) intervalParts {
	us := d.Microseconds()
	p := intervalParts{negative: us < 0}
	if p.negative {
		us = -us
	}
	p.days = us / microsPerDay
	us %= microsPerDay
	p.hours = us / microsPerHour
	us %= microsPerHour
	p.minutes = us / microsPerMinute
	us %= microsPerMinute
	p.seconds = us / microsPerSecond
	us %= microsPerSecond
	p.milliseconds = us / microsPerMillisecond
	p.microseconds = us % microsPerMillisecond
	return p
}

// formatInterval formats an interval value as a quoted literal of
// comma-separated "<value> <unit>" components. Zero components are omitted;
// for negative spans every retained component carries a leading minus. A
// zero-length span keeps the empty join result and encodes as '' rather
// than a special-cased '0'.
func (e *PostgresEncoder) formatInterval(d time.Duration) string {
	p := decomposeInterval(d)

	var parts []string
	component := func(v int64, unit string) {
		if v == 0 {
			return
		}
		if p.negative {
			parts = append(parts, fmt.Sprintf("-%d %s", v, unit))
			return
		}
		parts = append(parts, fmt.Sprintf("%d %s", v, unit))
	}
	component(p.days, "days")
	component(p.hours, "hours")
	component(p.minutes, "minutes")
	component(p.seconds, "seconds")
	component(p.milliseconds, "milliseconds")
	component(p.microseconds, "microseconds")

	return "'" + strings.Join(parts, ", ") + "'"
}
