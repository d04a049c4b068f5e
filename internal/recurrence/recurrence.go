// Package recurrence decides whether a recurrence rule spawns a task on a given day.
//
// "Today", the weekday, the day of month and month distances are taken in the
// rule's own time zone. Day and week distances are whole elapsed 24h and 7x24h
// periods since the last generation, rounded down.
package recurrence

import (
	"time"

	"taskboard/internal/model"
)

// Location resolves a rule's IANA time zone, falling back to fallback (or UTC)
// when the name is empty or unknown.
func Location(tz string, fallback *time.Location) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if fallback != nil {
		return fallback
	}
	return time.UTC
}

// DayStart returns midnight of t's calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// LocalDate returns the calendar date of t in loc as a UTC midnight, suitable
// for DATE columns.
func LocalDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ShouldGenerate reports whether rule must produce a task on now's calendar day.
// It does not know whether a task was already produced today; callers pair it
// with a per-day guard.
func ShouldGenerate(rule model.RecurrenceRule, now time.Time, fallback *time.Location) bool {
	loc := Location(rule.Timezone, fallback)
	local := now.In(loc)
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	switch rule.Frequency {
	case model.FrequencyDaily, model.FrequencyCustom:
		if rule.LastGeneratedAt == nil {
			return true
		}
		return elapsed(*rule.LastGeneratedAt, now, day) >= interval

	case model.FrequencyWeekly:
		if len(rule.DaysOfWeek) > 0 && !containsWeekday(rule.DaysOfWeek, local.Weekday()) {
			return false
		}
		if rule.LastGeneratedAt == nil {
			return true
		}
		return elapsed(*rule.LastGeneratedAt, now, week) >= interval

	case model.FrequencyMonthly:
		if rule.DayOfMonth != nil && local.Day() != *rule.DayOfMonth {
			return false
		}
		if rule.LastGeneratedAt == nil {
			return true
		}
		return monthsBetween(*rule.LastGeneratedAt, now, loc) >= interval
	}
	return false
}

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// elapsed counts whole periods from a to b. It is negative when b precedes a.
func elapsed(a, b time.Time, period time.Duration) int {
	return int(b.Sub(a) / period)
}

func monthsBetween(a, b time.Time, loc *time.Location) int {
	ya, ma, _ := a.In(loc).Date()
	yb, mb, _ := b.In(loc).Date()
	return (yb-ya)*12 + int(mb) - int(ma)
}

func containsWeekday(days []int, wd time.Weekday) bool {
	for _, d := range days {
		if d == int(wd) {
			return true
		}
	}
	return false
}
