// Package recurrence contains the recurrence scheduling use cases.
package recurrence

import (
	"time"

	"github.com/granabot/backend/internal/domain/entity"
	domainerror "github.com/granabot/backend/internal/domain/error"
)

// Per-frequency search bounds. Every search below terminates or fails
// within a bounded number of iterations on the order of one full year
// times the rule interval; exceeding the bound yields ErrNoMoreOccurrences
// instead of looping forever. This is a hard safety property, not an
// optimization: a rule anchored on day 31 with a 12-month interval landing
// on April every year has no valid occurrence, ever.
const (
	weeklySearchDays   = 366 // day steps per interval unit
	monthlySearchSteps = 12  // month jumps per interval unit
	annualSearchSteps  = 9   // year jumps per interval unit; the search starts in the year of the previous occurrence, so the 2096-to-2104 Feb-29 gap needs nine probes
)

// dateOnly normalizes a timestamp to midnight UTC of its calendar date.
// All occurrence arithmetic works on calendar dates, never time-of-day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextOccurrence computes the next valid occurrence of the rule strictly
// after the given date. The search starts at after + 1 day. It returns
// ErrNoMoreOccurrences when the bounded search finds no valid date, and a
// configuration error when the rule's schedule fields are invalid.
func NextOccurrence(rule *entity.RecurrenceRule, after time.Time) (time.Time, error) {
	if err := ValidateSchedule(rule); err != nil {
		return time.Time{}, err
	}

	after = dateOnly(after)
	searchStart := after.AddDate(0, 0, 1)

	switch rule.Frequency {
	case entity.FrequencyDaily:
		return searchStart.AddDate(0, 0, rule.Interval-1), nil
	case entity.FrequencyWeekly:
		return nextWeekly(rule, after, searchStart)
	case entity.FrequencyMonthly:
		return nextMonthly(rule, after, searchStart)
	case entity.FrequencyAnnual:
		return nextAnnual(rule, after, searchStart)
	default:
		// Unreachable after ValidateSchedule.
		return time.Time{}, domainerror.NewRecurrenceError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be 'daily', 'weekly', 'monthly', or 'annual'",
			domainerror.ErrInvalidFrequency,
		)
	}
}

// nextWeekly advances day-by-day from the window start until the weekday
// matches the rule's anchor. A match inside the first interval of an
// on-schedule step lies before the real window, so the window jumps a full
// interval of weeks past the anchor and the scan retries. The result is
// guaranteed to fall on the target weekday: a mid-week start snaps to the
// nearest following anchor day, while stepping off an occurrence keeps the
// full 7 x interval spacing.
func nextWeekly(rule *entity.RecurrenceRule, after, searchStart time.Time) (time.Time, error) {
	target, _ := rule.Weekday.ToTime()

	windowStart := searchStart
	for iter := 0; iter < weeklySearchDays*rule.Interval; iter++ {
		candidate := windowStart
		for candidate.Weekday() != target {
			candidate = candidate.AddDate(0, 0, 1)
		}

		if after.Weekday() == target && daysBetween(after, candidate) < 7*rule.Interval {
			windowStart = after.AddDate(0, 0, 7*rule.Interval)
			continue
		}

		return candidate, nil
	}

	return time.Time{}, domainerror.ErrNoMoreOccurrences
}

// nextMonthly sets the rule's day-of-month on the current window. A month
// where that day does not exist (time.Date normalizes day 31 of a 30-day
// month into the next month) is skipped entirely rather than clamped to
// month-end, and the window advances to the first day of the next
// interval-th month.
func nextMonthly(rule *entity.RecurrenceRule, after, searchStart time.Time) (time.Time, error) {
	day := *rule.DayOfMonth

	window := searchStart
	for iter := 0; iter < monthlySearchSteps*rule.Interval; iter++ {
		candidate := time.Date(window.Year(), window.Month(), day, 0, 0, 0, 0, time.UTC)
		if candidate.Month() == window.Month() && candidate.After(after) {
			return candidate, nil
		}

		window = time.Date(window.Year(), window.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, rule.Interval, 0)
	}

	return time.Time{}, domainerror.ErrNoMoreOccurrences
}

// nextAnnual anchors to the month/day of start_date and recomputes the
// exact date per candidate year. A Feb-29 anchor normalizes to Mar 1
// outside leap years and fails the anchor check, so non-leap years are
// skipped rather than substituted with Feb 28.
func nextAnnual(rule *entity.RecurrenceRule, after, searchStart time.Time) (time.Time, error) {
	start := dateOnly(rule.StartDate)
	anchorMonth := start.Month()
	anchorDay := start.Day()

	year := searchStart.Year()
	for iter := 0; iter < annualSearchSteps*rule.Interval; iter++ {
		candidate := time.Date(year, anchorMonth, anchorDay, 0, 0, 0, 0, time.UTC)
		if candidate.Month() == anchorMonth && candidate.Day() == anchorDay &&
			candidate.After(after) && !candidate.Before(start) {
			return candidate, nil
		}

		year += rule.Interval
	}

	return time.Time{}, domainerror.ErrNoMoreOccurrences
}

// OccursOn reports whether the rule's anchor matches the given date, i.e.
// whether the date itself is a valid occurrence. Horizon generation uses
// this to count start_date as the first occurrence when it already fits
// the rule.
func OccursOn(rule *entity.RecurrenceRule, date time.Time) bool {
	date = dateOnly(date)

	switch rule.Frequency {
	case entity.FrequencyDaily:
		return true
	case entity.FrequencyWeekly:
		if rule.Weekday == nil {
			return false
		}
		target, ok := rule.Weekday.ToTime()
		return ok && date.Weekday() == target
	case entity.FrequencyMonthly:
		return rule.DayOfMonth != nil && date.Day() == *rule.DayOfMonth
	case entity.FrequencyAnnual:
		start := dateOnly(rule.StartDate)
		return date.Month() == start.Month() && date.Day() == start.Day()
	default:
		return false
	}
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
