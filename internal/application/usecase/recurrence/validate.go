// Package recurrence contains the recurrence scheduling use cases: the
// occurrence calculator, the horizon generator, and the rule lifecycle.
package recurrence

import (
	"github.com/shopspring/decimal"

	"github.com/granabot/backend/internal/domain/entity"
	domainerror "github.com/granabot/backend/internal/domain/error"
)

// ValidateSchedule checks the schedule-defining fields of a rule:
// frequency, interval and the anchor the frequency requires. Violations
// are configuration errors and make occurrence computation undefined, so
// they are rejected before any computation or persistence happens.
func ValidateSchedule(rule *entity.RecurrenceRule) error {
	if rule.Interval < 1 {
		return domainerror.NewRecurrenceError(
			domainerror.ErrCodeInvalidInterval,
			"interval must be at least 1",
			domainerror.ErrInvalidInterval,
		)
	}

	switch rule.Frequency {
	case entity.FrequencyDaily:
		// No anchor.
	case entity.FrequencyWeekly:
		if rule.Weekday == nil {
			return domainerror.NewRecurrenceError(
				domainerror.ErrCodeMissingWeekday,
				"weekly recurrence requires a weekday anchor",
				domainerror.ErrMissingWeekday,
			)
		}
		if _, ok := rule.Weekday.ToTime(); !ok {
			return domainerror.NewRecurrenceError(
				domainerror.ErrCodeInvalidWeekday,
				"weekday must be monday through sunday",
				domainerror.ErrInvalidWeekday,
			)
		}
	case entity.FrequencyMonthly:
		if rule.DayOfMonth == nil {
			return domainerror.NewRecurrenceError(
				domainerror.ErrCodeMissingDayOfMonth,
				"monthly recurrence requires a day_of_month anchor",
				domainerror.ErrMissingDayOfMonth,
			)
		}
		if *rule.DayOfMonth < 1 || *rule.DayOfMonth > 31 {
			return domainerror.NewRecurrenceError(
				domainerror.ErrCodeInvalidDayOfMonth,
				"day_of_month must be between 1 and 31",
				domainerror.ErrInvalidDayOfMonth,
			)
		}
	case entity.FrequencyAnnual:
		// Anchored to the month/day of start_date.
	default:
		return domainerror.NewRecurrenceError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be 'daily', 'weekly', 'monthly', or 'annual'",
			domainerror.ErrInvalidFrequency,
		)
	}

	return nil
}

// ValidateRule checks a complete rule before it is persisted: the schedule
// plus kind, amount, and date-range consistency.
func ValidateRule(rule *entity.RecurrenceRule) error {
	if rule.Kind != entity.RecurrenceKindExpense && rule.Kind != entity.RecurrenceKindIncome {
		return domainerror.NewRecurrenceError(
			domainerror.ErrCodeInvalidRecurrenceKind,
			"kind must be 'expense' or 'income'",
			domainerror.ErrInvalidRecurrenceKind,
		)
	}

	if !rule.Amount.GreaterThan(decimal.Zero) {
		return domainerror.NewRecurrenceError(
			domainerror.ErrCodeInvalidRecurrenceAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidRecurrenceAmount,
		)
	}

	if rule.StartDate.IsZero() {
		return domainerror.NewRecurrenceError(
			domainerror.ErrCodeMissingRecurrenceFields,
			"start_date is required",
			nil,
		)
	}

	if rule.EndDate != nil && dateOnly(*rule.EndDate).Before(dateOnly(rule.StartDate)) {
		return domainerror.NewRecurrenceError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not precede start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return ValidateSchedule(rule)
}
