// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurrenceKind represents the kind of recurring event (expense or income).
type RecurrenceKind string

const (
	RecurrenceKindExpense RecurrenceKind = "expense"
	RecurrenceKindIncome  RecurrenceKind = "income"
)

// Frequency represents how often a recurrence rule produces occurrences.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyAnnual  Frequency = "annual"
)

// Weekday represents the anchor weekday for weekly rules.
type Weekday string

const (
	WeekdayMonday    Weekday = "monday"
	WeekdayTuesday   Weekday = "tuesday"
	WeekdayWednesday Weekday = "wednesday"
	WeekdayThursday  Weekday = "thursday"
	WeekdayFriday    Weekday = "friday"
	WeekdaySaturday  Weekday = "saturday"
	WeekdaySunday    Weekday = "sunday"
)

// ToTime converts a Weekday to the standard library's time.Weekday.
// The second return value is false for unknown values.
func (w Weekday) ToTime() (time.Weekday, bool) {
	switch w {
	case WeekdayMonday:
		return time.Monday, true
	case WeekdayTuesday:
		return time.Tuesday, true
	case WeekdayWednesday:
		return time.Wednesday, true
	case WeekdayThursday:
		return time.Thursday, true
	case WeekdayFriday:
		return time.Friday, true
	case WeekdaySaturday:
		return time.Saturday, true
	case WeekdaySunday:
		return time.Sunday, true
	default:
		return time.Sunday, false
	}
}

// RecurrenceRule represents a user-defined template for a repeating
// income/expense event in the GranaBot system. Monthly rules anchor on
// DayOfMonth, weekly rules on Weekday, annual rules on the month/day of
// StartDate. The rule never produces occurrences before StartDate nor
// strictly after EndDate (when set).
type RecurrenceRule struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Kind        RecurrenceKind
	Amount      decimal.Decimal // Always positive; Kind carries the sign semantics
	Category    string          // Optional free-text label
	Frequency   Frequency
	Interval    int  // Every N units, >= 1
	DayOfMonth  *int // Required for monthly rules (1-31)
	Weekday     *Weekday
	StartDate   time.Time
	EndDate     *time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewRecurrenceRule creates a new RecurrenceRule entity.
func NewRecurrenceRule(
	userID uuid.UUID,
	kind RecurrenceKind,
	amount decimal.Decimal,
	category string,
	frequency Frequency,
	interval int,
	dayOfMonth *int,
	weekday *Weekday,
	startDate time.Time,
	endDate *time.Time,
	description string,
) *RecurrenceRule {
	now := time.Now().UTC()

	return &RecurrenceRule{
		ID:          uuid.New(),
		UserID:      userID,
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Frequency:   frequency,
		Interval:    interval,
		DayOfMonth:  dayOfMonth,
		Weekday:     weekday,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CriticalFieldsEqual reports whether the schedule-defining fields of two
// rules are equal. A change in any of these fields invalidates previously
// generated pending alerts. Date fields are compared calendar-date only.
func (r *RecurrenceRule) CriticalFieldsEqual(other *RecurrenceRule) bool {
	if r.Kind != other.Kind ||
		r.Frequency != other.Frequency ||
		r.Interval != other.Interval {
		return false
	}
	if !r.Amount.Equal(other.Amount) {
		return false
	}
	if !intPtrEqual(r.DayOfMonth, other.DayOfMonth) {
		return false
	}
	if !weekdayPtrEqual(r.Weekday, other.Weekday) {
		return false
	}
	if !sameCalendarDate(r.StartDate, other.StartDate) {
		return false
	}
	if (r.EndDate == nil) != (other.EndDate == nil) {
		return false
	}
	if r.EndDate != nil && !sameCalendarDate(*r.EndDate, *other.EndDate) {
		return false
	}
	return true
}

func intPtrEqual(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func weekdayPtrEqual(a, b *Weekday) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func sameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
