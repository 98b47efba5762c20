// Package recurrence contains the recurrence scheduling use cases.
package recurrence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granabot/backend/internal/application/adapter"
	"github.com/granabot/backend/internal/domain/entity"
)

// CreateRecurrenceInput represents the input for recurrence rule creation.
type CreateRecurrenceInput struct {
	UserID      uuid.UUID
	Kind        entity.RecurrenceKind
	Amount      decimal.Decimal
	Category    string
	Frequency   entity.Frequency
	Interval    *int // Optional, defaults to 1
	DayOfMonth  *int // Required for monthly rules
	Weekday     *entity.Weekday
	StartDate   time.Time
	EndDate     *time.Time
	Description string
}

// CreateRecurrenceOutput represents the output of recurrence rule creation.
type CreateRecurrenceOutput struct {
	Rule            *entity.RecurrenceRule
	AlertsGenerated int
	LimitReached    bool
}

// CreateRecurrenceUseCase handles recurrence rule creation: the rule and
// its initial alert horizon are persisted inside one transaction, so a
// rule never exists without its alert set and alerts never exist for a
// rule that failed to persist.
type CreateRecurrenceUseCase struct {
	store   adapter.RecurrenceStore
	horizon *HorizonGenerator
}

// NewCreateRecurrenceUseCase creates a new CreateRecurrenceUseCase instance.
func NewCreateRecurrenceUseCase(store adapter.RecurrenceStore, horizon *HorizonGenerator) *CreateRecurrenceUseCase {
	return &CreateRecurrenceUseCase{
		store:   store,
		horizon: horizon,
	}
}

// Execute performs the recurrence rule creation.
func (uc *CreateRecurrenceUseCase) Execute(ctx context.Context, input CreateRecurrenceInput) (*CreateRecurrenceOutput, error) {
	interval := 1
	if input.Interval != nil {
		interval = *input.Interval
	}

	rule := entity.NewRecurrenceRule(
		input.UserID,
		input.Kind,
		input.Amount,
		input.Category,
		input.Frequency,
		interval,
		input.DayOfMonth,
		input.Weekday,
		dateOnly(input.StartDate),
		normalizeEndDate(input.EndDate),
		input.Description,
	)

	// Configuration errors are rejected before any persistence attempt.
	if err := ValidateRule(rule); err != nil {
		return nil, err
	}

	alerts, limitReached, err := uc.horizon.Generate(rule)
	if err != nil {
		return nil, err
	}

	err = uc.store.WithinTx(ctx, func(tx adapter.RecurrenceTx) error {
		if err := tx.InsertRule(ctx, rule); err != nil {
			return err
		}
		return tx.BulkInsertAlerts(ctx, alerts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create recurrence: %w", err)
	}

	return &CreateRecurrenceOutput{
		Rule:            rule,
		AlertsGenerated: len(alerts),
		LimitReached:    limitReached,
	}, nil
}

func normalizeEndDate(end *time.Time) *time.Time {
	if end == nil {
		return nil
	}
	normalized := dateOnly(*end)
	return &normalized
}
