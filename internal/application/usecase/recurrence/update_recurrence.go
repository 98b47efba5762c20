// Package recurrence contains the recurrence scheduling use cases.
package recurrence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granabot/backend/internal/application/adapter"
	"github.com/granabot/backend/internal/domain/entity"
	domainerror "github.com/granabot/backend/internal/domain/error"
)

// UpdateRecurrenceInput represents the patch for a recurrence rule
// update. Nil fields are left unchanged; ClearEndDate removes an end date.
type UpdateRecurrenceInput struct {
	RuleID       uuid.UUID
	UserID       uuid.UUID
	Kind         *entity.RecurrenceKind
	Amount       *decimal.Decimal
	Category     *string
	Frequency    *entity.Frequency
	Interval     *int
	DayOfMonth   *int
	Weekday      *entity.Weekday
	StartDate    *time.Time
	EndDate      *time.Time
	ClearEndDate bool
	Description  *string
}

// UpdateRecurrenceOutput represents the output of a recurrence rule update.
type UpdateRecurrenceOutput struct {
	Rule            *entity.RecurrenceRule
	Regenerated     bool
	AlertsGenerated int
	LimitReached    bool
}

// UpdateRecurrenceUseCase handles recurrence rule updates. The rule row
// is locked for the owner for the duration of the transaction; when the
// patch changes any critical field the rule's pending alerts are deleted
// (paid ones are history and stay) and the full horizon is regenerated.
// Patches equal to the current state never touch the alerts.
type UpdateRecurrenceUseCase struct {
	store   adapter.RecurrenceStore
	horizon *HorizonGenerator
}

// NewUpdateRecurrenceUseCase creates a new UpdateRecurrenceUseCase instance.
func NewUpdateRecurrenceUseCase(store adapter.RecurrenceStore, horizon *HorizonGenerator) *UpdateRecurrenceUseCase {
	return &UpdateRecurrenceUseCase{
		store:   store,
		horizon: horizon,
	}
}

// Execute performs the recurrence rule update.
func (uc *UpdateRecurrenceUseCase) Execute(ctx context.Context, input UpdateRecurrenceInput) (*UpdateRecurrenceOutput, error) {
	output := &UpdateRecurrenceOutput{}

	err := uc.store.WithinTx(ctx, func(tx adapter.RecurrenceTx) error {
		rule, err := tx.LockRule(ctx, input.RuleID, input.UserID)
		if err != nil {
			if errors.Is(err, domainerror.ErrRecurrenceNotFound) {
				return domainerror.NewRecurrenceError(
					domainerror.ErrCodeRecurrenceNotFound,
					"recurrence rule not found",
					domainerror.ErrRecurrenceNotFound,
				)
			}
			return fmt.Errorf("failed to load recurrence rule: %w", err)
		}

		// Snapshot the pre-patch state; applyPatch only assigns fresh
		// pointer values, so the snapshot keeps the old anchors.
		previous := *rule

		applyPatch(rule, input)
		rule.UpdatedAt = time.Now().UTC()

		if err := ValidateRule(rule); err != nil {
			return err
		}

		if !previous.CriticalFieldsEqual(rule) {
			if _, err := tx.DeletePendingAlertsByRule(ctx, rule.ID); err != nil {
				return fmt.Errorf("failed to delete pending alerts: %w", err)
			}

			alerts, limitReached, err := uc.horizon.Generate(rule)
			if err != nil {
				return err
			}
			if err := tx.BulkInsertAlerts(ctx, alerts); err != nil {
				return fmt.Errorf("failed to insert regenerated alerts: %w", err)
			}

			output.Regenerated = true
			output.AlertsGenerated = len(alerts)
			output.LimitReached = limitReached
		}

		if err := tx.UpdateRule(ctx, rule); err != nil {
			return fmt.Errorf("failed to update recurrence rule: %w", err)
		}

		output.Rule = rule
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// applyPatch copies the provided fields of the patch onto the rule. Date
// fields are normalized to calendar dates.
func applyPatch(rule *entity.RecurrenceRule, input UpdateRecurrenceInput) {
	if input.Kind != nil {
		rule.Kind = *input.Kind
	}
	if input.Amount != nil {
		rule.Amount = *input.Amount
	}
	if input.Category != nil {
		rule.Category = *input.Category
	}
	if input.Frequency != nil {
		rule.Frequency = *input.Frequency
	}
	if input.Interval != nil {
		rule.Interval = *input.Interval
	}
	if input.DayOfMonth != nil {
		rule.DayOfMonth = input.DayOfMonth
	}
	if input.Weekday != nil {
		rule.Weekday = input.Weekday
	}
	if input.StartDate != nil {
		rule.StartDate = dateOnly(*input.StartDate)
	}
	if input.ClearEndDate {
		rule.EndDate = nil
	} else if input.EndDate != nil {
		rule.EndDate = normalizeEndDate(input.EndDate)
	}
	if input.Description != nil {
		rule.Description = *input.Description
	}
}
