// Package recurrence contains the recurrence scheduling use cases.
package recurrence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/granabot/backend/internal/application/adapter"
	domainerror "github.com/granabot/backend/internal/domain/error"
)

// DeleteRecurrenceInput represents the input for recurrence rule deletion.
type DeleteRecurrenceInput struct {
	RuleID uuid.UUID
	UserID uuid.UUID
}

// DeleteRecurrenceOutput represents the output of recurrence rule deletion.
type DeleteRecurrenceOutput struct {
	Success       bool
	AlertsDeleted int64
}

// DeleteRecurrenceUseCase handles recurrence rule deletion: pending
// alerts and the rule itself are removed atomically, while paid alerts
// are kept as history. A rule that does not exist or does not belong to
// the caller is reported as not-found without side effects.
type DeleteRecurrenceUseCase struct {
	store adapter.RecurrenceStore
}

// NewDeleteRecurrenceUseCase creates a new DeleteRecurrenceUseCase instance.
func NewDeleteRecurrenceUseCase(store adapter.RecurrenceStore) *DeleteRecurrenceUseCase {
	return &DeleteRecurrenceUseCase{
		store: store,
	}
}

// Execute performs the recurrence rule deletion.
func (uc *DeleteRecurrenceUseCase) Execute(ctx context.Context, input DeleteRecurrenceInput) (*DeleteRecurrenceOutput, error) {
	output := &DeleteRecurrenceOutput{}

	err := uc.store.WithinTx(ctx, func(tx adapter.RecurrenceTx) error {
		// Locking the row first both checks ownership and serializes this
		// delete against concurrent updates of the same rule.
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

		deleted, err := tx.DeletePendingAlertsByRule(ctx, rule.ID)
		if err != nil {
			return fmt.Errorf("failed to delete pending alerts: %w", err)
		}
		output.AlertsDeleted = deleted

		if _, err := tx.DeleteRule(ctx, rule.ID, input.UserID); err != nil {
			return fmt.Errorf("failed to delete recurrence rule: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	output.Success = true
	return output, nil
}
