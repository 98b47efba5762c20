// Package alert contains alert-related use cases.
package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/granabot/backend/internal/application/adapter"
	"github.com/granabot/backend/internal/domain/entity"
	domainerror "github.com/granabot/backend/internal/domain/error"
)

// MarkAlertPaidInput represents the input for paying an alert by its code.
type MarkAlertPaidInput struct {
	Code   string
	UserID uuid.UUID
}

// MarkAlertPaidOutput represents the output of paying an alert.
type MarkAlertPaidOutput struct {
	Alert *entity.Alert
}

// MarkAlertPaidUseCase transitions a pending alert to paid. This is the
// only status transition an alert ever makes; paid alerts survive edits
// and deletion of their parent rule.
type MarkAlertPaidUseCase struct {
	alertRepo adapter.AlertRepository
}

// NewMarkAlertPaidUseCase creates a new MarkAlertPaidUseCase instance.
func NewMarkAlertPaidUseCase(alertRepo adapter.AlertRepository) *MarkAlertPaidUseCase {
	return &MarkAlertPaidUseCase{
		alertRepo: alertRepo,
	}
}

// Execute performs the payment transition.
func (uc *MarkAlertPaidUseCase) Execute(ctx context.Context, input MarkAlertPaidInput) (*MarkAlertPaidOutput, error) {
	found, err := uc.alertRepo.FindByCodeAndUser(ctx, input.Code, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAlertNotFound) {
			return nil, domainerror.NewAlertError(
				domainerror.ErrCodeAlertNotFound,
				"alert not found",
				domainerror.ErrAlertNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find alert: %w", err)
	}

	if !found.IsPending() {
		return nil, domainerror.NewAlertError(
			domainerror.ErrCodeAlertAlreadyPaid,
			"alert is already paid",
			domainerror.ErrAlertAlreadyPaid,
		)
	}

	if err := uc.alertRepo.MarkPaid(ctx, found.ID); err != nil {
		return nil, fmt.Errorf("failed to mark alert paid: %w", err)
	}

	found.Status = entity.AlertStatusPaid
	found.UpdatedAt = time.Now().UTC()

	return &MarkAlertPaidOutput{
		Alert: found,
	}, nil
}
