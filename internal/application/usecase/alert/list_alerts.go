// Package alert contains alert-related use cases. Alerts are generated
// exclusively by the recurrence engine; this package only serves queries
// and the payment transition.
package alert

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/granabot/backend/internal/application/adapter"
	"github.com/granabot/backend/internal/domain/entity"
	domainerror "github.com/granabot/backend/internal/domain/error"
)

// ListAlertsInput represents the input for listing alerts.
type ListAlertsInput struct {
	UserID uuid.UUID
	Status *entity.AlertStatus // Optional filter
}

// ListAlertsOutput represents the output of listing alerts.
type ListAlertsOutput struct {
	Alerts []*entity.Alert
}

// ListAlertsUseCase handles owner-scoped listing of alerts.
type ListAlertsUseCase struct {
	alertRepo adapter.AlertRepository
}

// NewListAlertsUseCase creates a new ListAlertsUseCase instance.
func NewListAlertsUseCase(alertRepo adapter.AlertRepository) *ListAlertsUseCase {
	return &ListAlertsUseCase{
		alertRepo: alertRepo,
	}
}

// Execute retrieves the user's alerts, optionally filtered by status.
func (uc *ListAlertsUseCase) Execute(ctx context.Context, input ListAlertsInput) (*ListAlertsOutput, error) {
	if input.Status != nil {
		if *input.Status != entity.AlertStatusPending && *input.Status != entity.AlertStatusPaid {
			return nil, domainerror.NewAlertError(
				domainerror.ErrCodeInvalidAlertStatus,
				"status must be 'pending' or 'paid'",
				domainerror.ErrInvalidAlertStatus,
			)
		}
	}

	alerts, err := uc.alertRepo.FindByUserID(ctx, input.UserID, input.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	return &ListAlertsOutput{
		Alerts: alerts,
	}, nil
}
