// Package alert contains alert-related use cases.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/granabot/backend/internal/application/adapter"
	"github.com/granabot/backend/internal/domain/entity"
)

// GetDueAlertsInput represents the input for retrieving due alerts.
type GetDueAlertsInput struct {
	Date time.Time
}

// GetDueAlertsOutput represents the output of retrieving due alerts.
type GetDueAlertsOutput struct {
	Alerts []*entity.Alert
}

// GetDueAlertsUseCase retrieves the pending alerts due on a calendar
// date. The daily dispatcher reads through here; it never mutates alerts.
type GetDueAlertsUseCase struct {
	alertRepo adapter.AlertRepository
}

// NewGetDueAlertsUseCase creates a new GetDueAlertsUseCase instance.
func NewGetDueAlertsUseCase(alertRepo adapter.AlertRepository) *GetDueAlertsUseCase {
	return &GetDueAlertsUseCase{
		alertRepo: alertRepo,
	}
}

// Execute retrieves all pending alerts due on the given date.
func (uc *GetDueAlertsUseCase) Execute(ctx context.Context, input GetDueAlertsInput) (*GetDueAlertsOutput, error) {
	alerts, err := uc.alertRepo.FindDueOn(ctx, input.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to get due alerts: %w", err)
	}

	return &GetDueAlertsOutput{
		Alerts: alerts,
	}, nil
}
