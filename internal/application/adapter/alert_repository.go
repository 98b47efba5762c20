// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/granabot/backend/internal/domain/entity"
)

// AlertRepository defines the read/transition interface for generated
// alerts. Creation and deletion of alerts happen exclusively through the
// recurrence lifecycle (RecurrenceStore); this interface only serves the
// query and payment surfaces.
type AlertRepository interface {
	// FindByUserID retrieves alerts for a user, optionally filtered by
	// status, ordered by due date.
	FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.AlertStatus) ([]*entity.Alert, error)

	// FindByCodeAndUser retrieves an alert by its short code scoped to the
	// owner. Returns ErrAlertNotFound when absent or not owned.
	FindByCodeAndUser(ctx context.Context, code string, userID uuid.UUID) (*entity.Alert, error)

	// FindPendingByRule retrieves the still-pending alerts of a rule,
	// ordered by due date.
	FindPendingByRule(ctx context.Context, ruleID uuid.UUID) ([]*entity.Alert, error)

	// FindDueOn retrieves all pending alerts due on the given calendar date.
	FindDueOn(ctx context.Context, date time.Time) ([]*entity.Alert, error)

	// MarkPaid transitions an alert to the paid status.
	MarkPaid(ctx context.Context, id uuid.UUID) error
}
