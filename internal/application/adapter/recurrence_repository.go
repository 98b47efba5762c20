// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/granabot/backend/internal/domain/entity"
)

// RecurrenceStore defines the transactional persistence interface for
// recurrence rules and their generated alerts. Every multi-row effect of
// the lifecycle manager (create, critical update, delete) runs inside a
// single WithinTx call; any error returned from fn rolls the whole unit
// back.
type RecurrenceStore interface {
	// WithinTx runs fn inside one database transaction. The RecurrenceTx
	// handle is only valid for the duration of fn.
	WithinTx(ctx context.Context, fn func(tx RecurrenceTx) error) error

	// FindByIDAndUser retrieves a rule by ID scoped to its owner, without
	// locking. Returns ErrRecurrenceNotFound when absent or not owned.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.RecurrenceRule, error)

	// FindByUserID retrieves all rules for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurrenceRule, error)
}

// RecurrenceTx is the set of row operations composable into one atomic
// unit of work.
type RecurrenceTx interface {
	// LockRule loads the rule row for the owner and acquires a row-level
	// lock on it for the remainder of the transaction, serializing
	// concurrent updates and deletes against the same rule. Returns
	// ErrRecurrenceNotFound when absent or not owned.
	LockRule(ctx context.Context, id, userID uuid.UUID) (*entity.RecurrenceRule, error)

	// InsertRule persists a new rule.
	InsertRule(ctx context.Context, rule *entity.RecurrenceRule) error

	// UpdateRule persists changes to an existing rule.
	UpdateRule(ctx context.Context, rule *entity.RecurrenceRule) error

	// DeleteRule removes the rule scoped to its owner. Returns the number
	// of rows affected so callers can report not-found without a prior read.
	DeleteRule(ctx context.Context, id, userID uuid.UUID) (int64, error)

	// BulkInsertAlerts persists a batch of alerts in a single insert.
	BulkInsertAlerts(ctx context.Context, alerts []*entity.Alert) error

	// DeletePendingAlertsByRule removes all still-pending alerts whose
	// parent_rule_id matches the rule. Paid alerts are left untouched.
	DeletePendingAlertsByRule(ctx context.Context, ruleID uuid.UUID) (int64, error)
}
