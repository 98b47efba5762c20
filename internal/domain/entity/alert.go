// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertStatus represents the lifecycle status of a due-date alert.
type AlertStatus string

const (
	AlertStatusPending AlertStatus = "pending"
	AlertStatusPaid    AlertStatus = "paid"
)

// Alert represents one persisted due-date reminder generated from a
// recurrence rule occurrence. Alerts are created in bulk by horizon
// generation and only leave the pending status through the payment
// surface. ParentRuleID is a back-reference used to find and delete the
// alerts belonging to a rule; it is not an ownership pointer.
type Alert struct {
	ID           uuid.UUID
	Code         string // Globally-unique short code, e.g. ALT-4K9X2MB
	UserID       uuid.UUID
	Amount       decimal.Decimal
	DueDate      time.Time
	Kind         RecurrenceKind
	Description  string
	Category     string
	Status       AlertStatus
	ParentRuleID uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // Soft-delete support
}

// NewAlert creates a new pending Alert entity.
func NewAlert(
	code string,
	userID uuid.UUID,
	amount decimal.Decimal,
	dueDate time.Time,
	kind RecurrenceKind,
	description string,
	category string,
	parentRuleID uuid.UUID,
) *Alert {
	now := time.Now().UTC()

	return &Alert{
		ID:           uuid.New(),
		Code:         code,
		UserID:       userID,
		Amount:       amount,
		DueDate:      dueDate,
		Kind:         kind,
		Description:  description,
		Category:     category,
		Status:       AlertStatusPending,
		ParentRuleID: parentRuleID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsPending reports whether the alert is still awaiting payment.
func (a *Alert) IsPending() bool {
	return a.Status == AlertStatusPending
}
