// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/granabot/backend/internal/domain/entity"
)

// AlertModel represents the alerts table in the database.
type AlertModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code         string          `gorm:"type:varchar(12);not null;uniqueIndex"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDate      time.Time       `gorm:"type:date;not null;index"`
	Kind         string          `gorm:"type:varchar(10);not null"`
	Description  string          `gorm:"type:varchar(255)"`
	Category     string          `gorm:"type:varchar(100)"`
	Status       string          `gorm:"type:varchar(10);not null;default:'pending';index"`
	ParentRuleID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
	DeletedAt    gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the AlertModel.
func (AlertModel) TableName() string {
	return "alerts"
}

// ToEntity converts an AlertModel to a domain Alert entity.
func (m *AlertModel) ToEntity() *entity.Alert {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Alert{
		ID:           m.ID,
		Code:         m.Code,
		UserID:       m.UserID,
		Amount:       m.Amount,
		DueDate:      m.DueDate,
		Kind:         entity.RecurrenceKind(m.Kind),
		Description:  m.Description,
		Category:     m.Category,
		Status:       entity.AlertStatus(m.Status),
		ParentRuleID: m.ParentRuleID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}

// AlertFromEntity creates an AlertModel from a domain Alert entity.
func AlertFromEntity(alert *entity.Alert) *AlertModel {
	var deletedAt gorm.DeletedAt
	if alert.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *alert.DeletedAt, Valid: true}
	}

	return &AlertModel{
		ID:           alert.ID,
		Code:         alert.Code,
		UserID:       alert.UserID,
		Amount:       alert.Amount,
		DueDate:      alert.DueDate,
		Kind:         string(alert.Kind),
		Description:  alert.Description,
		Category:     alert.Category,
		Status:       string(alert.Status),
		ParentRuleID: alert.ParentRuleID,
		CreatedAt:    alert.CreatedAt,
		UpdatedAt:    alert.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}
