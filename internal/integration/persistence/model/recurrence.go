// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/granabot/backend/internal/domain/entity"
)

// RecurrenceRuleModel represents the recurrence_rules table in the database.
type RecurrenceRuleModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind        string          `gorm:"type:varchar(10);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category    string          `gorm:"type:varchar(100)"`
	Frequency   string          `gorm:"type:varchar(10);not null"`
	Interval    int             `gorm:"not null;default:1"`
	DayOfMonth  *int            `gorm:"type:integer"`
	Weekday     *string         `gorm:"type:varchar(10)"`
	StartDate   time.Time       `gorm:"type:date;not null"`
	EndDate     *time.Time      `gorm:"type:date"`
	Description string          `gorm:"type:varchar(255)"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the RecurrenceRuleModel.
func (RecurrenceRuleModel) TableName() string {
	return "recurrence_rules"
}

// ToEntity converts a RecurrenceRuleModel to a domain RecurrenceRule entity.
func (m *RecurrenceRuleModel) ToEntity() *entity.RecurrenceRule {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	var weekday *entity.Weekday
	if m.Weekday != nil {
		w := entity.Weekday(*m.Weekday)
		weekday = &w
	}

	return &entity.RecurrenceRule{
		ID:          m.ID,
		UserID:      m.UserID,
		Kind:        entity.RecurrenceKind(m.Kind),
		Amount:      m.Amount,
		Category:    m.Category,
		Frequency:   entity.Frequency(m.Frequency),
		Interval:    m.Interval,
		DayOfMonth:  m.DayOfMonth,
		Weekday:     weekday,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// RecurrenceRuleFromEntity creates a RecurrenceRuleModel from a domain entity.
func RecurrenceRuleFromEntity(rule *entity.RecurrenceRule) *RecurrenceRuleModel {
	var deletedAt gorm.DeletedAt
	if rule.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *rule.DeletedAt, Valid: true}
	}

	var weekday *string
	if rule.Weekday != nil {
		w := string(*rule.Weekday)
		weekday = &w
	}

	return &RecurrenceRuleModel{
		ID:          rule.ID,
		UserID:      rule.UserID,
		Kind:        string(rule.Kind),
		Amount:      rule.Amount,
		Category:    rule.Category,
		Frequency:   string(rule.Frequency),
		Interval:    rule.Interval,
		DayOfMonth:  rule.DayOfMonth,
		Weekday:     weekday,
		StartDate:   rule.StartDate,
		EndDate:     rule.EndDate,
		Description: rule.Description,
		CreatedAt:   rule.CreatedAt,
		UpdatedAt:   rule.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}
