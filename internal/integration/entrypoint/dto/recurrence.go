package dto

import (
	"time"

	"github.com/granabot/backend/internal/domain/entity"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// CreateRecurrenceRequest represents a recurrence rule creation request.
type CreateRecurrenceRequest struct {
	Kind        string  `json:"kind" binding:"required,oneof=expense income"`
	Amount      float64 `json:"amount" binding:"required"`
	Category    string  `json:"category,omitempty" binding:"omitempty,max=100"`
	Frequency   string  `json:"frequency" binding:"required,oneof=daily weekly monthly annual"`
	Interval    *int    `json:"interval,omitempty"`
	DayOfMonth  *int    `json:"day_of_month,omitempty"`
	Weekday     *string `json:"weekday,omitempty"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     *string `json:"end_date,omitempty"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=255"`
}

// UpdateRecurrenceRequest represents a partial recurrence rule update.
// Absent fields are left unchanged; ClearEndDate removes an end date.
type UpdateRecurrenceRequest struct {
	Kind         *string  `json:"kind,omitempty" binding:"omitempty,oneof=expense income"`
	Amount       *float64 `json:"amount,omitempty"`
	Category     *string  `json:"category,omitempty" binding:"omitempty,max=100"`
	Frequency    *string  `json:"frequency,omitempty" binding:"omitempty,oneof=daily weekly monthly annual"`
	Interval     *int     `json:"interval,omitempty"`
	DayOfMonth   *int     `json:"day_of_month,omitempty"`
	Weekday      *string  `json:"weekday,omitempty"`
	StartDate    *string  `json:"start_date,omitempty"`
	EndDate      *string  `json:"end_date,omitempty"`
	ClearEndDate bool     `json:"clear_end_date,omitempty"`
	Description  *string  `json:"description,omitempty" binding:"omitempty,max=255"`
}

// RecurrenceResponse represents a recurrence rule in responses.
type RecurrenceResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Kind        string  `json:"kind"`
	Amount      string  `json:"amount"`
	Category    string  `json:"category,omitempty"`
	Frequency   string  `json:"frequency"`
	Interval    int     `json:"interval"`
	DayOfMonth  *int    `json:"day_of_month,omitempty"`
	Weekday     *string `json:"weekday,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	Description string  `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// RecurrenceMutationResponse represents the result of a create or update,
// including how the alert horizon was affected.
type RecurrenceMutationResponse struct {
	Rule            RecurrenceResponse `json:"rule"`
	AlertsGenerated int                `json:"alerts_generated"`
	Regenerated     bool               `json:"regenerated,omitempty"`
	LimitReached    bool               `json:"limit_reached,omitempty"`
}

// RecurrenceListResponse represents a list of recurrence rules.
type RecurrenceListResponse struct {
	Recurrences []RecurrenceResponse `json:"recurrences"`
	Total       int                  `json:"total"`
}

// DeleteRecurrenceResponse represents the result of a rule deletion.
type DeleteRecurrenceResponse struct {
	Success       bool  `json:"success"`
	AlertsDeleted int64 `json:"alerts_deleted"`
}

// ToRecurrenceResponse converts a RecurrenceRule entity to a response DTO.
func ToRecurrenceResponse(rule *entity.RecurrenceRule) RecurrenceResponse {
	resp := RecurrenceResponse{
		ID:          rule.ID.String(),
		UserID:      rule.UserID.String(),
		Kind:        string(rule.Kind),
		Amount:      rule.Amount.String(),
		Category:    rule.Category,
		Frequency:   string(rule.Frequency),
		Interval:    rule.Interval,
		DayOfMonth:  rule.DayOfMonth,
		StartDate:   rule.StartDate.Format(dateLayout),
		Description: rule.Description,
		CreatedAt:   rule.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   rule.UpdatedAt.Format(time.RFC3339),
	}
	if rule.Weekday != nil {
		weekday := string(*rule.Weekday)
		resp.Weekday = &weekday
	}
	if rule.EndDate != nil {
		endDate := rule.EndDate.Format(dateLayout)
		resp.EndDate = &endDate
	}
	return resp
}

// ToRecurrenceListResponse converts a slice of rules to a list response.
func ToRecurrenceListResponse(rules []*entity.RecurrenceRule) RecurrenceListResponse {
	responses := make([]RecurrenceResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, ToRecurrenceResponse(rule))
	}
	return RecurrenceListResponse{
		Recurrences: responses,
		Total:       len(responses),
	}
}
