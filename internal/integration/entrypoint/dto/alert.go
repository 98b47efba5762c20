package dto

import (
	"time"

	"github.com/granabot/backend/internal/domain/entity"
)

// AlertResponse represents a due-date alert in responses.
type AlertResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	UserID       string `json:"user_id"`
	Amount       string `json:"amount"`
	DueDate      string `json:"due_date"`
	Kind         string `json:"kind"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category,omitempty"`
	Status       string `json:"status"`
	ParentRuleID string `json:"parent_rule_id"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// AlertListResponse represents a list of alerts.
type AlertListResponse struct {
	Alerts []AlertResponse `json:"alerts"`
	Total  int             `json:"total"`
}

// ToAlertResponse converts an Alert entity to a response DTO.
func ToAlertResponse(alert *entity.Alert) AlertResponse {
	return AlertResponse{
		ID:           alert.ID.String(),
		Code:         alert.Code,
		UserID:       alert.UserID.String(),
		Amount:       alert.Amount.String(),
		DueDate:      alert.DueDate.Format(dateLayout),
		Kind:         string(alert.Kind),
		Description:  alert.Description,
		Category:     alert.Category,
		Status:       string(alert.Status),
		ParentRuleID: alert.ParentRuleID.String(),
		CreatedAt:    alert.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    alert.UpdatedAt.Format(time.RFC3339),
	}
}

// ToAlertListResponse converts a slice of alerts to a list response.
func ToAlertListResponse(alerts []*entity.Alert) AlertListResponse {
	responses := make([]AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		responses = append(responses, ToAlertResponse(alert))
	}
	return AlertListResponse{
		Alerts: responses,
		Total:  len(responses),
	}
}
