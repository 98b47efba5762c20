// Package recurrence contains the recurrence scheduling use cases.
package recurrence

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/granabot/backend/internal/application/adapter"
	"github.com/granabot/backend/internal/domain/entity"
)

// ListRecurrencesInput represents the input for listing recurrence rules.
type ListRecurrencesInput struct {
	UserID uuid.UUID
}

// ListRecurrencesOutput represents the output of listing recurrence rules.
type ListRecurrencesOutput struct {
	Rules []*entity.RecurrenceRule
}

// ListRecurrencesUseCase handles owner-scoped listing of recurrence rules.
type ListRecurrencesUseCase struct {
	store adapter.RecurrenceStore
}

// NewListRecurrencesUseCase creates a new ListRecurrencesUseCase instance.
func NewListRecurrencesUseCase(store adapter.RecurrenceStore) *ListRecurrencesUseCase {
	return &ListRecurrencesUseCase{
		store: store,
	}
}

// Execute retrieves all recurrence rules for the user.
func (uc *ListRecurrencesUseCase) Execute(ctx context.Context, input ListRecurrencesInput) (*ListRecurrencesOutput, error) {
	rules, err := uc.store.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurrences: %w", err)
	}

	return &ListRecurrencesOutput{
		Rules: rules,
	}, nil
}
