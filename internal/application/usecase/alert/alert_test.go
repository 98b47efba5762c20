// Package alert contains alert-related use cases.
package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granabot/backend/internal/domain/entity"
	domainerror "github.com/granabot/backend/internal/domain/error"
)

// fakeAlertRepo is an in-memory AlertRepository for use case tests.
type fakeAlertRepo struct {
	alerts []*entity.Alert
}

func (r *fakeAlertRepo) FindByUserID(_ context.Context, userID uuid.UUID, status *entity.AlertStatus) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for _, a := range r.alerts {
		if a.UserID != userID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAlertRepo) FindByCodeAndUser(_ context.Context, code string, userID uuid.UUID) (*entity.Alert, error) {
	for _, a := range r.alerts {
		if a.Code == code && a.UserID == userID {
			return a, nil
		}
	}
	return nil, domainerror.ErrAlertNotFound
}

func (r *fakeAlertRepo) FindPendingByRule(_ context.Context, ruleID uuid.UUID) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for _, a := range r.alerts {
		if a.ParentRuleID == ruleID && a.Status == entity.AlertStatusPending {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) FindDueOn(_ context.Context, date time.Time) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for _, a := range r.alerts {
		if a.Status == entity.AlertStatusPending &&
			a.DueDate.Year() == date.Year() &&
			a.DueDate.Month() == date.Month() &&
			a.DueDate.Day() == date.Day() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) MarkPaid(_ context.Context, id uuid.UUID) error {
	for _, a := range r.alerts {
		if a.ID == id {
			a.Status = entity.AlertStatusPaid
			return nil
		}
	}
	return domainerror.ErrAlertNotFound
}

func newAlert(userID uuid.UUID, code string, dueDate time.Time, status entity.AlertStatus) *entity.Alert {
	a := entity.NewAlert(
		code,
		userID,
		decimal.NewFromInt(100),
		dueDate,
		entity.RecurrenceKindExpense,
		"Rent",
		"housing",
		uuid.New(),
	)
	a.Status = status
	return a
}

func TestListAlerts(t *testing.T) {
	userID := uuid.New()
	due := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeAlertRepo{alerts: []*entity.Alert{
		newAlert(userID, "ALT-AAAAAAA", due, entity.AlertStatusPending),
		newAlert(userID, "ALT-BBBBBBB", due.AddDate(0, 1, 0), entity.AlertStatusPaid),
		newAlert(uuid.New(), "ALT-CCCCCCC", due, entity.AlertStatusPending),
	}}
	uc := NewListAlertsUseCase(repo)

	t.Run("lists only the owner's alerts", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListAlertsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Alerts) != 2 {
			t.Errorf("expected 2 alerts, got %d", len(output.Alerts))
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		status := entity.AlertStatusPaid
		output, err := uc.Execute(context.Background(), ListAlertsInput{UserID: userID, Status: &status})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Alerts) != 1 || output.Alerts[0].Code != "ALT-BBBBBBB" {
			t.Errorf("expected only the paid alert, got %v", output.Alerts)
		}
	})

	t.Run("rejects unknown status values", func(t *testing.T) {
		status := entity.AlertStatus("overdue")
		_, err := uc.Execute(context.Background(), ListAlertsInput{UserID: userID, Status: &status})

		var alertErr *domainerror.AlertError
		if !errors.As(err, &alertErr) {
			t.Fatalf("expected an AlertError, got %v", err)
		}
		if alertErr.Code != domainerror.ErrCodeInvalidAlertStatus {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidAlertStatus, alertErr.Code)
		}
	})
}

func TestMarkAlertPaid(t *testing.T) {
	userID := uuid.New()
	due := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("transitions a pending alert to paid", func(t *testing.T) {
		repo := &fakeAlertRepo{alerts: []*entity.Alert{
			newAlert(userID, "ALT-AAAAAAA", due, entity.AlertStatusPending),
		}}
		uc := NewMarkAlertPaidUseCase(repo)

		output, err := uc.Execute(context.Background(), MarkAlertPaidInput{Code: "ALT-AAAAAAA", UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Alert.Status != entity.AlertStatusPaid {
			t.Errorf("expected paid status, got %s", output.Alert.Status)
		}
	})

	t.Run("rejects paying twice", func(t *testing.T) {
		repo := &fakeAlertRepo{alerts: []*entity.Alert{
			newAlert(userID, "ALT-AAAAAAA", due, entity.AlertStatusPaid),
		}}
		uc := NewMarkAlertPaidUseCase(repo)

		_, err := uc.Execute(context.Background(), MarkAlertPaidInput{Code: "ALT-AAAAAAA", UserID: userID})

		var alertErr *domainerror.AlertError
		if !errors.As(err, &alertErr) {
			t.Fatalf("expected an AlertError, got %v", err)
		}
		if alertErr.Code != domainerror.ErrCodeAlertAlreadyPaid {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeAlertAlreadyPaid, alertErr.Code)
		}
	})

	t.Run("hides other users' alerts behind not found", func(t *testing.T) {
		repo := &fakeAlertRepo{alerts: []*entity.Alert{
			newAlert(uuid.New(), "ALT-AAAAAAA", due, entity.AlertStatusPending),
		}}
		uc := NewMarkAlertPaidUseCase(repo)

		_, err := uc.Execute(context.Background(), MarkAlertPaidInput{Code: "ALT-AAAAAAA", UserID: userID})

		var alertErr *domainerror.AlertError
		if !errors.As(err, &alertErr) {
			t.Fatalf("expected an AlertError, got %v", err)
		}
		if alertErr.Code != domainerror.ErrCodeAlertNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeAlertNotFound, alertErr.Code)
		}
	})
}

func TestGetDueAlerts(t *testing.T) {
	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeAlertRepo{alerts: []*entity.Alert{
		newAlert(uuid.New(), "ALT-AAAAAAA", today, entity.AlertStatusPending),
		newAlert(uuid.New(), "ALT-BBBBBBB", today, entity.AlertStatusPaid),
		newAlert(uuid.New(), "ALT-CCCCCCC", today.AddDate(0, 0, 1), entity.AlertStatusPending),
	}}
	uc := NewGetDueAlertsUseCase(repo)

	output, err := uc.Execute(context.Background(), GetDueAlertsInput{Date: today})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Alerts) != 1 || output.Alerts[0].Code != "ALT-AAAAAAA" {
		t.Errorf("expected only the pending alert due today, got %v", output.Alerts)
	}
}
