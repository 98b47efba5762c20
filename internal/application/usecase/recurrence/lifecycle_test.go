package recurrence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/granabot/backend/internal/application/adapter"
	"github.com/granabot/backend/internal/domain/entity"
	domainerror "github.com/granabot/backend/internal/domain/error"
	"github.com/granabot/backend/internal/integration/persistence"
	"github.com/granabot/backend/internal/integration/persistence/model"
)

// constantCodes always returns the same code, forcing a unique-index
// violation on the second inserted alert.
type constantCodes struct{}

func (constantCodes) Generate() (string, error) {
	return "ALT-SAMECODE", nil
}

type lifecycleEnv struct {
	store     adapter.RecurrenceStore
	alertRepo adapter.AlertRepository
	horizon   *HorizonGenerator
	db        *gorm.DB
}

func newLifecycleEnv(t *testing.T, now time.Time) *lifecycleEnv {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A single connection keeps every session on the same in-memory DB.
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	if err := db.AutoMigrate(&model.RecurrenceRuleModel{}, &model.AlertModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return &lifecycleEnv{
		store:     persistence.NewRecurrenceStore(db),
		alertRepo: persistence.NewAlertRepository(db),
		horizon:   NewHorizonGenerator(fixedClock{now: now}, &sequentialCodes{}, 6),
		db:        db,
	}
}

func (e *lifecycleEnv) createMonthlyRule(t *testing.T, userID uuid.UUID) *CreateRecurrenceOutput {
	t.Helper()

	uc := NewCreateRecurrenceUseCase(e.store, e.horizon)
	output, err := uc.Execute(context.Background(), CreateRecurrenceInput{
		UserID:      userID,
		Kind:        entity.RecurrenceKindExpense,
		Amount:      decimal.RequireFromString("120.50"),
		Category:    "housing",
		Frequency:   entity.FrequencyMonthly,
		DayOfMonth:  intPtr(10),
		StartDate:   date(2025, time.March, 1),
		Description: "Rent",
	})
	if err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}
	return output
}

func (e *lifecycleEnv) pendingAlerts(t *testing.T, userID uuid.UUID) []*entity.Alert {
	t.Helper()

	status := entity.AlertStatusPending
	alerts, err := e.alertRepo.FindByUserID(context.Background(), userID, &status)
	if err != nil {
		t.Fatalf("failed to list pending alerts: %v", err)
	}
	return alerts
}

func TestCreateRecurrence_PersistsRuleAndHorizon(t *testing.T) {
	env := newLifecycleEnv(t, date(2025, time.March, 1))
	userID := uuid.New()

	output := env.createMonthlyRule(t, userID)

	if output.AlertsGenerated != 6 {
		t.Errorf("expected 6 alerts generated, got %d", output.AlertsGenerated)
	}
	if output.LimitReached {
		t.Error("expected limitReached to be false")
	}

	rules, err := env.store.FindByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to list rules: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 persisted rule, got %d", len(rules))
	}

	alerts := env.pendingAlerts(t, userID)
	if len(alerts) != 6 {
		t.Fatalf("expected 6 persisted alerts, got %d", len(alerts))
	}
	if first := alerts[0].DueDate; !first.Equal(date(2025, time.March, 10)) {
		t.Errorf("expected first due date 2025-03-10, got %s", first.Format("2006-01-02"))
	}
}

func TestCreateRecurrence_ConfigErrorBeforePersistence(t *testing.T) {
	env := newLifecycleEnv(t, date(2025, time.March, 1))
	userID := uuid.New()

	uc := NewCreateRecurrenceUseCase(env.store, env.horizon)
	_, err := uc.Execute(context.Background(), CreateRecurrenceInput{
		UserID:    userID,
		Kind:      entity.RecurrenceKindExpense,
		Amount:    decimal.NewFromInt(50),
		Frequency: entity.FrequencyMonthly,
		// DayOfMonth deliberately missing.
		StartDate: date(2025, time.March, 1),
	})
	if !domainerror.IsConfigError(err) {
		t.Fatalf("expected a configuration error, got %v", err)
	}

	rules, err := env.store.FindByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to list rules: %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("expected no persisted rules after a config error, got %d", len(rules))
	}
}

func TestCreateRecurrence_AtomicOnAlertInsertFailure(t *testing.T) {
	env := newLifecycleEnv(t, date(2025, time.March, 1))
	userID := uuid.New()

	// Identical codes violate the unique index on the second alert, so
	// the whole transaction including the rule insert must roll back.
	horizon := NewHorizonGenerator(fixedClock{now: date(2025, time.March, 1)}, constantCodes{}, 6)
	uc := NewCreateRecurrenceUseCase(env.store, horizon)

	_, err := uc.Execute(context.Background(), CreateRecurrenceInput{
		UserID:      userID,
		Kind:        entity.RecurrenceKindExpense,
		Amount:      decimal.NewFromInt(100),
		Frequency:   entity.FrequencyMonthly,
		DayOfMonth:  intPtr(10),
		StartDate:   date(2025, time.March, 1),
		Description: "Rent",
	})
	if err == nil {
		t.Fatal("expected an error from the duplicate alert codes")
	}

	rules, listErr := env.store.FindByUserID(context.Background(), userID)
	if listErr != nil {
		t.Fatalf("failed to list rules: %v", listErr)
	}
	if len(rules) != 0 {
		t.Errorf("expected the rule insert to roll back, found %d rules", len(rules))
	}

	alerts, listErr := env.alertRepo.FindByUserID(context.Background(), userID, nil)
	if listErr != nil {
		t.Fatalf("failed to list alerts: %v", listErr)
	}
	if len(alerts) != 0 {
		t.Errorf("expected no alerts after rollback, found %d", len(alerts))
	}
}

func TestUpdateRecurrence_NonCriticalLeavesAlertsUntouched(t *testing.T) {
	env := newLifecycleEnv(t, date(2025, time.March, 1))
	userID := uuid.New()
	created := env.createMonthlyRule(t, userID)

	before := env.pendingAlerts(t, userID)

	description := "Rent at the new place"
	uc := NewUpdateRecurrenceUseCase(env.store, env.horizon)
	output, err := uc.Execute(context.Background(), UpdateRecurrenceInput{
		RuleID:      created.Rule.ID,
		UserID:      userID,
		Description: &description,
	})
	if err != nil {
		t.Fatalf("failed to update rule: %v", err)
	}

	if output.Regenerated {
		t.Error("expected no regeneration for a non-critical patch")
	}
	if output.Rule.Description != description {
		t.Errorf("expected updated description, got %q", output.Rule.Description)
	}

	after := env.pendingAlerts(t, userID)
	if len(after) != len(before) {
		t.Fatalf("expected %d alerts, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i].Code != after[i].Code {
			t.Errorf("alert %d changed code from %s to %s", i, before[i].Code, after[i].Code)
		}
	}
}

func TestUpdateRecurrence_CriticalRegeneratesAndKeepsPaid(t *testing.T) {
	env := newLifecycleEnv(t, date(2025, time.March, 1))
	userID := uuid.New()
	created := env.createMonthlyRule(t, userID)

	// Pay the earliest alert so it becomes protected history.
	before := env.pendingAlerts(t, userID)
	if err := env.alertRepo.MarkPaid(context.Background(), before[0].ID); err != nil {
		t.Fatalf("failed to mark alert paid: %v", err)
	}
	paidCode := before[0].Code

	amount := decimal.RequireFromString("135.00")
	uc := NewUpdateRecurrenceUseCase(env.store, env.horizon)
	output, err := uc.Execute(context.Background(), UpdateRecurrenceInput{
		RuleID: created.Rule.ID,
		UserID: userID,
		Amount: &amount,
	})
	if err != nil {
		t.Fatalf("failed to update rule: %v", err)
	}

	if !output.Regenerated {
		t.Fatal("expected regeneration for a critical patch")
	}
	if output.AlertsGenerated != 6 {
		t.Errorf("expected 6 regenerated alerts, got %d", output.AlertsGenerated)
	}

	after := env.pendingAlerts(t, userID)
	if len(after) != 6 {
		t.Fatalf("expected 6 pending alerts after regeneration, got %d", len(after))
	}
	for _, alert := range after {
		if !alert.Amount.Equal(amount) {
			t.Errorf("expected regenerated amount %s, got %s", amount, alert.Amount)
		}
	}

	paidStatus := entity.AlertStatusPaid
	paid, err := env.alertRepo.FindByUserID(context.Background(), userID, &paidStatus)
	if err != nil {
		t.Fatalf("failed to list paid alerts: %v", err)
	}
	if len(paid) != 1 || paid[0].Code != paidCode {
		t.Fatalf("expected the paid alert %s to survive regeneration, got %v", paidCode, paid)
	}
	if !paid[0].Amount.Equal(decimal.RequireFromString("120.50")) {
		t.Errorf("expected the paid alert to keep its historical amount, got %s", paid[0].Amount)
	}
}

func TestUpdateRecurrence_NotFoundForWrongUser(t *testing.T) {
	env := newLifecycleEnv(t, date(2025, time.March, 1))
	created := env.createMonthlyRule(t, uuid.New())

	description := "hijack"
	uc := NewUpdateRecurrenceUseCase(env.store, env.horizon)
	_, err := uc.Execute(context.Background(), UpdateRecurrenceInput{
		RuleID:      created.Rule.ID,
		UserID:      uuid.New(), // different user
		Description: &description,
	})

	var recErr *domainerror.RecurrenceError
	if !errors.As(err, &recErr) {
		t.Fatalf("expected a RecurrenceError, got %v", err)
	}
	if recErr.Code != domainerror.ErrCodeRecurrenceNotFound {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeRecurrenceNotFound, recErr.Code)
	}
}

func TestDeleteRecurrence_RemovesPendingKeepsPaid(t *testing.T) {
	env := newLifecycleEnv(t, date(2025, time.March, 1))
	userID := uuid.New()
	created := env.createMonthlyRule(t, userID)

	before := env.pendingAlerts(t, userID)
	if err := env.alertRepo.MarkPaid(context.Background(), before[0].ID); err != nil {
		t.Fatalf("failed to mark alert paid: %v", err)
	}

	uc := NewDeleteRecurrenceUseCase(env.store)
	output, err := uc.Execute(context.Background(), DeleteRecurrenceInput{
		RuleID: created.Rule.ID,
		UserID: userID,
	})
	if err != nil {
		t.Fatalf("failed to delete rule: %v", err)
	}

	if !output.Success {
		t.Error("expected success")
	}
	if output.AlertsDeleted != 5 {
		t.Errorf("expected 5 deleted pending alerts, got %d", output.AlertsDeleted)
	}

	if _, err := env.store.FindByIDAndUser(context.Background(), created.Rule.ID, userID); !errors.Is(err, domainerror.ErrRecurrenceNotFound) {
		t.Errorf("expected the rule to be gone, got %v", err)
	}

	if pending := env.pendingAlerts(t, userID); len(pending) != 0 {
		t.Errorf("expected no pending alerts, got %d", len(pending))
	}

	paidStatus := entity.AlertStatusPaid
	paid, err := env.alertRepo.FindByUserID(context.Background(), userID, &paidStatus)
	if err != nil {
		t.Fatalf("failed to list paid alerts: %v", err)
	}
	if len(paid) != 1 {
		t.Errorf("expected the paid alert to survive deletion, got %d", len(paid))
	}
}

func TestDeleteRecurrence_NotFoundForWrongUser(t *testing.T) {
	env := newLifecycleEnv(t, date(2025, time.March, 1))
	created := env.createMonthlyRule(t, uuid.New())

	uc := NewDeleteRecurrenceUseCase(env.store)
	_, err := uc.Execute(context.Background(), DeleteRecurrenceInput{
		RuleID: created.Rule.ID,
		UserID: uuid.New(),
	})

	var recErr *domainerror.RecurrenceError
	if !errors.As(err, &recErr) {
		t.Fatalf("expected a RecurrenceError, got %v", err)
	}
	if recErr.Code != domainerror.ErrCodeRecurrenceNotFound {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeRecurrenceNotFound, recErr.Code)
	}
}
