// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/granabot/backend/internal/application/adapter"
	"github.com/granabot/backend/internal/domain/entity"
	domainerror "github.com/granabot/backend/internal/domain/error"
	"github.com/granabot/backend/internal/integration/persistence/model"
)

// alertInsertBatchSize caps the rows per INSERT statement for bulk alert
// creation. One CreateInBatches call is still a single round-trip batch
// operation per transaction for any realistic horizon.
const alertInsertBatchSize = 500

// recurrenceStore implements the adapter.RecurrenceStore interface.
type recurrenceStore struct {
	db *gorm.DB
}

// NewRecurrenceStore creates a new recurrence store instance.
func NewRecurrenceStore(db *gorm.DB) adapter.RecurrenceStore {
	return &recurrenceStore{
		db: db,
	}
}

// WithinTx runs fn inside one database transaction; any error rolls the
// whole unit back.
func (s *recurrenceStore) WithinTx(ctx context.Context, fn func(tx adapter.RecurrenceTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&recurrenceTx{db: tx})
	})
}

// FindByIDAndUser retrieves a rule by ID scoped to its owner.
func (s *recurrenceStore) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.RecurrenceRule, error) {
	var ruleModel model.RecurrenceRuleModel
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurrenceNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindByUserID retrieves all rules for a given user.
func (s *recurrenceStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurrenceRule, error) {
	var ruleModels []model.RecurrenceRuleModel
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.RecurrenceRule, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntity()
	}
	return rules, nil
}

// recurrenceTx implements adapter.RecurrenceTx on top of an open gorm
// transaction.
type recurrenceTx struct {
	db *gorm.DB
}

// LockRule loads the rule row for the owner with a row-level lock held
// until the transaction ends.
func (t *recurrenceTx) LockRule(ctx context.Context, id, userID uuid.UUID) (*entity.RecurrenceRule, error) {
	query := t.db.WithContext(ctx)
	// SQLite has no SELECT ... FOR UPDATE; its single-writer transaction
	// already serializes test runs.
	if t.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ruleModel model.RecurrenceRuleModel
	result := query.
		Where("id = ? AND user_id = ?", id, userID).
		First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurrenceNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// InsertRule persists a new rule.
func (t *recurrenceTx) InsertRule(ctx context.Context, rule *entity.RecurrenceRule) error {
	ruleModel := model.RecurrenceRuleFromEntity(rule)
	result := t.db.WithContext(ctx).Create(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// UpdateRule persists changes to an existing rule.
func (t *recurrenceTx) UpdateRule(ctx context.Context, rule *entity.RecurrenceRule) error {
	ruleModel := model.RecurrenceRuleFromEntity(rule)
	result := t.db.WithContext(ctx).Save(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteRule soft-deletes the rule scoped to its owner.
func (t *recurrenceTx) DeleteRule(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	result := t.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.RecurrenceRuleModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// BulkInsertAlerts persists a batch of alerts in a single batched insert.
func (t *recurrenceTx) BulkInsertAlerts(ctx context.Context, alerts []*entity.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	alertModels := make([]*model.AlertModel, len(alerts))
	for i, a := range alerts {
		alertModels[i] = model.AlertFromEntity(a)
	}

	result := t.db.WithContext(ctx).CreateInBatches(alertModels, alertInsertBatchSize)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeletePendingAlertsByRule soft-deletes the still-pending alerts of a
// rule; paid alerts are preserved as history.
func (t *recurrenceTx) DeletePendingAlertsByRule(ctx context.Context, ruleID uuid.UUID) (int64, error) {
	result := t.db.WithContext(ctx).
		Where("parent_rule_id = ? AND status = ?", ruleID, string(entity.AlertStatusPending)).
		Delete(&model.AlertModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
