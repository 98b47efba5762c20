// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/granabot/backend/internal/application/adapter"
	"github.com/granabot/backend/internal/domain/entity"
	domainerror "github.com/granabot/backend/internal/domain/error"
	"github.com/granabot/backend/internal/integration/persistence/model"
)

// alertRepository implements the adapter.AlertRepository interface.
type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository instance.
func NewAlertRepository(db *gorm.DB) adapter.AlertRepository {
	return &alertRepository{
		db: db,
	}
}

// FindByUserID retrieves alerts for a user, optionally filtered by status.
func (r *alertRepository) FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.AlertStatus) ([]*entity.Alert, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var alertModels []model.AlertModel
	result := query.Order("due_date ASC").Find(&alertModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return toAlertEntities(alertModels), nil
}

// FindByCodeAndUser retrieves an alert by its short code scoped to the owner.
func (r *alertRepository) FindByCodeAndUser(ctx context.Context, code string, userID uuid.UUID) (*entity.Alert, error) {
	var alertModel model.AlertModel
	result := r.db.WithContext(ctx).
		Where("code = ? AND user_id = ?", code, userID).
		First(&alertModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAlertNotFound
		}
		return nil, result.Error
	}
	return alertModel.ToEntity(), nil
}

// FindPendingByRule retrieves the still-pending alerts of a rule.
func (r *alertRepository) FindPendingByRule(ctx context.Context, ruleID uuid.UUID) ([]*entity.Alert, error) {
	var alertModels []model.AlertModel
	result := r.db.WithContext(ctx).
		Where("parent_rule_id = ? AND status = ?", ruleID, string(entity.AlertStatusPending)).
		Order("due_date ASC").
		Find(&alertModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toAlertEntities(alertModels), nil
}

// FindDueOn retrieves all pending alerts due on the given calendar date.
func (r *alertRepository) FindDueOn(ctx context.Context, date time.Time) ([]*entity.Alert, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var alertModels []model.AlertModel
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.AlertStatusPending)).
		Where("due_date >= ? AND due_date < ?", dayStart, dayEnd).
		Order("user_id, due_date ASC").
		Find(&alertModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toAlertEntities(alertModels), nil
}

// MarkPaid transitions an alert to the paid status.
func (r *alertRepository) MarkPaid(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.AlertModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(entity.AlertStatusPaid),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAlertNotFound
	}
	return nil
}

func toAlertEntities(alertModels []model.AlertModel) []*entity.Alert {
	alerts := make([]*entity.Alert, len(alertModels))
	for i, am := range alertModels {
		alerts[i] = am.ToEntity()
	}
	return alerts
}
