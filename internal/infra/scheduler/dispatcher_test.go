// Package scheduler runs the daily due-alert dispatch job.
package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/granabot/backend/internal/application/usecase/alert"
	"github.com/granabot/backend/internal/domain/entity"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// dueAlertRepo serves a fixed set of alerts through the AlertRepository
// methods the dispatcher path uses.
type dueAlertRepo struct {
	due []*entity.Alert
}

func (r *dueAlertRepo) FindByUserID(context.Context, uuid.UUID, *entity.AlertStatus) ([]*entity.Alert, error) {
	return nil, nil
}

func (r *dueAlertRepo) FindByCodeAndUser(context.Context, string, uuid.UUID) (*entity.Alert, error) {
	return nil, nil
}

func (r *dueAlertRepo) FindPendingByRule(context.Context, uuid.UUID) ([]*entity.Alert, error) {
	return nil, nil
}

func (r *dueAlertRepo) FindDueOn(context.Context, time.Time) ([]*entity.Alert, error) {
	return r.due, nil
}

func (r *dueAlertRepo) MarkPaid(context.Context, uuid.UUID) error {
	return nil
}

type captureNotifier struct {
	digests [][]*entity.Alert
}

func (n *captureNotifier) NotifyDueAlerts(_ context.Context, alerts []*entity.Alert) error {
	n.digests = append(n.digests, alerts)
	return nil
}

func dueAlert() *entity.Alert {
	return entity.NewAlert(
		"ALT-TESTDUE",
		uuid.New(),
		decimal.NewFromInt(100),
		time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		entity.RecurrenceKindExpense,
		"Rent",
		"housing",
		uuid.New(),
	)
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	server := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: server.Addr()})
}

func TestDispatchDue_DeliversDigest(t *testing.T) {
	repo := &dueAlertRepo{due: []*entity.Alert{dueAlert(), dueAlert()}}
	notifier := &captureNotifier{}
	clock := fixedClock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}

	d := NewAlertDispatcher(alert.NewGetDueAlertsUseCase(repo), notifier, clock, newTestRedis(t), "0 9 * * *")

	if err := d.DispatchDue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.digests) != 1 {
		t.Fatalf("expected 1 digest, got %d", len(notifier.digests))
	}
	if len(notifier.digests[0]) != 2 {
		t.Errorf("expected 2 alerts in the digest, got %d", len(notifier.digests[0]))
	}
}

func TestDispatchDue_DeduplicatesWithinADay(t *testing.T) {
	repo := &dueAlertRepo{due: []*entity.Alert{dueAlert()}}
	notifier := &captureNotifier{}
	clock := fixedClock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}

	d := NewAlertDispatcher(alert.NewGetDueAlertsUseCase(repo), notifier, clock, newTestRedis(t), "0 9 * * *")

	if err := d.DispatchDue(context.Background()); err != nil {
		t.Fatalf("unexpected error on first run: %v", err)
	}
	if err := d.DispatchDue(context.Background()); err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}

	if len(notifier.digests) != 1 {
		t.Errorf("expected the second run to be skipped, got %d digests", len(notifier.digests))
	}
}

func TestDispatchDue_SeparateDaysDispatchSeparately(t *testing.T) {
	repo := &dueAlertRepo{due: []*entity.Alert{dueAlert()}}
	notifier := &captureNotifier{}
	redisConn := newTestRedis(t)

	day1 := fixedClock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
	day2 := fixedClock{now: time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC)}

	d1 := NewAlertDispatcher(alert.NewGetDueAlertsUseCase(repo), notifier, day1, redisConn, "0 9 * * *")
	d2 := NewAlertDispatcher(alert.NewGetDueAlertsUseCase(repo), notifier, day2, redisConn, "0 9 * * *")

	if err := d1.DispatchDue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d2.DispatchDue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifier.digests) != 2 {
		t.Errorf("expected one digest per day, got %d", len(notifier.digests))
	}
}

func TestDispatchDue_NoRedisRunsUnlocked(t *testing.T) {
	repo := &dueAlertRepo{due: []*entity.Alert{dueAlert()}}
	notifier := &captureNotifier{}
	clock := fixedClock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}

	d := NewAlertDispatcher(alert.NewGetDueAlertsUseCase(repo), notifier, clock, nil, "0 9 * * *")

	if err := d.DispatchDue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.DispatchDue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifier.digests) != 2 {
		t.Errorf("expected both runs to deliver without a lock, got %d digests", len(notifier.digests))
	}
}

func TestDispatchDue_NothingDueDeliversNothing(t *testing.T) {
	repo := &dueAlertRepo{}
	notifier := &captureNotifier{}
	clock := fixedClock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}

	d := NewAlertDispatcher(alert.NewGetDueAlertsUseCase(repo), notifier, clock, newTestRedis(t), "0 9 * * *")

	if err := d.DispatchDue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.digests) != 0 {
		t.Errorf("expected no digests, got %d", len(notifier.digests))
	}
}
