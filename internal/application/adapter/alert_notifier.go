// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/granabot/backend/internal/domain/entity"
)

// AlertNotifier forwards a batch of due alerts to a notification channel.
// The engine never decides whether a reminder should be sent; the daily
// dispatcher reads already-generated due alerts and hands them over here.
type AlertNotifier interface {
	NotifyDueAlerts(ctx context.Context, alerts []*entity.Alert) error
}
