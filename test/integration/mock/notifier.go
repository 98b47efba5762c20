package mock

import (
	"context"
	"sync"

	"github.com/granabot/backend/internal/application/adapter"
	"github.com/granabot/backend/internal/domain/entity"
)

// Notifier implements adapter.AlertNotifier and records every digest it
// is asked to deliver.
type Notifier struct {
	mu      sync.Mutex
	digests [][]*entity.Alert
}

var _ adapter.AlertNotifier = (*Notifier)(nil)

// NewNotifier creates a new capturing notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// NotifyDueAlerts records the batch without delivering anything.
func (n *Notifier) NotifyDueAlerts(_ context.Context, alerts []*entity.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.digests = append(n.digests, alerts)
	return nil
}

// Digests returns every recorded batch.
func (n *Notifier) Digests() [][]*entity.Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([][]*entity.Alert, len(n.digests))
	copy(out, n.digests)
	return out
}

// Reset discards the recorded batches.
func (n *Notifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.digests = nil
}
