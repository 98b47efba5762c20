package mock

import (
	"sync"
	"time"

	"github.com/granabot/backend/internal/application/adapter"
)

// Clock implements adapter.Clock with a settable current time so
// scenarios can pin "today".
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

var _ adapter.Clock = (*Clock)(nil)

// NewClock creates a clock frozen at the real current time.
func NewClock() *Clock {
	return &Clock{current: time.Now().UTC()}
}

// Set pins the clock to the given time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Now returns the pinned time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
