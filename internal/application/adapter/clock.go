// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock abstracts the current time so horizon computation is
// deterministic and testable. Production code injects the system clock;
// tests inject a fixed one.
type Clock interface {
	Now() time.Time
}
