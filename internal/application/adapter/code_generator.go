// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// AlertCodeGenerator produces short, collision-resistant identifiers for
// new alerts (format ALT-<7 chars>). Generation must be collision-free
// across concurrent callers without database retries, since a single rule
// creation can mint thousands of codes.
type AlertCodeGenerator interface {
	Generate() (string, error)
}
