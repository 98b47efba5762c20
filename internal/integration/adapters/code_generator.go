// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"crypto/rand"
	"fmt"

	"github.com/granabot/backend/internal/application/adapter"
)

const (
	alertCodePrefix = "ALT-"
	alertCodeLength = 7

	// Ambiguous characters (0/O, 1/I/L) are excluded so codes survive
	// being read back over chat.
	alertCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
)

// alertCodeGenerator implements adapter.AlertCodeGenerator with
// crypto/rand. With 31^7 (~27.5 billion) possible codes, collisions are
// negligible even across concurrent bulk generations, so no database
// retry loop is needed.
type alertCodeGenerator struct{}

// NewAlertCodeGenerator creates a new alert code generator instance.
func NewAlertCodeGenerator() adapter.AlertCodeGenerator {
	return &alertCodeGenerator{}
}

// Generate mints one ALT-prefixed short code. Random bytes that do not
// fit a whole number of alphabet repetitions are rejected, keeping the
// character distribution uniform.
func (g *alertCodeGenerator) Generate() (string, error) {
	// 256 is not a multiple of 31; bytes at or above the largest
	// multiple below it would overweight the first characters.
	const rejectAbove = byte(256 - 256%len(alertCodeAlphabet))

	code := make([]byte, 0, alertCodeLength)
	buf := make([]byte, alertCodeLength)
	for len(code) < alertCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= rejectAbove {
				continue
			}
			code = append(code, alertCodeAlphabet[int(b)%len(alertCodeAlphabet)])
			if len(code) == alertCodeLength {
				break
			}
		}
	}
	return alertCodePrefix + string(code), nil
}
