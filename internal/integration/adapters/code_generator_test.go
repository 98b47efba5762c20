// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"strings"
	"testing"
)

func TestAlertCodeGenerator(t *testing.T) {
	gen := NewAlertCodeGenerator()

	t.Run("codes carry the prefix and fixed length", func(t *testing.T) {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(code, alertCodePrefix) {
			t.Errorf("expected prefix %s, got %s", alertCodePrefix, code)
		}
		if len(code) != len(alertCodePrefix)+alertCodeLength {
			t.Errorf("expected length %d, got %d (%s)", len(alertCodePrefix)+alertCodeLength, len(code), code)
		}
	})

	t.Run("codes only use unambiguous characters", func(t *testing.T) {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, c := range strings.TrimPrefix(code, alertCodePrefix) {
			if !strings.ContainsRune(alertCodeAlphabet, c) {
				t.Errorf("code %s contains %q, which is not in the alphabet", code, c)
			}
		}
	})

	t.Run("characters are drawn uniformly", func(t *testing.T) {
		// Byte-modulo sampling overweights the first 256%31 = 8 alphabet
		// characters by a factor of 9/8; their combined share has to stay
		// near the uniform 8/31.
		const samples = 10000
		counts := make(map[byte]int)
		for i := 0; i < samples; i++ {
			code, err := gen.Generate()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for j := len(alertCodePrefix); j < len(code); j++ {
				counts[code[j]]++
			}
		}

		firstEight := 0
		for i := 0; i < 8; i++ {
			firstEight += counts[alertCodeAlphabet[i]]
		}

		expected := samples * alertCodeLength * 8 / len(alertCodeAlphabet)
		if tolerance := expected / 25; firstEight > expected+tolerance {
			t.Errorf("first eight alphabet characters drawn %d times, expected about %d", firstEight, expected)
		}
	})

	t.Run("codes do not repeat across a large batch", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 10000; i++ {
			code, err := gen.Generate()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if seen[code] {
				t.Fatalf("duplicate code %s after %d generations", code, i)
			}
			seen[code] = true
		}
	})
}
