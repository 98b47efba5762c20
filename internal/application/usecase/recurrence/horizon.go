// Package recurrence contains the recurrence scheduling use cases.
package recurrence

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/granabot/backend/internal/application/adapter"
	"github.com/granabot/backend/internal/domain/entity"
	domainerror "github.com/granabot/backend/internal/domain/error"
)

// DefaultHorizonMonths is the default forward window for alert
// pre-generation, used when no per-deployment value is configured.
const DefaultHorizonMonths = 24

// iterationCapPerMonth bounds a single generation run at
// horizonMonths x iterationCapPerMonth calculator steps. Hitting the cap
// is a warning condition, not a failure: generation stops with whatever
// was produced so far so runaway rules can be monitored without failing
// the request.
const iterationCapPerMonth = 40

// HorizonGenerator drives the occurrence calculator from a rule's start
// date and turns every occurrence inside the forward window into a draft
// pending alert.
type HorizonGenerator struct {
	clock         adapter.Clock
	codes         adapter.AlertCodeGenerator
	horizonMonths int
}

// NewHorizonGenerator creates a new HorizonGenerator instance.
func NewHorizonGenerator(clock adapter.Clock, codes adapter.AlertCodeGenerator, horizonMonths int) *HorizonGenerator {
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}
	return &HorizonGenerator{
		clock:         clock,
		codes:         codes,
		horizonMonths: horizonMonths,
	}
}

// HorizonMonths returns the configured forward window in months.
func (g *HorizonGenerator) HorizonMonths() int {
	return g.horizonMonths
}

// Generate produces the ordered draft alerts for every occurrence of the
// rule between its start date (inclusive, when the start date itself fits
// the rule's anchor) and now + horizonMonths. The boolean result reports
// whether the iteration safety cap truncated generation.
func (g *HorizonGenerator) Generate(rule *entity.RecurrenceRule) ([]*entity.Alert, bool, error) {
	if err := ValidateSchedule(rule); err != nil {
		return nil, false, err
	}

	horizonEnd := dateOnly(g.clock.Now()).AddDate(0, g.horizonMonths, 0)
	maxIterations := g.horizonMonths * iterationCapPerMonth

	current := dateOnly(rule.StartDate)
	if !OccursOn(rule, current) {
		next, err := NextOccurrence(rule, current)
		if err != nil {
			if errors.Is(err, domainerror.ErrNoMoreOccurrences) {
				return nil, false, nil
			}
			return nil, false, err
		}
		current = next
	}

	var alerts []*entity.Alert
	for i := 0; ; i++ {
		if i >= maxIterations {
			slog.Warn("Horizon generation hit the iteration safety cap",
				"rule_id", rule.ID,
				"horizon_months", g.horizonMonths,
				"alerts_generated", len(alerts),
			)
			return alerts, true, nil
		}

		if current.After(horizonEnd) {
			break
		}
		if rule.EndDate != nil && current.After(dateOnly(*rule.EndDate)) {
			break
		}

		alert, err := g.draftAlert(rule, current)
		if err != nil {
			return nil, false, err
		}
		alerts = append(alerts, alert)

		next, err := NextOccurrence(rule, current)
		if err != nil {
			if errors.Is(err, domainerror.ErrNoMoreOccurrences) {
				break
			}
			return nil, false, err
		}
		if !next.After(current) {
			// Non-advancing date; stop instead of spinning.
			break
		}
		current = next
	}

	return alerts, false, nil
}

// draftAlert builds one pending alert for an occurrence, copying the
// rule's fields and suffixing the description with a month/year tag so
// repeated entries stay distinguishable.
func (g *HorizonGenerator) draftAlert(rule *entity.RecurrenceRule, dueDate time.Time) (*entity.Alert, error) {
	code, err := g.codes.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate alert code: %w", err)
	}

	description := strings.TrimSpace(
		fmt.Sprintf("%s (%s)", rule.Description, dueDate.Format("Jan/2006")),
	)

	return entity.NewAlert(
		code,
		rule.UserID,
		rule.Amount,
		dueDate,
		rule.Kind,
		description,
		rule.Category,
		rule.ID,
	), nil
}
