package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/granabot/backend/internal/integration/persistence/model"
)

// registerRecurrenceSteps registers the recurrence- and alert-specific steps.
func registerRecurrenceSteps(ctx *godog.ScenarioContext, test *testContext) {
	ctx.Given(`^today is "(\d{4}-\d{2}-\d{2})"$`, test.todayIs)
	ctx.Step(`^I remember the created rule$`, test.iRememberTheCreatedRule)
	ctx.Step(`^I remember the alert code at index (\d+)$`, test.iRememberTheAlertCodeAtIndex)
	ctx.Then(`^there should be (\d+) recurrence rules? in the database$`, test.thereShouldBeRecurrenceRules)
	ctx.Then(`^there should be (\d+) alerts? in the database$`, test.thereShouldBeAlerts)
	ctx.Then(`^there should be (\d+) (pending|paid) alerts? in the database$`, test.thereShouldBeAlertsWithStatus)
	ctx.When(`^the daily dispatch runs$`, test.theDailyDispatchRuns)
	ctx.Then(`^(\d+) digests? should have been delivered$`, test.digestsShouldHaveBeenDelivered)
	ctx.Then(`^the last digest should contain (\d+) alerts?$`, test.theLastDigestShouldContain)
}

func (t *testContext) todayIs(date string) error {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	t.stack.clock.Set(parsed.UTC())
	return nil
}

func (t *testContext) iRememberTheCreatedRule() error {
	value, err := t.responseField("rule.id")
	if err != nil {
		return err
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return fmt.Errorf("rule.id is not a string: %v", value)
	}
	t.lastRuleID = id
	return nil
}

func (t *testContext) iRememberTheAlertCodeAtIndex(index int) error {
	value, err := t.responseField(fmt.Sprintf("alerts.%d.code", index))
	if err != nil {
		return err
	}
	code, ok := value.(string)
	if !ok || code == "" {
		return fmt.Errorf("alert code at index %d is not a string: %v", index, value)
	}
	t.lastAlertCode = code
	return nil
}

func (t *testContext) thereShouldBeRecurrenceRules(expected int) error {
	count, err := t.stack.db.Count(&model.RecurrenceRuleModel{})
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d recurrence rules, found %d", expected, count)
	}
	return nil
}

func (t *testContext) thereShouldBeAlerts(expected int) error {
	count, err := t.stack.db.Count(&model.AlertModel{})
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d alerts, found %d", expected, count)
	}
	return nil
}

func (t *testContext) thereShouldBeAlertsWithStatus(expected int, status string) error {
	var count int64
	err := t.stack.db.DbConn.
		Model(&model.AlertModel{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d %s alerts, found %d", expected, status, count)
	}
	return nil
}

func (t *testContext) theDailyDispatchRuns() error {
	return t.stack.dispatcher.DispatchDue(context.Background())
}

func (t *testContext) digestsShouldHaveBeenDelivered(expected int) error {
	digests := t.stack.notifier.Digests()
	if len(digests) != expected {
		return fmt.Errorf("expected %d digests, got %d", expected, len(digests))
	}
	return nil
}

func (t *testContext) theLastDigestShouldContain(expected int) error {
	digests := t.stack.notifier.Digests()
	if len(digests) == 0 {
		return fmt.Errorf("no digests delivered")
	}
	last := digests[len(digests)-1]
	if len(last) != expected {
		return fmt.Errorf("expected %d alerts in the last digest, got %d", expected, len(last))
	}
	return nil
}
