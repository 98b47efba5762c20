// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/granabot/backend/internal/application/usecase/alert"
	"github.com/granabot/backend/internal/application/usecase/recurrence"
	"github.com/granabot/backend/internal/infra/scheduler"
	"github.com/granabot/backend/internal/infra/server/router"
	"github.com/granabot/backend/internal/integration/adapters"
	"github.com/granabot/backend/internal/integration/entrypoint/controller"
	"github.com/granabot/backend/internal/integration/entrypoint/middleware"
	"github.com/granabot/backend/internal/integration/persistence"
	"github.com/granabot/backend/internal/integration/persistence/model"
	"github.com/granabot/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// testHorizonMonths keeps scenario alert counts small and predictable.
const testHorizonMonths = 6

// stack holds the in-process application under test, built once per
// test process and reset between scenarios.
type stack struct {
	db         *mock.Db
	clock      *mock.Clock
	notifier   *mock.Notifier
	redisConn  *redis.Client
	dispatcher *scheduler.AlertDispatcher
	server     *httptest.Server
}

var stackOnce sync.Once
var testStack *stack

func buildStack() *stack {
	gin.SetMode(gin.TestMode)

	db := mock.NewDb(&model.RecurrenceRuleModel{}, &model.AlertModel{})
	clock := mock.NewClock()
	notifier := mock.NewNotifier()
	redisConn := mock.NewRedis()

	recurrenceStore := persistence.NewRecurrenceStore(db.DbConn)
	alertRepo := persistence.NewAlertRepository(db.DbConn)

	codeGenerator := adapters.NewAlertCodeGenerator()
	tokenService := adapters.NewTokenService(testJWTSecret)
	horizonGenerator := recurrence.NewHorizonGenerator(clock, codeGenerator, testHorizonMonths)

	recurrenceController := controller.NewRecurrenceController(
		recurrence.NewCreateRecurrenceUseCase(recurrenceStore, horizonGenerator),
		recurrence.NewUpdateRecurrenceUseCase(recurrenceStore, horizonGenerator),
		recurrence.NewDeleteRecurrenceUseCase(recurrenceStore),
		recurrence.NewListRecurrencesUseCase(recurrenceStore),
	)
	alertController := controller.NewAlertController(
		alert.NewListAlertsUseCase(alertRepo),
		alert.NewMarkAlertPaidUseCase(alertRepo),
	)
	healthController := controller.NewHealthController(func() bool { return true })

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(healthController, recurrenceController, alertController, nil, authMiddleware)
	engine := r.Setup("test")

	dispatcher := scheduler.NewAlertDispatcher(
		alert.NewGetDueAlertsUseCase(alertRepo),
		notifier,
		clock,
		redisConn,
		"0 9 * * *",
	)

	return &stack{
		db:         db,
		clock:      clock,
		notifier:   notifier,
		redisConn:  redisConn,
		dispatcher: dispatcher,
		server:     httptest.NewServer(engine),
	}
}

// testContext holds the per-scenario state.
type testContext struct {
	stack *stack

	client         *http.Client
	requestHeaders map[string]string
	response       *http.Response
	responseBody   []byte

	accessToken   string
	currentUserID uuid.UUID
	lastRuleID    string
	lastAlertCode string
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		stackOnce.Do(func() {
			testStack = buildStack()
		})
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	stackOnce.Do(func() {
		testStack = buildStack()
	})

	test := &testContext{
		stack:          testStack,
		client:         &http.Client{Timeout: 10 * time.Second},
		requestHeaders: map[string]string{},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := test.stack.db.Reset(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(test.stack.redisConn); err != nil {
			return ctx, err
		}
		test.stack.notifier.Reset()
		test.stack.clock.Set(time.Now().UTC())
		test.requestHeaders = map[string]string{}
		test.response = nil
		test.responseBody = nil
		test.accessToken = ""
		test.lastRuleID = ""
		test.lastAlertCode = ""
		return ctx, nil
	})

	registerAPISteps(ctx, test)
	registerResponseSteps(ctx, test)
	registerRecurrenceSteps(ctx, test)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext, test *testContext) {
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^I am authenticated$`, test.iAmAuthenticated)
	ctx.Given(`^I am not authenticated$`, test.iAmNotAuthenticated)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext, test *testContext) {
	ctx.Step(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
}

// Step implementations

func (t *testContext) theAPIServerIsRunning() error {
	if t.stack == nil || t.stack.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func (t *testContext) iAmAuthenticated() error {
	t.currentUserID = uuid.New()

	claims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to sign test token: %w", err)
	}

	t.accessToken = token
	return nil
}

func (t *testContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	return nil
}

// expandEndpoint substitutes captured identifiers into endpoint templates.
func (t *testContext) expandEndpoint(endpoint string) string {
	endpoint = strings.ReplaceAll(endpoint, "{rule_id}", t.lastRuleID)
	endpoint = strings.ReplaceAll(endpoint, "{alert_code}", t.lastAlertCode)
	return endpoint
}

func (t *testContext) iSendARequestTo(method, endpoint string) error {
	return t.doRequest(method, endpoint, nil)
}

func (t *testContext) iSendARequestToWithBody(method, endpoint string, body *godog.DocString) error {
	return t.doRequest(method, endpoint, bytes.NewBufferString(body.Content))
}

func (t *testContext) doRequest(method, endpoint string, body io.Reader) error {
	url := t.stack.server.URL + t.expandEndpoint(endpoint)
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range t.requestHeaders {
		req.Header.Set(key, value)
	}
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	t.response = resp
	t.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if t.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedStatus, t.response.StatusCode, string(t.responseBody))
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if !strings.Contains(string(t.responseBody), expected) {
		return fmt.Errorf("response does not contain %q. Body: %s", expected, string(t.responseBody))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expected string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

// responseField navigates a dotted path through the response JSON.
// Numeric path segments index into arrays, e.g. "alerts.0.code".
func (t *testContext) responseField(path string) (any, error) {
	var data any
	if err := json.Unmarshal(t.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response. Body: %s", path, string(t.responseBody))
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("invalid array index %q in path %q", segment, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("cannot navigate %q in path %q", segment, path)
		}
	}
	return current, nil
}
