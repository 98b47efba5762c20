// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/granabot/backend/config"
	"github.com/granabot/backend/internal/application/usecase/alert"
	"github.com/granabot/backend/internal/application/usecase/recurrence"
	"github.com/granabot/backend/internal/infra/scheduler"
	"github.com/granabot/backend/internal/infra/server/router"
	"github.com/granabot/backend/internal/integration/adapters"
	"github.com/granabot/backend/internal/integration/entrypoint/controller"
	"github.com/granabot/backend/internal/integration/entrypoint/middleware"
	"github.com/granabot/backend/internal/integration/notification"
	"github.com/granabot/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config     *config.Config
	DB         *gorm.DB
	Router     *router.Router
	Dispatcher *scheduler.AlertDispatcher
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) *Injector {
	// Create repositories
	recurrenceStore := persistence.NewRecurrenceStore(db)
	alertRepo := persistence.NewAlertRepository(db)

	// Create adapters/services
	clock := adapters.NewSystemClock()
	codeGenerator := adapters.NewAlertCodeGenerator()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	// Create the recurrence engine
	horizonGenerator := recurrence.NewHorizonGenerator(clock, codeGenerator, cfg.Recurrence.HorizonMonths)

	// Create recurrence use cases
	createRecurrenceUseCase := recurrence.NewCreateRecurrenceUseCase(recurrenceStore, horizonGenerator)
	updateRecurrenceUseCase := recurrence.NewUpdateRecurrenceUseCase(recurrenceStore, horizonGenerator)
	deleteRecurrenceUseCase := recurrence.NewDeleteRecurrenceUseCase(recurrenceStore)
	listRecurrencesUseCase := recurrence.NewListRecurrencesUseCase(recurrenceStore)

	// Create alert use cases
	listAlertsUseCase := alert.NewListAlertsUseCase(alertRepo)
	markAlertPaidUseCase := alert.NewMarkAlertPaidUseCase(alertRepo)
	getDueAlertsUseCase := alert.NewGetDueAlertsUseCase(alertRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	recurrenceController := controller.NewRecurrenceController(
		createRecurrenceUseCase,
		updateRecurrenceUseCase,
		deleteRecurrenceUseCase,
		listRecurrencesUseCase,
	)

	alertController := controller.NewAlertController(
		listAlertsUseCase,
		markAlertPaidUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var apiRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		apiRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		apiRateLimiter = middleware.NewRateLimiterWithConfig(120, 1*time.Minute)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	appRouter := router.NewRouter(
		healthController,
		recurrenceController,
		alertController,
		apiRateLimiter,
		authMiddleware,
	)

	// Create the daily dispatcher. Redis is optional; without it the
	// dispatch lock degrades to per-instance.
	var redisConn *redis.Client
	if cfg.Redis.Addr != "" {
		redisConn = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	notifier := notification.NewResendNotifier(
		cfg.Notification.ResendAPIKey,
		cfg.Notification.FromName,
		cfg.Notification.FromEmail,
		cfg.Notification.DigestEmail,
	)

	dispatcher := scheduler.NewAlertDispatcher(
		getDueAlertsUseCase,
		notifier,
		clock,
		redisConn,
		cfg.Dispatch.CronSpec,
	)

	return &Injector{
		Config:     cfg,
		DB:         db,
		Router:     appRouter,
		Dispatcher: dispatcher,
	}
}
