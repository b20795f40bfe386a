// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-insights/backend/config"
	"github.com/expense-insights/backend/internal/application/usecase/auth"
	"github.com/expense-insights/backend/internal/application/usecase/expense"
	"github.com/expense-insights/backend/internal/application/usecase/report"
	"github.com/expense-insights/backend/internal/domain/entity"
	"github.com/expense-insights/backend/internal/infra/server/router"
	"github.com/expense-insights/backend/internal/integration/adapters"
	"github.com/expense-insights/backend/internal/integration/cache"
	"github.com/expense-insights/backend/internal/integration/email"
	"github.com/expense-insights/backend/internal/integration/email/templates"
	"github.com/expense-insights/backend/internal/integration/entrypoint/controller"
	"github.com/expense-insights/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-insights/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
	Redis       *redis.Client
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Redis-backed report cache
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisClient := redis.NewClient(redisOpts)
	reportCache := cache.NewReportCache(redisClient, cfg.Reports.CacheTTL)

	// Adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Domain catalog and report tuning
	catalog := entity.DefaultCatalog()
	bounds := report.PeriodBounds{MinYear: cfg.Reports.MinYear, MaxYear: cfg.Reports.MaxYear}
	thresholds := report.InsightThresholds{
		TrendDeadZonePct:  cfg.Reports.TrendDeadZonePct,
		SpikeIncreasePct:  cfg.Reports.SpikeIncreasePct,
		SpikeDecreasePct:  cfg.Reports.SpikeDecreasePct,
		MaterialityAmount: decimal.NewFromFloat(cfg.Reports.MaterialityAmount),
		AnomalousMonthPct: cfg.Reports.AnomalousMonthPct,
	}
	insightService := report.NewInsightService(expenseRepo, catalog, thresholds)

	// Email pipeline
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailSender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	emailService := email.NewService(emailQueueRepo)
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)

	// Expense use cases
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, reportCache, catalog)
	getExpenseUseCase := expense.NewGetExpenseUseCase(expenseRepo, catalog)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, reportCache, catalog)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, reportCache)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo, catalog)
	listCategoriesUseCase := expense.NewListCategoriesUseCase(catalog)

	// Report use cases
	summaryUseCase := report.NewGetPeriodSummaryUseCase(expenseRepo, catalog, insightService, bounds)
	proportionUseCase := report.NewGetCategoryProportionUseCase(expenseRepo, catalog, bounds)
	annualUseCase := report.NewGetAnnualMatrixUseCase(expenseRepo, catalog, bounds)
	overviewUseCase := report.NewGetOverviewUseCase(expenseRepo, catalog, insightService)

	// Controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
	)

	expenseController := controller.NewExpenseController(
		createExpenseUseCase,
		getExpenseUseCase,
		updateExpenseUseCase,
		deleteExpenseUseCase,
		listExpensesUseCase,
		listCategoriesUseCase,
	)

	reportController := controller.NewReportController(
		summaryUseCase,
		proportionUseCase,
		annualUseCase,
		overviewUseCase,
		userRepo,
		emailService,
		reportCache,
	)

	// Middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(healthController, authController, expenseController, reportController, loginRateLimiter, authMiddleware)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: emailWorker,
		Redis:       redisClient,
	}, nil
}
