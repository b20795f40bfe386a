//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/expense-insights/backend/internal/application/adapter"
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
	"github.com/expense-insights/backend/internal/integration/persistence/model"
	"github.com/expense-insights/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var (
	serverInit     sync.Once
	portInit       sync.Once
	testServerPort int

	testDB           *mock.Db
	testTokenService adapter.TokenService
	testSender       *recordingSender
	testWorker       *email.Worker
)

// recordingSender captures outbound emails so scenarios can assert on
// delivery without touching the real provider.
type recordingSender struct {
	mu   sync.Mutex
	sent []adapter.SendEmailInput
}

func (r *recordingSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, input)
	return &adapter.SendEmailResult{ProviderID: fmt.Sprintf("test-%d", len(r.sent))}, nil
}

func (r *recordingSender) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

func (r *recordingSender) sentTo(address string) []adapter.SendEmailInput {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []adapter.SendEmailInput
	for _, input := range r.sent {
		if input.To == address {
			matched = append(matched, input)
		}
	}
	return matched
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb("expense_insights", map[string]any{
			"users":       &model.UserModel{},
			"expenses":    &model.ExpenseModel{},
			"email_queue": &model.EmailQueueModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in$`, test.iAmLoggedIn)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)

	// Expense setup steps
	ctx.Given(`^an expense "([^"]*)" of "([^"]*)" in category "([^"]*)" on "([^"]*)" exists$`, test.anExpenseExists)
	ctx.Given(`^another user has an expense "([^"]*)" of "([^"]*)" in category "([^"]*)" on "([^"]*)"$`, test.anotherUserHasAnExpense)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Email pipeline steps
	ctx.When(`^the pending email queue is processed$`, test.thePendingEmailQueueIsProcessed)
	ctx.Then(`^a summary email should have been sent to "([^"]*)"$`, test.aSummaryEmailShouldHaveBeenSentTo)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// Repositories
			userRepo := persistence.NewUserRepository(testDB.DbConn)
			expenseRepo := persistence.NewExpenseRepository(testDB.DbConn)
			emailQueueRepo := persistence.NewEmailQueueRepository(testDB.DbConn)

			// Adapters/services
			reportCache := cache.NewReportCache(mock.NewRedis(), 10*time.Minute)
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, 15*time.Minute, 7*24*time.Hour)
			testTokenService = tokenService

			catalog := entity.DefaultCatalog()
			bounds := report.PeriodBounds{MinYear: 2000, MaxYear: 2100}
			thresholds := report.InsightThresholds{
				TrendDeadZonePct:  5,
				SpikeIncreasePct:  30,
				SpikeDecreasePct:  20,
				MaterialityAmount: decimal.NewFromInt(100),
				AnomalousMonthPct: 30,
			}
			insightService := report.NewInsightService(expenseRepo, catalog, thresholds)

			// Email pipeline with a recording sender instead of Resend
			renderer, err := templates.NewRenderer()
			if err != nil {
				panic(fmt.Sprintf("failed to load email templates: %v", err))
			}
			testSender = &recordingSender{}
			emailService := email.NewService(emailQueueRepo)
			testWorker = email.NewWorker(emailQueueRepo, testSender, renderer, email.WorkerConfig{
				PollInterval: 50 * time.Millisecond,
				BatchSize:    10,
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
				return testDB != nil && testDB.DbConn != nil
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
			loginRateLimiter := middleware.NewRateLimiter()
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(healthController, authController, expenseController, reportController, loginRateLimiter, authMiddleware)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}
