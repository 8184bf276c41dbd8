// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/realtytrack/backend/config"
	"github.com/realtytrack/backend/internal/application/adapter"
	"github.com/realtytrack/backend/internal/domain/entity"
	"github.com/realtytrack/backend/internal/infra/dependency"
	"github.com/realtytrack/backend/internal/integration/persistence"
	"github.com/realtytrack/backend/internal/integration/persistence/model"
	"github.com/realtytrack/backend/test/integration/mock"
)

const (
	testStorageKey = "realty_track_transactions"
	testModelName  = "gemini-test"
	testAPIKey     = "test-api-key"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server         *httptest.Server
	injector       *dependency.Injector
	response       *httpResponse
	requestHeaders map[string]string

	// Collaborators
	cfg      *config.Config
	clock    *mock.Time
	redis    *mock.Redis
	db       *mock.Db
	gemini   *mock.GeminiApiMock
	backend  string
	aiAPIKey string
}

type httpResponse struct {
	status  int
	headers map[string]string
	body    []byte
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Storage.Key = testStorageKey
		cfg.Categories.File = ""
		cfg.AI.RateLimit = 0

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			cfg:            cfg,
			clock:          mock.NewTime(),
			redis:          mock.NewRedis(),
			db:             mock.NewDb(map[string]any{"kv_entries": &model.KVEntryModel{}}),
			gemini:         mock.NewGeminiApiServer(),
			backend:        config.StorageRedis,
			aiAPIKey:       testAPIKey,
		}
		tc.gemini.Start()

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil {
			tc.close()
		}
		return ctx, nil
	})

	registerSetupSteps(ctx)
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerCollaboratorSteps(ctx)
}

func (tc *TestContext) store() adapter.TransactionStore {
	if tc.backend == config.StorageSQLite {
		return persistence.NewGormTransactionStore(tc.db.DbConn, testStorageKey)
	}
	return persistence.NewRedisTransactionStore(tc.redis.Client, testStorageKey)
}

func (tc *TestContext) storageHealth() func() bool {
	if tc.backend == config.StorageSQLite {
		return tc.db.HealthCheck
	}
	return func() bool {
		return tc.redis.Client.Ping(context.Background()).Err() == nil
	}
}

// start wires the application against the mocks, as main does against the
// real services.
func (tc *TestContext) start() error {
	registry, err := config.LoadCategories(tc.cfg.Categories)
	if err != nil {
		return err
	}

	llm := dependency.NewLanguageModel(config.AIConfig{
		Provider:           config.AIProviderGenAI,
		APIKey:             tc.aiAPIKey,
		Model:              testModelName,
		BaseURL:            tc.gemini.GetUrl(),
		Timeout:            5 * time.Second,
		BreakerEnabled:     true,
		BreakerMaxFailures: 3,
		BreakerOpenTimeout: time.Minute,
	})

	tc.injector = dependency.Wire(context.Background(), tc.cfg, dependency.Components{
		Store:         tc.store(),
		StorageHealth: tc.storageHealth(),
		Model:         llm,
		Clock:         tc.clock,
		Registry:      registry,
	})
	tc.server = httptest.NewServer(tc.injector.Router.Setup(tc.cfg.Server.Environment))
	return nil
}

func (tc *TestContext) stop() {
	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}
}

func (tc *TestContext) close() {
	tc.stop()
	tc.gemini.Close()
	tc.redis.Close()
	tc.db.Close()
}

func (tc *TestContext) requireStopped(step string) error {
	if tc.server != nil {
		return fmt.Errorf("%s must run before the API server starts", step)
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	d, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return d, nil
}
