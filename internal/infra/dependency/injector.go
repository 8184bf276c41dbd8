// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/realtytrack/backend/config"
	"github.com/realtytrack/backend/internal/application/adapter"
	"github.com/realtytrack/backend/internal/application/ledger"
	"github.com/realtytrack/backend/internal/application/usecase/category"
	"github.com/realtytrack/backend/internal/application/usecase/dashboard"
	"github.com/realtytrack/backend/internal/application/usecase/insight"
	"github.com/realtytrack/backend/internal/application/usecase/transaction"
	"github.com/realtytrack/backend/internal/domain/entity"
	"github.com/realtytrack/backend/internal/infra/db"
	"github.com/realtytrack/backend/internal/infra/observability"
	"github.com/realtytrack/backend/internal/infra/redisdb"
	"github.com/realtytrack/backend/internal/infra/resilience"
	"github.com/realtytrack/backend/internal/infra/server/router"
	"github.com/realtytrack/backend/internal/integration/adapters"
	"github.com/realtytrack/backend/internal/integration/charts"
	"github.com/realtytrack/backend/internal/integration/entrypoint/controller"
	"github.com/realtytrack/backend/internal/integration/entrypoint/middleware"
	"github.com/realtytrack/backend/internal/integration/persistence"
	"github.com/realtytrack/backend/internal/integration/persistence/model"
)

// Components are the outer dependencies the application is assembled from.
type Components struct {
	Store         adapter.TransactionStore
	StorageHealth func() bool
	Model         adapter.LanguageModel
	Clock         adapter.Clock
	Registry      *entity.CategoryRegistry
}

// Injector holds all application dependencies.
type Injector struct {
	Config  *config.Config
	Ledger  *ledger.Ledger
	Metrics *observability.Metrics
	Router  *router.Router

	closers []func() error
}

// NewInjector opens storage, selects the language model and loads the
// category registry as configured, then wires the application.
// A storage connection failure is fatal; missing AI credentials are not.
func NewInjector(ctx context.Context, cfg *config.Config) (*Injector, error) {
	registry, err := config.LoadCategories(cfg.Categories)
	if err != nil {
		return nil, err
	}

	store, health, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	injector := Wire(ctx, cfg, Components{
		Store:         store,
		StorageHealth: health,
		Model:         NewLanguageModel(cfg.AI),
		Clock:         adapters.SystemClock{},
		Registry:      registry,
	})
	injector.closers = append(injector.closers, closer)

	return injector, nil
}

// Wire assembles use cases, controllers and the router from components.
func Wire(ctx context.Context, cfg *config.Config, c Components) *Injector {
	metrics := observability.NewMetrics()

	// Load the persisted ledger
	txLedger := ledger.Open(ctx, c.Store, metrics)
	metrics.RegisterLedgerSize(txLedger.Len)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(txLedger)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(txLedger, c.Registry, c.Clock)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(txLedger)
	exportTransactionsUseCase := transaction.NewExportTransactionsUseCase(txLedger, c.Clock)

	// Create dashboard use cases
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(txLedger)
	getCategoryBreakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(txLedger, c.Clock)
	getTrendsUseCase := dashboard.NewGetTrendsUseCase(txLedger, c.Clock)
	renderTrendChartUseCase := dashboard.NewRenderTrendChartUseCase(getTrendsUseCase, charts.NewTrendChartRenderer())
	getProjectStatusUseCase := dashboard.NewGetProjectStatusUseCase(txLedger, c.Registry)

	// Create insight use cases
	generateInsightsUseCase := insight.NewGenerateInsightsUseCase(txLedger, c.Model, c.Clock, metrics)
	suggestCategoryUseCase := insight.NewSuggestCategoryUseCase(c.Model, c.Registry, metrics)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(c.Registry)

	// Create controllers
	healthController := controller.NewHealthController(c.StorageHealth, c.Model.IsAvailable)
	categoryController := controller.NewCategoryController(listCategoriesUseCase)
	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		deleteTransactionUseCase,
		exportTransactionsUseCase,
	)
	dashboardController := controller.NewDashboardController(
		getSummaryUseCase,
		getCategoryBreakdownUseCase,
		getTrendsUseCase,
		renderTrendChartUseCase,
		getProjectStatusUseCase,
	)
	insightController := controller.NewInsightController(generateInsightsUseCase, suggestCategoryUseCase)

	// Create middleware
	insightRateLimiter := middleware.NewRateLimiter(cfg.AI.RateLimit, cfg.AI.RateLimitWindow)

	r := router.NewRouter(
		healthController,
		categoryController,
		transactionController,
		dashboardController,
		insightController,
		insightRateLimiter,
		metrics,
	)

	return &Injector{
		Config:  cfg,
		Ledger:  txLedger,
		Metrics: metrics,
		Router:  r,
	}
}

// Close releases storage connections.
func (i *Injector) Close() error {
	var errs []error
	for _, closer := range i.closers {
		if closer == nil {
			continue
		}
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openStore connects the configured storage backend.
func openStore(ctx context.Context, cfg *config.Config) (adapter.TransactionStore, func() bool, func() error, error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		client, err := redisdb.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		health := func() bool {
			return client.Ping(context.Background()).Err() == nil
		}
		return persistence.NewRedisTransactionStore(client, cfg.Storage.Key), health, closeRedis(client), nil

	case config.StorageSQLite, config.StoragePostgres:
		database, err := db.NewConnection(cfg.Storage.Backend, &cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(&model.KVEntryModel{}); err != nil {
			_ = database.Close()
			return nil, nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		slog.Info("Database migrations completed successfully", "dialect", database.Dialect())
		return persistence.NewGormTransactionStore(database.DB(), cfg.Storage.Key), database.HealthCheck, database.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}

func closeRedis(client *redis.Client) func() error {
	return func() error {
		slog.Info("Closing redis connection")
		return client.Close()
	}
}

// NewLanguageModel selects the configured Gemini client, guarded by a
// circuit breaker unless disabled.
func NewLanguageModel(cfg config.AIConfig) adapter.LanguageModel {
	var llm adapter.LanguageModel
	switch cfg.Provider {
	case config.AIProviderGenAI:
		llm = adapters.NewGenAIService(cfg.APIKey, cfg.Model, cfg.Timeout, adapters.WithGenAIBaseURL(cfg.BaseURL))
	default:
		if cfg.Provider != config.AIProviderGemini {
			slog.Warn("Unknown AI provider, falling back to gemini", "provider", cfg.Provider)
		}
		llm = adapters.NewGeminiService(cfg.APIKey, cfg.Model, cfg.Timeout)
	}

	if !llm.IsAvailable() {
		slog.Warn("AI API key not configured, insights will use fallback responses", "model", llm.Name())
	}

	if !cfg.BreakerEnabled {
		return llm
	}

	breaker := resilience.NewCircuitBreaker(llm.Name(), resilience.BreakerConfig{
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	})
	return resilience.WrapLanguageModel(llm, breaker)
}
