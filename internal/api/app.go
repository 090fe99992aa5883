package api

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"paymux/config"
	"paymux/internal/api/handlers"
	"paymux/internal/domain/payment"
	"paymux/internal/external/kafka"
	"paymux/internal/external/odoo"
	"paymux/internal/external/opensearch"
	"paymux/internal/external/webpay"
	payment_repo "paymux/internal/repo/payment"
	"paymux/internal/repo/payment_eventsink"
	"paymux/internal/tenant"
	"paymux/pkg/health"
	"paymux/pkg/logger"
	"paymux/pkg/postgres"
)

//go:embed migrations/*.sql
var MIGRATION_FS embed.FS

func Run(cfg config.Config) {
	l := logger.New(cfg.LogLevel)

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	registry, err := tenant.Load(tenantSource(cfg))
	if err != nil {
		l.Fatal(fmt.Errorf("api - Run - tenant.Load: %w", err))
	}
	l.Info("Tenant registry loaded: source=%s active=%d", registry.Describe(), len(registry.Active()))

	engine := NewGinEngine(l)
	engine.Use(CORSMiddleware(registry))

	pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("api - Run - postgres.NewPgPool: %w", err))
	}
	defer pool.Close()

	paymentRepo := payment_repo.NewPgPaymentRepo(pool)
	eventSink := payment_eventsink.NewPgPaymentEventRepo(pool.Pool, pool.Builder)

	webpayClient := webpay.NewClient(webpay.Config{
		BaseURL: cfg.WebpayBaseURL,
		Timeout: cfg.HTTPWebpayClientTimeout,
	})
	odooClient := odoo.NewClient(odoo.Config{
		Timeout:       cfg.HTTPOdooClientTimeout,
		InternalToken: cfg.InternalToken,
	})

	// Webpay sends the buyer back here after the card form
	returnURL := strings.TrimRight(cfg.PublicBaseURL, "/") + "/webpay/commit"

	// Services
	paymentService := payment.NewPaymentService(
		registry,
		paymentRepo,
		webpay.NewGateway(webpayClient),
		odoo.NewGateway(odooClient),
		eventSink,
		returnURL,
		l,
	)

	if len(cfg.OpensearchUrls) > 0 {
		indexer, err := opensearch.NewIndexer(ctx, cfg.OpensearchUrls, cfg.OpensearchIndexEvents)
		if err != nil {
			l.Fatal(fmt.Errorf("api - Run - opensearch.NewIndexer: %w", err))
		}
		paymentService = paymentService.WithIndexer(indexer)
	}

	// Route ERP sync through Kafka when configured; the default runs it
	// inline after commit.
	if cfg.SyncMode == "kafka" {
		l.Info("Sync mode: kafka - committed payments go through the broker")
		publisher := kafka.NewPublisher(l, cfg.KafkaBrokers, cfg.KafkaPaymentsTopic)
		defer publisher.Close()
		paymentService = paymentService.WithDispatcher(payment.NewKafkaDispatcher(publisher))
	}

	// Health checkers. A registry without enabled tenants cannot route
	// anything, so readiness reports it as down.
	checkers := []health.Checker{
		health.NewPostgresChecker(pool.Pool),
		health.NamedCheck("tenant_registry", func(context.Context) health.Result {
			if len(registry.Active()) == 0 {
				return health.Result{Status: health.StatusDown, Message: "no enabled tenants"}
			}
			return health.Result{Status: health.StatusUp}
		}),
	}
	if len(cfg.KafkaBrokers) > 0 {
		checkers = append(checkers, health.NewKafkaChecker(cfg.KafkaBrokers))
	}
	healthRegistry := health.NewRegistry(checkers...)

	// Handlers
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	tenantHandler := handlers.NewTenantHandler(registry)
	odooHandler := handlers.NewOdooHandler(registry, odooClient, paymentService)

	// Router
	router := NewRouter(&paymentHandler, &tenantHandler, &odooHandler, registry, healthRegistry, cfg)
	router.SetUp(engine)

	// Apply migrations
	err = ApplyMigrations(cfg.PgURL, MIGRATION_FS)
	if err != nil {
		l.Fatal(fmt.Errorf("api - Run - ApplyMigrations: %w", err))
	}

	// Start the Kafka consumer if in kafka mode
	if cfg.SyncMode == "kafka" {
		StartWorkers(ctx, l, cfg, paymentService)
	}

	// Start HTTP server in a goroutine
	go func() {
		l.Info("Starting HTTP server: port=%d", cfg.Port)
		if err := engine.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			l.Error("HTTP server error: error=%v", err)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	l.Info("Shutting down gracefully...")
}

// tenantSource picks the registry backing: a YAML file when TENANTS_FILE is
// set, else the TENANT_CONFIGS environment document.
func tenantSource(cfg config.Config) tenant.Source {
	if cfg.TenantsFile != "" {
		return tenant.FileSource(cfg.TenantsFile)
	}
	return tenant.EnvSource(cfg.TenantConfigs)
}
