package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/mymmrac/telego"
	"golang.org/x/sync/errgroup"

	agentpkg "flipscan/internal/agent"
	"flipscan/internal/config"
	"flipscan/internal/domain/service/analyzer"
	"flipscan/internal/domain/service/margin"
	"flipscan/internal/domain/service/reduce"
	"flipscan/internal/infrastructure/llm"
	"flipscan/internal/infrastructure/notifier"
	"flipscan/internal/infrastructure/payments"
	"flipscan/internal/infrastructure/persistence"
	"flipscan/internal/infrastructure/scraper"
	"flipscan/internal/infrastructure/store"
	"flipscan/internal/server"
	"flipscan/internal/transport/bot"
	"flipscan/internal/transport/bot/handler"
	"flipscan/internal/worker"
	"flipscan/pkg/application/connectors"
	"flipscan/pkg/application/modules"
	"flipscan/pkg/contextx"
	"flipscan/pkg/logx"
	"flipscan/pkg/middlewarex"
)

const httpShutdownTimeout = 10 * time.Second

func Run(ctx context.Context, log *slog.Logger) error {
	ctx = contextx.WithLogger(ctx, log)

	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	// 2. Redis (store + task queue)
	rd := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}

	// 3. Entitlement/counter store
	userStore, closeStore, err := buildStore(ctx, cfg, rd)
	if err != nil {
		return fmt.Errorf("buildStore: %w", err)
	}

	if closeStore != nil {
		defer closeStore()
	}

	// 4. Core services
	reducer := reduce.NewReducer().WithBudget(cfg.Analyzer.ReduceBudget)
	calc := margin.NewCalculator().WithFulfillmentFee(cfg.Analyzer.FulfillmentFee)
	fetcher := scraper.NewClient(cfg.Scraper)

	analyzerSvc := buildAnalyzer(cfg, fetcher, reducer, calc)

	// 5. Telegram bot + notifier
	tgBot, err := telego.NewBot(cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("telego.NewBot: %w", err)
	}

	reportSender := notifier.NewTelegramNotifier(tgBot)

	// 6. Task queue client
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	})
	defer asynqClient.Close()

	enqueuer := worker.NewEnqueuer(asynqClient)
	checkout := payments.NewClient(cfg.Payments)

	commandHandler := handler.New(enqueuer, userStore, checkout, cfg.Bot.FreeScanLimit)

	tgTransport, err := bot.New(ctx, cfg.Bot, tgBot, commandHandler)
	if err != nil {
		return fmt.Errorf("bot.New: %w", err)
	}

	// 7. HTTP server
	httpServer := buildHTTPServer(cfg, analyzerSvc, userStore)

	// 8. Run everything under one errgroup.
	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricsListenAddress,
	}.Run(ctx, g)

	modules.HTTPServer{
		ShutdownTimeout: httpShutdownTimeout,
	}.Run(ctx, g, httpServer)

	analyzeHandler := worker.NewAnalyzeHandler(analyzerSvc, reportSender).
		WithTaskTimeout(cfg.Worker.TaskTimeout)

	modules.AsynqServer{
		RedisAddress:  cfg.Redis.Address,
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DatabaseNumber,
		Concurrency:   cfg.Worker.Concurrency,
	}.Run(ctx, g,
		modules.AsynqQueues{worker.QueueAnalyze: 1},
		modules.AsynqHandler{
			Pattern: worker.TaskTypeAnalyzeListing,
			Handle:  analyzeHandler.Handle,
		},
	)

	g.Go(func() error {
		log.Info("telegram bot started")

		if err := tgTransport.Run(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("bot.Run: %w", err)
		}

		return nil
	})

	return g.Wait()
}

func buildStore(ctx context.Context, cfg config.Config, rd *connectors.Redis) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case "redis":
		client := rd.Client(ctx)
		return store.NewRedis(client), func() { rd.Close(ctx) }, nil
	case "postgres":
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}

		db := pg.Client(ctx)
		if err := db.PingContext(ctx); err != nil {
			return nil, nil, fmt.Errorf("db.Ping: %w", err)
		}

		return persistence.NewUserStatsRepository(db), func() { pg.Close(ctx) }, nil
	case "memory":
		return store.NewMemory(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
}

func buildAnalyzer(
	cfg config.Config,
	fetcher analyzer.Fetcher,
	reducer *reduce.Reducer,
	calc *margin.Calculator,
) *analyzer.Analyzer {
	analyzerSvc := analyzer.New(fetcher, reducer, calc).
		WithCacheTTL(cfg.Analyzer.CacheTTL)

	loop := agentpkg.NewLoop(
		llm.NewClient(cfg.LLM),
		agentpkg.NewRegistry(analyzerSvc.Tools()...),
		analyzer.SystemPrompt,
	).WithMaxSteps(cfg.LLM.MaxSteps)

	return analyzerSvc.WithAgent(loop)
}

func buildHTTPServer(cfg config.Config, analyzerSvc *analyzer.Analyzer, userStore store.Store) *http.Server {
	router := chi.NewRouter()

	router.Use(middlewarex.TraceID)
	router.Use(middlewarex.Logger)
	router.Use(middlewarex.Recovery)
	router.Use(middlewarex.RequestLogging(logx.NewSensitiveDataMasker(), cfg.HTTP.LogFieldMaxLen))
	router.Use(middlewarex.ResponseLogging(logx.NewSensitiveDataMasker(), cfg.HTTP.LogFieldMaxLen))

	srv := server.NewServer(
		server.NewAnalyzeServer(analyzerSvc),
		server.NewMarginServer(cfg.Analyzer.FulfillmentFee),
		server.NewWebhookServer(
			payments.NewVerifier(cfg.Payments.WebhookSecret),
			userStore,
			cfg.Payments.SocialWebhookSecret,
		),
	)

	srv.RegisterRoutes(router)

	return &http.Server{ //nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
