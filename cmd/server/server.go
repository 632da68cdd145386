package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/janhq/camus/internal/config"
	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/domain/session"
	"github.com/janhq/camus/internal/domain/share"
	"github.com/janhq/camus/internal/domain/title"
	"github.com/janhq/camus/internal/domain/toolresult"
	"github.com/janhq/camus/internal/infrastructure/auth"
	"github.com/janhq/camus/internal/infrastructure/cache"
	"github.com/janhq/camus/internal/infrastructure/crontab"
	"github.com/janhq/camus/internal/infrastructure/database"
	"github.com/janhq/camus/internal/infrastructure/llmprovider"
	"github.com/janhq/camus/internal/infrastructure/logger"
	"github.com/janhq/camus/internal/infrastructure/queue"
	artifactrepo "github.com/janhq/camus/internal/infrastructure/repository/artifact"
	conversationrepo "github.com/janhq/camus/internal/infrastructure/repository/conversation"
	sessionrepo "github.com/janhq/camus/internal/infrastructure/repository/session"
	toolresultrepo "github.com/janhq/camus/internal/infrastructure/repository/toolresult"
	"github.com/janhq/camus/internal/interfaces/httpserver"
	"github.com/janhq/camus/internal/interfaces/httpserver/handlers"
	"github.com/janhq/camus/internal/worker"
	"github.com/janhq/camus/pkg/observability"
	obsworker "github.com/janhq/camus/pkg/observability/worker"
	"github.com/janhq/camus/pkg/telemetry"
)

// @title Camus Conversation API
// @version 1.0
// @description Persists conversations, messages, artifacts and tool results and rebuilds them for the chat client.
// @contact.name Jan Server Team
// @contact.url https://github.com/janhq/jan-server
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HTTPServer
	backfill   *crontab.Crontab
	pool       *worker.Pool
	queue      *queue.MemoryQueue
	log        zerolog.Logger
}

func NewApplication(
	httpServer *httpserver.HTTPServer,
	backfill *crontab.Crontab,
	pool *worker.Pool,
	q *queue.MemoryQueue,
	log zerolog.Logger,
) *Application {
	return &Application{
		httpServer: httpServer,
		backfill:   backfill,
		pool:       pool,
		queue:      q,
		log:        log,
	}
}

// Start runs the HTTP server and the backfill schedule until ctx ends, then stops
// the background workers.
func (a *Application) Start(ctx context.Context) error {
	// Workers are stopped explicitly once the servers return.
	if err := a.pool.Start(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	defer func() {
		a.queue.Close()
		a.pool.Stop()
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.httpServer.Run(gctx) })
	g.Go(func() error { return a.backfill.Run(gctx) })
	return g.Wait()
}

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetryProvider, err := newObservability(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := newGormDB(ctx, newDatabaseConfig(cfg), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	redisClient, err := newRedisClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	conversationRepository := conversationrepo.NewPostgresRepository(db)
	messageRepository := conversationrepo.NewMessageRepository(db)
	artifactRepository := artifactrepo.NewPostgresRepository(db)
	toolResultRepository := toolresultrepo.NewPostgresRepository(db)
	sessionRepository := sessionrepo.NewPostgresRepository(db)

	sessionService, err := newSessionService(sessionRepository, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize session service")
	}

	viewCache := newViewCache(cfg, redisClient)
	llmClient := newLLMClient(cfg)
	titleCompleter := newTitleCompleter(cfg, llmClient)
	metadataCompleter := newMetadataCompleter(cfg, llmClient)

	// Background jobs are queued in-process and drained by the worker pool.
	taskQueue := newTaskQueue(cfg)
	scheduler := worker.NewScheduler(taskQueue, log)

	artifactService := newArtifactService(
		artifactRepository,
		newArtifactInvalidator(viewCache),
		newMetadataScheduler(scheduler, metadataCompleter),
		log,
	)
	toolResultService := toolresult.NewService(toolResultRepository, newToolResultInvalidator(viewCache), log)
	conversationService := newConversationService(
		conversationRepository,
		messageRepository,
		artifactRepository,
		artifactService,
		toolResultService,
		sessionService,
		viewCache,
		newWriteLocker(cfg, redisClient, log),
		scheduler,
		telemetryProvider.Sanitizer,
		log,
	)
	shareService := share.NewService(conversationRepository, artifactRepository, conversationService, log)

	titleGenerator := title.NewGenerator(conversationRepository, messageRepository, titleCompleter, conversationService, log)
	enricher := newMetadataEnricher(artifactRepository, metadataCompleter, newArtifactInvalidator(viewCache), log)

	jobs, err := newJobInstrumenter(telemetryProvider, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize job metrics")
	}
	workerPool := newWorkerPool(cfg, taskQueue, titleGenerator, enricher, jobs, log)
	backfill := newBackfillCrontab(cfg, titleGenerator, log)

	handlerProvider := handlers.NewProvider(conversationService, artifactService, toolResultService, shareService, log)
	httpServer := httpserver.New(cfg, log, handlerProvider, authValidator, newReadinessCheck(db, redisClient))
	app := NewApplication(httpServer, backfill, workerPool, taskQueue, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func newObservability(ctx context.Context, cfg *config.Config) (*observability.Provider, error) {
	otelCfg := observability.DefaultConfig(cfg.ServiceName)
	otelCfg.ServiceVersion = cfg.ServiceVersion
	otelCfg.Environment = cfg.Environment
	otelCfg.TracingEnabled = cfg.EnableTracing
	otelCfg.MetricsEnabled = cfg.EnableOTELMetric
	otelCfg.OTLPEndpoint = cfg.OTLPEndpoint
	otelCfg.SamplingRate = cfg.OTELSamplingRate
	otelCfg.PIILevel = cfg.LogContentPIILevel
	return observability.Init(ctx, otelCfg)
}

func newSanitizer(provider *observability.Provider) *telemetry.Sanitizer {
	return provider.Sanitizer
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, dbCfg database.Config, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(dbCfg)
	if err != nil {
		return nil, err
	}
	if !cfg.AutoMigrate {
		return db, nil
	}
	if err := database.Migrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

// newRedisClient returns nil when no Redis endpoint is configured.
func newRedisClient(ctx context.Context, cfg *config.Config) (redis.UniversalClient, error) {
	if !cfg.CacheEnabled() {
		return nil, nil
	}
	return cache.NewRedisClient(ctx, cfg.RedisURL)
}

func newViewCache(cfg *config.Config, client redis.UniversalClient) conversation.ViewCache {
	if client == nil {
		return nil
	}
	return cache.NewRedisViewCache(client, cfg.ConversationCacheTTL)
}

func newArtifactInvalidator(viewCache conversation.ViewCache) artifact.ViewInvalidator {
	if viewCache == nil {
		return cache.NoopViewCache{}
	}
	return viewCache
}

func newToolResultInvalidator(viewCache conversation.ViewCache) toolresult.ViewInvalidator {
	if viewCache == nil {
		return cache.NoopViewCache{}
	}
	return viewCache
}

func newWriteLocker(cfg *config.Config, client redis.UniversalClient, log zerolog.Logger) conversation.WriteLocker {
	if !cfg.ConversationWriteLock || client == nil {
		return nil
	}
	return cache.NewRedisWriteLocker(client, cfg.ConversationWriteLockTTL, log)
}

// newLLMClient returns nil when no model endpoint is configured.
func newLLMClient(cfg *config.Config) *llmprovider.Client {
	if cfg.LLMAPIURL == "" {
		return nil
	}
	return llmprovider.NewClient(llmprovider.Config{
		BaseURL: cfg.LLMAPIURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.TitleModel,
		Timeout: cfg.LLMTimeout,
	})
}

func newTitleCompleter(cfg *config.Config, client *llmprovider.Client) title.Completer {
	if client == nil || !cfg.AITitlesEnabled {
		return nil
	}
	return client
}

func newMetadataCompleter(cfg *config.Config, client *llmprovider.Client) artifact.Completer {
	if client == nil || !cfg.ArtifactMetadataEnabled {
		return nil
	}
	return client
}

func newTaskQueue(cfg *config.Config) *queue.MemoryQueue {
	return queue.NewMemoryQueue(cfg.WorkerQueueSize)
}

// newMetadataScheduler only schedules metadata passes when a model can serve them.
func newMetadataScheduler(scheduler *worker.Scheduler, completer artifact.Completer) artifact.MetadataScheduler {
	if completer == nil {
		return nil
	}
	return scheduler
}

func newArtifactService(
	repo *artifactrepo.PostgresRepository,
	invalidator artifact.ViewInvalidator,
	scheduler artifact.MetadataScheduler,
	log zerolog.Logger,
) *artifact.DefaultService {
	return artifact.NewService(repo, invalidator, scheduler, log)
}

func newSessionService(repo *sessionrepo.PostgresRepository, cfg *config.Config, log zerolog.Logger) (session.Service, error) {
	return session.NewService(repo, cfg.SessionCacheSize, log)
}

func newConversationService(
	conversations *conversationrepo.PostgresRepository,
	messages *conversationrepo.MessageRepository,
	artifacts *artifactrepo.PostgresRepository,
	linker *artifact.DefaultService,
	toolResults *toolresult.Service,
	sessions session.Service,
	viewCache conversation.ViewCache,
	locker conversation.WriteLocker,
	titles *worker.Scheduler,
	sanitizer *telemetry.Sanitizer,
	log zerolog.Logger,
) *conversation.Service {
	return conversation.NewService(conversation.Dependencies{
		Conversations: conversations,
		Messages:      messages,
		Artifacts:     artifacts,
		Linker:        linker,
		ToolResults:   toolResults,
		Sessions:      sessions,
		Cache:         viewCache,
		Locker:        locker,
		Titles:        titles,
		Sanitizer:     sanitizer,
	}, log)
}

// newMetadataEnricher returns nil when artifact metadata generation is off.
func newMetadataEnricher(
	repo *artifactrepo.PostgresRepository,
	completer artifact.Completer,
	invalidator artifact.ViewInvalidator,
	log zerolog.Logger,
) *artifact.MetadataEnricher {
	if completer == nil {
		return nil
	}
	return artifact.NewMetadataEnricher(repo, completer, invalidator, log)
}

func newJobInstrumenter(provider *observability.Provider, cfg *config.Config) (*obsworker.JobInstrumenter, error) {
	return obsworker.NewJobInstrumenter(provider.Meter, cfg.ServiceName)
}

func newWorkerPool(
	cfg *config.Config,
	q *queue.MemoryQueue,
	titles *title.Generator,
	enricher *artifact.MetadataEnricher,
	jobs *obsworker.JobInstrumenter,
	log zerolog.Logger,
) *worker.Pool {
	jobHandlers := worker.Handlers{
		queue.KindTitle: titles.GenerateForConversation,
	}
	if enricher != nil {
		jobHandlers[queue.KindArtifactMetadata] = enricher.Enrich
	}
	return worker.NewPool(q, jobHandlers, worker.Config{
		WorkerCount: cfg.WorkerCount,
		TaskTimeout: cfg.TaskTimeout,
		Jobs:        jobs,
	}, log)
}

func newBackfillCrontab(cfg *config.Config, titles *title.Generator, log zerolog.Logger) *crontab.Crontab {
	return crontab.NewCrontab(titles, crontab.Config{
		Enabled:         cfg.TitleBackfillEnabled,
		IntervalMinutes: cfg.TitleBackfillIntervalMinutes,
		BatchSize:       cfg.TitleBackfillBatch,
	}, log)
}

func newReadinessCheck(db *gorm.DB, client redis.UniversalClient) httpserver.ReadinessCheck {
	return func(ctx context.Context) error {
		if err := database.Ping(db); err != nil {
			return err
		}
		if client != nil {
			return client.Ping(ctx).Err()
		}
		return nil
	}
}
