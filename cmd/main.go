package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"gitlab.com/examproctor-2025.net/internal/adapter/catalog"
	"gitlab.com/examproctor-2025.net/internal/adapter/crypto"
	"gitlab.com/examproctor-2025.net/internal/adapter/memory"
	"gitlab.com/examproctor-2025.net/internal/adapter/postgres"
	"gitlab.com/examproctor-2025.net/internal/adapter/postgres/answerrepository"
	"gitlab.com/examproctor-2025.net/internal/adapter/postgres/sessionrepository"
	"gitlab.com/examproctor-2025.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/examproctor-2025.net/internal/adapter/postgres/violationrepository"
	"gitlab.com/examproctor-2025.net/internal/adapter/redis/notifyport"
	"gitlab.com/examproctor-2025.net/internal/adapter/runner"
	"gitlab.com/examproctor-2025.net/internal/config"
	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/core/services/admin"
	"gitlab.com/examproctor-2025.net/internal/core/services/exam"
	"gitlab.com/examproctor-2025.net/internal/core/services/judge"
	"gitlab.com/examproctor-2025.net/internal/core/services/schedule"
	"gitlab.com/examproctor-2025.net/internal/core/services/violation"
	logger2 "gitlab.com/examproctor-2025.net/internal/global/logger"
	http2 "gitlab.com/examproctor-2025.net/internal/http"
	"gitlab.com/examproctor-2025.net/internal/schedulerengine"
	"gitlab.com/examproctor-2025.net/internal/ws"
)

// stores bundles the four repositories of the selected driver
type stores struct {
	sessions    secondary.SessionRepository
	answers     secondary.AnswerRepository
	submissions secondary.SubmissionRepository
	violations  secondary.ViolationRepository
	close       func() error
}

func main() {
	InitReader()
	logger2.Info("Starting exam proctoring service")

	if err := run(); err != nil {
		logger2.Error("Service stopped with error", "error", err)
		_ = logger2.Logger.Sync()
		os.Exit(1)
	}
	logger2.Info("successfully shutdown server")
	_ = logger2.Logger.Sync()
}

func run() error {
	sysCfg := config.NewSystemConfig()
	if sysCfg.DebugMode {
		logger2.SetDebug(true)
	}
	var logger primary.Logger = logger2.Logger

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Shutting down server...")
		cancel()
	}()

	// SECONDARY PORTS
	store, err := setupStores(ctx, sysCfg.PostgresConfig, logger)
	if err != nil {
		return err
	}
	defer store.close()

	questions, err := catalog.Load(sysCfg.ExamConfig.QuestionsFile)
	if err != nil {
		return fmt.Errorf("failed to load question catalog: %w", err)
	}
	codeRunner, err := runner.NewRunner(sysCfg.RunnerConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to set up runner: %w", err)
	}

	//primary ports
	adminAuth, err := crypto.NewAdminAuthService(sysCfg.AuthConfig)
	if err != nil {
		return fmt.Errorf("failed to set up admin auth: %w", err)
	}

	hub := ws.NewHub(adminAuth, logger)
	defer hub.Close()

	var (
		notifier   secondary.Notifier = hub
		subscriber *notifyport.Subscriber
	)
	if sysCfg.RedisConfig.Enabled() {
		redisClient, err := notifyport.NewClient(ctx, sysCfg.RedisConfig)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		notifier, subscriber = setupFanout(redisClient, sysCfg.RedisConfig, hub, logger)
	}

	//services
	judgeSvc := judge.NewJudgeService(questions, codeRunner, logger)
	schedulerSvc := schedule.NewSchedulerService(store.sessions, logger, sysCfg.ExamConfig)
	violationSvc := violation.NewViolationService(store.sessions, store.violations, notifier, logger, sysCfg.ExamConfig)
	examSvc := exam.NewExamService(exam.Repositories{
		Sessions:    store.sessions,
		Answers:     store.answers,
		Submissions: store.submissions,
	}, questions, judgeSvc, schedulerSvc, violationSvc, notifier, logger, sysCfg.ExamConfig)
	adminSvc := admin.NewAdminService(store.sessions, store.answers, store.submissions, store.violations, logger)

	engine := schedulerengine.NewBackgroundEngine(sysCfg.RunnerConfig, codeRunner, schedulerSvc, logger)
	if err := engine.RestoreTimers(ctx); err != nil {
		return err
	}

	//server
	serviceProvider := http2.NewServiceProvider(examSvc, adminSvc, adminAuth)
	httpServer := http2.NewServer(sysCfg.HttpConfig.Port, "examProctor", sysCfg.HttpConfig.CorsOrigin, *serviceProvider, hub, logger)
	if err := httpServer.Init(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpServer.Run(gctx) })
	g.Go(func() error { return engine.Run(gctx) })
	if subscriber != nil {
		g.Go(func() error { return subscriber.Run(gctx) })
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// setupFanout routes every event through Redis; the subscriber delivers it to this
// instance's hub, so local clients are served exactly like remote ones
func setupFanout(client *redis.Client, cfg *config.RedisConfig, hub *ws.Hub, logger primary.Logger) (secondary.Notifier, *notifyport.Subscriber) {
	publisher := notifyport.NewPublisher(client, cfg.EventsChannel, logger)
	subscriber := notifyport.NewSubscriber(client, cfg.EventsChannel, hub, logger)
	return publisher, subscriber
}

func setupStores(ctx context.Context, cfg *config.PostgresConfig, logger primary.Logger) (*stores, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		mem := memory.NewStore()
		return &stores{
			sessions:    mem.Sessions(),
			answers:     mem.Answers(),
			submissions: mem.Submissions(),
			violations:  mem.Violations(),
			close:       func() error { return nil },
		}, nil
	case config.StoreDriverPostgres:
		db, err := setupDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &stores{
			sessions:    sessionrepository.New(db, logger, cfg.Schema),
			answers:     answerrepository.New(db, logger, cfg.Schema),
			submissions: submissionrepository.New(db, logger, cfg.Schema),
			violations:  violationrepository.New(db, logger, cfg.Schema),
			close:       db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Driver)
	}
}

// setupDatabase connects to PostgreSQL and applies the schema
func setupDatabase(ctx context.Context, cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db, cfg.Schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InitReader loads <env>.env when an environment name is passed, else .env if present
func InitReader() {
	if len(os.Args) >= 2 {
		environment := os.Args[1]
		if err := godotenv.Load(environment + ".env"); err != nil {
			log.Fatalf("Error loading %s.env file", environment)
		}
		return
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}
