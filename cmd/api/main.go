package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/idea-hub/docs"
	"github.com/johnquangdev/idea-hub/internal/adapter/handler"
	"github.com/johnquangdev/idea-hub/internal/adapter/repository"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/cache"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/idea-hub/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/realtime"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/search"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/storage"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	"github.com/johnquangdev/idea-hub/internal/usecase/export"
	ideaUsecase "github.com/johnquangdev/idea-hub/internal/usecase/idea"
	meetingUsecase "github.com/johnquangdev/idea-hub/internal/usecase/meeting"
	"github.com/johnquangdev/idea-hub/pkg/config"
	"github.com/johnquangdev/idea-hub/pkg/jwt"
	pkgvalidator "github.com/johnquangdev/idea-hub/pkg/validator"
)

// @title           Idea Hub API
// @version         1.0
// @description     Ideas with timed discussions, votes and decisions, plus meetings, folders and tasks

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("📦 Connecting to database...")
	db, err := database.NewPostgresDB(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("❌ Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.CloseDB(db) }()

	// Production deployments manage schema with cmd/migrate
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db, cfg.Database.MigrationsDir, logger); err != nil {
			logger.Fatal("❌ Failed to apply migrations", zap.Error(err))
		}
	} else {
		logger.Info("🔄 Skipping migrations; run cmd/migrate to apply them")
	}

	var (
		redisClient  *redis.Client
		backplane    realtime.Backplane
		serviceCache cache.Store
	)
	memoryCache := cache.NewMemoryStore()
	defer memoryCache.Close()
	serviceCache = memoryCache

	if cfg.Redis.Enabled {
		logger.Info("📦 Connecting to Redis...", zap.String("addr", cfg.GetRedisAddr()))
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("❌ Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		serviceCache = cache.NewRedisStore(redisClient, "idea-hub:")
		backplane = realtime.NewRedisBackplane(redisClient, cfg.Realtime.Channel)
	}

	userRepo := repository.NewUserRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	decisionRepo := repository.NewDecisionRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	agendaRepo := repository.NewAgendaRepository(db)
	minutesRepo := repository.NewMinutesRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// The hub asks the meeting service about subscriptions, and the meeting
	// service publishes through the hub.
	viewer := &meetingViewer{}
	hub := realtime.NewHub(logger, realtime.Options{
		WriteTimeout:   cfg.Realtime.WriteTimeout,
		PingInterval:   cfg.Realtime.PingInterval,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, backplane, handler.TopicAuthorizer(viewer, logger))

	ideaOpts := []ideaUsecase.Option{}
	var files export.Downloader
	if cfg.Storage.Enabled {
		logger.Info("🗄️  Connecting to object storage...", zap.String("endpoint", cfg.Storage.Endpoint))
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			logger.Fatal("❌ Failed to initialize object storage", zap.Error(err))
		}
		ideaOpts = append(ideaOpts, ideaUsecase.WithAttachments(minioClient, cfg.Storage.MaxUploadBytes))
		files = minioClient
	} else {
		logger.Warn("⚠️  Object storage disabled, comment attachments are rejected")
	}

	if cfg.SearchEnabled() {
		index, err := search.NewIdeaIndex(&cfg.Search, logger)
		if err != nil {
			logger.Fatal("❌ Failed to initialize search", zap.Error(err))
		}
		if err := index.EnsureIndex(ctx); err != nil {
			// search falls back to the database
			logger.Warn("⚠️  Search index unavailable", zap.Error(err))
		}
		ideaOpts = append(ideaOpts, ideaUsecase.WithSearchIndex(index))
	}

	tokens := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenExpiry)
	authService := auth.NewService(tokens, userRepo, memoryCache, logger)

	ideaService := ideaUsecase.NewIdeaService(ideaRepo, commentRepo, voteRepo, decisionRepo, hub, logger, ideaOpts...)
	exportService := export.NewExportService(ideaRepo, commentRepo, voteRepo, decisionRepo, files, logger)
	meetingService := meetingUsecase.NewMeetingService(
		meetingRepo, participantRepo, agendaRepo, minutesRepo, taskRepo, folderRepo, userRepo,
		hub, logger,
		meetingUsecase.WithDashboardCache(serviceCache, cfg.Dashboard.CacheTTL),
	)
	viewer.Service = meetingService

	sweeper := ideaUsecase.NewSweeper(ideaService, cfg.Discussion.SweepInterval, cfg.Discussion.SweepBatch, logger)
	sweeper.Start(ctx)

	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		if err := hub.Run(ctx); err != nil {
			logger.Error("❌ Realtime hub stopped", zap.Error(err))
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgvalidator.New()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Accept-Language"},
		ExposeHeaders:    []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
		AllowCredentials: true,
	}))

	router := handler.NewRouter(cfg, handler.Handlers{
		Idea:     handler.NewIdeaHandler(ideaService, exportService, logger),
		Meeting:  handler.NewMeetingHandler(meetingService, logger),
		Folder:   handler.NewFolderHandler(meetingService, logger),
		User:     handler.NewUserHandler(authService, logger),
		Meta:     handler.NewMetaHandler(logger),
		Realtime: handler.NewRealtimeHandler(hub, logger),
	}, httpmw.EchoAuth(authService))
	router.Setup(e)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("❌ Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
	}
	sweeper.Wait()
	<-hubDone

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// meetingViewer lets the hub be built before the meeting service it consults
type meetingViewer struct {
	Service meetingUsecase.Service
}

func (v *meetingViewer) CanView(ctx context.Context, p auth.Principal, meetingID uuid.UUID) (bool, error) {
	if v.Service == nil {
		return false, nil
	}
	return v.Service.CanView(ctx, p, meetingID)
}
