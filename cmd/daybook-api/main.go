package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/prakasam-dev/daybook-api/api/swagger"
	"github.com/prakasam-dev/daybook-api/internal/handler"
	"github.com/prakasam-dev/daybook-api/internal/repository"
	"github.com/prakasam-dev/daybook-api/internal/service"
	"github.com/prakasam-dev/daybook-api/pkg/cache"
	"github.com/prakasam-dev/daybook-api/pkg/config"
	"github.com/prakasam-dev/daybook-api/pkg/database"
	"github.com/prakasam-dev/daybook-api/pkg/jobs"
	"github.com/prakasam-dev/daybook-api/pkg/logger"
	corsmiddleware "github.com/prakasam-dev/daybook-api/pkg/middleware/cors"
	reqidmiddleware "github.com/prakasam-dev/daybook-api/pkg/middleware/requestid"
	"github.com/prakasam-dev/daybook-api/pkg/storage"
)

// @title Daybook API
// @version 1.0.0
// @description Personal daily dashboard: events, attendance, goals, reminders and more
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}
	defer redisClient.Close()

	exportStore, err := storage.NewLocalStorage(cfg.Sheets.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
	}
	signer, err := storage.NewSignedURLSigner(cfg.Sheets.SignedURLSecret, cfg.Sheets.SignedURLTTL)
	if err != nil {
		logr.Sugar().Fatalw("failed to build url signer", "error", err)
	}

	validate := validator.New()

	eventRepo := repository.NewEventRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	stateStore := repository.NewStateStore(redisClient, "daybook")

	metricsSvc := service.NewMetricsService()
	stateStore.OnRead(metricsSvc.ObserveStateRead)
	authSvc := service.NewAuthService(cfg.Auth, validate, logr)
	eventSvc := service.NewEventService(eventRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(stateStore, validate, logr)
	csrSvc := service.NewCSRService(stateStore, validate, logr)
	stepsSvc := service.NewStepsService(stateStore, validate, logr)
	goalSvc := service.NewGoalService(stateStore, validate, logr)
	reminderSvc := service.NewReminderService(stateStore, validate, logr)
	noteSvc := service.NewNoteService(noteRepo, validate, logr)
	sheetSvc := service.NewSheetService(exportStore, signer, eventRepo, logr)

	var slackSvc *service.SlackService
	slackQueue := jobs.NewQueue("slack", func(ctx context.Context, job jobs.Job) error {
		return slackSvc.Deliver(ctx, job)
	}, jobs.QueueConfig{Workers: 1, Logger: logr})
	slackSvc = service.NewSlackService(cfg.Slack, slackQueue, eventRepo, logr)
	slackSvc.AttachMetrics(metricsSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slackQueue.Start(ctx)
	defer slackQueue.Stop()

	poller := service.NewReminderPoller(reminderSvc, slackSvc, metricsSvc, logr)
	if cfg.Reminders.Enabled {
		if err := poller.Start(cfg.Reminders.PollInterval); err != nil {
			logr.Sugar().Fatalw("failed to start reminder poller", "error", err)
		}
		defer poller.Stop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		status := gin.H{"status": "ready"}
		code := http.StatusOK
		if err := db.PingContext(c.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Event:      handler.NewEventHandler(eventSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc),
		CSR:        handler.NewCSRHandler(csrSvc),
		Steps:      handler.NewStepsHandler(stepsSvc),
		Goal:       handler.NewGoalHandler(goalSvc),
		Reminder:   handler.NewReminderHandler(reminderSvc),
		Note:       handler.NewNoteHandler(noteSvc),
		Sheet:      handler.NewSheetHandler(sheetSvc, cfg.Sheets.MaxUploadBytes),
		Slack:      handler.NewSlackHandler(slackSvc),
		Backup:     handler.NewBackupHandler(service.NewBackupService(stateStore, logr)),
	}
	handler.Register(r, cfg.APIPrefix, handlers, authSvc, metricsSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("server shutdown incomplete", "error", err)
	}
}
