package main

import (
	"context"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/delivery/http/controllers"
	"esperanza-kiosk/internal/app/delivery/http/middlewares"
	"esperanza-kiosk/internal/app/delivery/http/routers"
	"esperanza-kiosk/internal/app/drivers/database"
	"esperanza-kiosk/internal/app/drivers/logger"
	"esperanza-kiosk/internal/app/services/backend"
	"esperanza-kiosk/internal/app/services/core/auth"
	"esperanza-kiosk/internal/app/services/core/queue"
	"esperanza-kiosk/internal/app/services/core/records"
	"esperanza-kiosk/internal/app/services/core/summary"
	"esperanza-kiosk/internal/app/services/core/triage"
	"esperanza-kiosk/internal/app/services/core/wizard"
	"esperanza-kiosk/internal/app/services/shared/kiosksession"
	"esperanza-kiosk/internal/app/services/shared/locker"
	"esperanza-kiosk/internal/app/services/shared/ratelimiter"
	"esperanza-kiosk/internal/app/services/shared/redis"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	accessLog := logger.NewLogrusLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		accessLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	redisClient := database.NewRedisClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		Logger:         log,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	bootstrapingTheApp(bootstrap, accessLog)

	server := &http.Server{
		Addr:              ":" + internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			accessLog.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		accessLog.Errorf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		accessLog.Errorf("Failed to release resources: %v", err)
	}

	accessLog.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, accessLog *logrus.Logger) {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	sessionStore := kiosksession.NewKioskSessionStore(bootstrap.Redis, log, internalConfig)
	lockService := locker.NewLockService(redisRepository, log)
	loginLimiter := ratelimiter.NewResourceLimiter(redisRepository, log)

	// Clinic backend and sensor bridge
	backendClient := backend.NewBackendClient(internalConfig, log)
	sensorClient := backend.NewSensorClient(internalConfig, log)

	// Triage
	priorityCodeGenerator := triage.NewPriorityCodeGenerator(redisRepository, log, internalConfig)

	// Usecases
	authUsecase := auth.NewAuthUsecase(sessionStore, backendClient, priorityCodeGenerator, loginLimiter, internalConfig, log)
	wizardUsecase := wizard.NewWizardUsecase(sessionStore, backendClient, sensorClient, priorityCodeGenerator, internalConfig, log)
	summaryUsecase := summary.NewSummaryUsecase(sessionStore, backendClient, redisRepository, priorityCodeGenerator, internalConfig, log)
	queueUsecase := queue.NewQueueUsecase(backendClient, redisRepository, internalConfig, log)
	recordsUsecase := records.NewRecordsUsecase(sessionStore, backendClient, queueUsecase, internalConfig, log)

	// Queue board poller
	pollInterval := time.Duration(internalConfig.QueueBoard.PollIntervalInSeconds) * time.Second
	pollTimeout := time.Duration(internalConfig.Backend.RequestTimeoutInSecs) * time.Second
	poller := queue.NewPoller(queueUsecase, lockService, log, pollInterval, pollTimeout)
	poller.Start(context.Background())
	bootstrap.WorkerStop = poller.Stop

	// Middlewares
	sensorLimiter := middlewares.NewRateLimiter(internalConfig.Sensor.RatePerMinute, internalConfig.Sensor.Burst, log)
	middlewares := middlewares.NewMiddlewares(log, accessLog, authUsecase, internalConfig)

	// Controllers
	healthController := controllers.NewHealthController(log, bootstrap.Redis, internalConfig)
	authController := controllers.NewAuthController(log, authUsecase, internalConfig)
	wizardController := controllers.NewWizardController(log, wizardUsecase, internalConfig)
	summaryController := controllers.NewSummaryController(log, summaryUsecase, internalConfig)
	queueController := controllers.NewQueueController(log, queueUsecase, internalConfig)
	recordsController := controllers.NewRecordsController(log, recordsUsecase, internalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		sensorLimiter,
		healthController,
		authController,
		wizardController,
		summaryController,
		queueController,
		recordsController,
	)
}
