package routers

import (
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/delivery/http/controllers"
	"esperanza-kiosk/internal/app/delivery/http/middlewares"
	"esperanza-kiosk/internal/app/services/shared/metrics"
	"esperanza-kiosk/internal/pkg/constvars"
	"fmt"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	sensorLimiter *middlewares.RateLimiter,
	healthController *controllers.HealthController,
	authController *controllers.AuthController,
	wizardController *controllers.WizardController,
	summaryController *controllers.SummaryController,
	queueController *controllers.QueueController,
	recordsController *controllers.RecordsController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{internalConfig.App.FrontendDomain},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID, "Retry-After", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.RequestLogger)
	router.Use(middlewares.Metrics)
	router.Use(middlewares.GlobalRateLimiter())
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	router.Get("/healthz", healthController.Healthz)
	router.Method("GET", "/metrics", metrics.Handler())

	endpointPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.EndpointPrefix, "/"))
	versionPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.Version, "/"))

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, middlewares, authController)
			})

			r.Route("/wizard", func(r chi.Router) {
				attachWizardRoutes(r, middlewares, sensorLimiter, wizardController, summaryController)
			})

			r.Route("/queue", func(r chi.Router) {
				attachQueueRoutes(r, middlewares, queueController)
			})

			r.Route("/records", func(r chi.Router) {
				attachRecordsRoutes(r, middlewares, recordsController)
			})

			r.Route("/staff", func(r chi.Router) {
				attachStaffRoutes(r, middlewares, recordsController)
			})
		})
	})
}
