package routers

import (
	"esperanza-kiosk/internal/app/delivery/http/controllers"
	"esperanza-kiosk/internal/app/delivery/http/middlewares"
	"esperanza-kiosk/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachQueueRoutes(router chi.Router, middlewares *middlewares.Middlewares, queueController *controllers.QueueController) {
	router.Get("/", queueController.GetBoard)
	router.With(
		middlewares.RequireSession,
		middlewares.RequireRole(constvars.KioskRoleStaff),
	).Post("/{queue_id}/complete", queueController.MarkComplete)
}
