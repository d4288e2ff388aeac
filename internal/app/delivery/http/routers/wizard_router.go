package routers

import (
	"esperanza-kiosk/internal/app/delivery/http/controllers"
	"esperanza-kiosk/internal/app/delivery/http/middlewares"
	"esperanza-kiosk/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachWizardRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	sensorLimiter *middlewares.RateLimiter,
	wizardController *controllers.WizardController,
	summaryController *controllers.SummaryController,
) {
	router.Use(middlewares.RequireSession)
	router.Use(middlewares.RequireRole(constvars.KioskRolePatient))

	router.Get("/", wizardController.GetOverview)
	router.Post("/steps/"+constvars.StepBloodPressure+"/submit", wizardController.SubmitBloodPressure)
	router.Get("/steps/{step}", wizardController.GetStep)
	router.With(sensorLimiter.Limit).Post("/steps/{step}/start", wizardController.StartStep)
	router.Post("/steps/{step}/save", wizardController.RetrySave)
	router.Post("/steps/{step}/continue", wizardController.Continue)

	router.Get("/summary", summaryController.GetSummary)
	router.Post("/summary/print", summaryController.Print)
	router.Post("/finish", summaryController.Finish)
}
