package routers

import (
	"esperanza-kiosk/internal/app/delivery/http/controllers"
	"esperanza-kiosk/internal/app/delivery/http/middlewares"
	"esperanza-kiosk/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachRecordsRoutes(router chi.Router, middlewares *middlewares.Middlewares, recordsController *controllers.RecordsController) {
	router.Use(middlewares.RequireSession)
	router.Use(middlewares.RequireRole(constvars.KioskRolePatient))

	router.Get("/", recordsController.GetRecords)
}

func attachStaffRoutes(router chi.Router, middlewares *middlewares.Middlewares, recordsController *controllers.RecordsController) {
	router.Use(middlewares.RequireSession)
	router.Use(middlewares.RequireRole(constvars.KioskRoleStaff))

	router.Get("/", recordsController.GetStaffDashboard)
	router.Get("/patients", recordsController.SearchPatients)
	router.Get("/patients/export", recordsController.ExportPatients)
	router.Patch("/patients/{patient_id}", recordsController.UpdatePatient)
	router.Get("/patients/{patient_id}/vitals", recordsController.GetPatientVitals)
	router.Post("/patients/{patient_id}/vitals", recordsController.AddPatientVitals)
}
