package routers

import (
	"esperanza-kiosk/internal/app/delivery/http/controllers"
	"esperanza-kiosk/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.Post("/login", authController.Login)
	router.Post("/register", authController.Register)
	router.With(middlewares.RequireSession).Post("/logout", authController.Logout)
}
