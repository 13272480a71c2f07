package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(handler.metrics.Handler()))

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/register", handler.Register)
	auth.Post("/logout", handler.Logout)

	api.Get("/profile", handler.AuthRequired, handler.GetProfile)
	api.Put("/profile", handler.AuthRequired, handler.UpdateProfile)
	api.Get("/phase", handler.AuthRequired, handler.GetPhase)
	api.Get("/dashboard", handler.AuthRequired, handler.GetDashboard)

	hydration := api.Group("/hydration", handler.AuthRequired)
	hydration.Get("", handler.GetHydration)
	hydration.Put("", handler.SetHydration)
	hydration.Post("/increment", handler.IncrementHydration)
	hydration.Post("/decrement", handler.DecrementHydration)

	checklist := api.Group("/checklist", handler.AuthRequired)
	checklist.Get("", handler.GetChecklist)
	checklist.Post("/:id/toggle", handler.ToggleChecklistItem)

	mood := api.Group("/mood", handler.AuthRequired)
	mood.Get("", handler.GetMood)
	mood.Post("", handler.SaveMood)

	swelling := api.Group("/swelling", handler.AuthRequired)
	swelling.Get("", handler.GetSwelling)
	swelling.Post("", handler.SaveSwelling)
}
