package routes

import (
	"workhub/internal/delivery/http/handler"
	v1 "workhub/internal/delivery/http/routes/v1"
	"workhub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	wsh    *ws.Handler
	deps   v1.Deps
}

func NewRegistry(health *handler.HealthHandler, wsh *ws.Handler, deps v1.Deps) *Registry {
	return &Registry{health: health, wsh: wsh, deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.wsh == nil {
		return
	}
	app.Get("/ws/notifications", r.wsh.HandleNotifications)
}
