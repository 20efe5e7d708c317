package v1

import (
	"workhub/internal/delivery/http/handler"
	"workhub/internal/delivery/http/middleware"
	"workhub/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Jobs         *handler.JobsHandler
	Applications *handler.ApplicationsHandler
	Ratings      *handler.RatingsHandler
	Auth         *middleware.AuthMiddleware
}

// Register attaches middleware per route rather than per group: a group
// handler mounts as prefix-wide Use middleware and would gate the public
// routes sharing the prefix.
func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	registerJobs(r, d)
	registerApplications(r, d)
	registerRatings(r, d)
}

func registerJobs(r fiber.Router, d Deps) {
	jobs := r.Group("/jobs")

	auth := d.Auth.Middleware()
	employerOnly := middleware.RequireRoles(user.RoleEmployer, user.RoleAdmin)
	laborerOnly := middleware.RequireRoles(user.RoleLaborer)

	jobs.Get("/", d.Jobs.HandleList)
	jobs.Post("/", auth, employerOnly, d.Jobs.HandleCreate)
	// registered before /:id so the literal segment wins the match
	jobs.Get("/my-jobs", auth, employerOnly, d.Jobs.HandleMyJobs)
	// optional auth so an authenticated laborer gets the hasApplied flag
	jobs.Get("/:id", d.Auth.Optional(), d.Jobs.HandleGet)
	jobs.Put("/:id", auth, employerOnly, d.Jobs.HandleUpdate)
	jobs.Delete("/:id", auth, employerOnly, d.Jobs.HandleDelete)
	jobs.Post("/:id/apply", auth, laborerOnly, d.Applications.HandleApply)
	jobs.Get("/:id/applications", auth, employerOnly, d.Applications.HandleListForJob)
}

func registerApplications(r fiber.Router, d Deps) {
	apps := r.Group("/applications")

	auth := d.Auth.Middleware()

	apps.Get("/my-applications", auth, middleware.RequireRoles(user.RoleLaborer), d.Applications.HandleMyApplications)
	apps.Put("/:id/status", auth, middleware.RequireRoles(user.RoleEmployer, user.RoleAdmin), d.Applications.HandleUpdateStatus)
}

func registerRatings(r fiber.Router, d Deps) {
	r.Post("/ratings", d.Auth.Middleware(), d.Ratings.HandleRate)
	r.Get("/users/:id/ratings", d.Ratings.HandleForUser)
}
