package routes

import (
	v1 "workhub/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, d v1.Deps) {
	if r == nil {
		return
	}

	v1.Register(r, d)
}
