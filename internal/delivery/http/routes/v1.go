package routes

import "github.com/gofiber/fiber/v3"

func RegisterV1(r fiber.Router, handlers ...RouteRegistrar) {
	if r == nil {
		return
	}

	for _, h := range handlers {
		if h != nil {
			h.RegisterRoutes(r)
		}
	}
}
