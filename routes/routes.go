package routes

import (
	"sabor/access"
	"sabor/identity"
	"sabor/live"
	"sabor/middleware"
	"sabor/ratelim"
	"sabor/reservations"
	"sabor/settings"

	"github.com/julienschmidt/httprouter"
)

func AddIdentityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *identity.Handler, gate *access.Gate) {
	router.POST("/api/owner/setup", rl.Limit(h.OwnerSetup))
	router.POST("/api/owner/login", rl.Limit(h.OwnerSignIn))

	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.SignIn))
	router.POST("/api/auth/logout", middleware.Authenticate(h.SignOut))
	router.GET("/api/auth/session", middleware.Authenticate(h.Me))
	router.POST("/api/auth/reset", rl.Limit(h.RequestReset))
	router.POST("/api/auth/reset/confirm", rl.Limit(h.ConfirmReset))

	router.PATCH("/api/admin/customers/:id/admin", middleware.Authenticate(gate.RequireAdmin(h.SetAdminFlag)))
}

func AddReservationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *reservations.Handler, gate *access.Gate) {
	router.POST("/api/reservations", rl.Limit(h.Create))
	router.GET("/api/reservations/mine", middleware.Authenticate(h.Mine))

	router.GET("/api/admin/reservations", middleware.Authenticate(gate.RequireAdmin(h.ListAll)))
	router.PATCH("/api/admin/reservations/:id/status", middleware.Authenticate(gate.RequireAdmin(h.UpdateStatus)))
	router.DELETE("/api/admin/reservations/:id", middleware.Authenticate(gate.RequireAdmin(h.Delete)))
}

func AddSettingsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *settings.Handler, gate *access.Gate) {
	router.GET("/api/settings/schedule", h.GetSchedule)
	router.PUT("/api/settings/schedule", middleware.Authenticate(gate.RequireAdmin(h.UpdateSchedule)))
	router.GET("/api/availability", rl.Limit(h.GetAvailability))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/admin", hub.HandleWS)
}
