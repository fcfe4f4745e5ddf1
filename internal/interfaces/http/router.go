package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bau-portal/internal/application/auth"
	"github.com/jhoicas/bau-portal/internal/application/usecase"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/pkg/logger"
)

// APIPrefix prefijo común de todas las rutas REST.
const APIPrefix = "/api/v1"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	BedarfUC  *usecase.BedarfUseCase
	BetriebUC *usecase.BetriebUseCase
	JWTSecret string
	Logger    *logger.Logger // nil = sin log de peticiones
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group(APIPrefix)
	if deps.Logger != nil {
		api.Use(RequestLogger(deps.Logger))
	}

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	bedarfe := protected.Group("/bedarfe")
	bedarfHandler := NewBedarfHandler(deps.BedarfUC)
	bedarfe.Get("/", bedarfHandler.List)
	bedarfe.Get("/betrieb/:betriebId", bedarfHandler.ListByBetrieb)
	bedarfe.Post("/", bedarfHandler.Create)
	bedarfe.Get("/:id", bedarfHandler.GetByID)
	bedarfe.Put("/:id", bedarfHandler.Update)
	bedarfe.Patch("/:id/status", bedarfHandler.UpdateStatus)
	bedarfe.Delete("/:id", bedarfHandler.Delete)

	// Betriebe: lectura para todos, escritura solo ADMIN
	betriebe := protected.Group("/betriebe")
	betriebHandler := NewBetriebHandler(deps.BetriebUC)
	adminOnly := RequireRole(entity.RoleAdmin)
	betriebe.Get("/", betriebHandler.List)
	betriebe.Get("/:id", betriebHandler.GetByID)
	betriebe.Post("/", adminOnly, betriebHandler.Create)
	betriebe.Put("/:id", adminOnly, betriebHandler.Update)
	betriebe.Patch("/:id/status", adminOnly, betriebHandler.UpdateStatus)
	betriebe.Delete("/:id", adminOnly, betriebHandler.Delete)
}
