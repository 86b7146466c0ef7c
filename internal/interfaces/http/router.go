package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    AuthService
	AuditUC   AuditService
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.AuthUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:username", userHandler.Delete)

	// Auditorías (admin y auditor)
	audits := protected.Group("/audits", RequireRole(entity.RoleAdmin, entity.RoleAuditor))
	auditHandler := NewAuditHandler(deps.AuditUC)
	audits.Post("/", auditHandler.Create)
	audits.Get("/:id", auditHandler.Get)
	audits.Get("/:id/items", auditHandler.Items)
	audits.Post("/:id/scan", auditHandler.Scan)
	audits.Post("/:id/finish", auditHandler.Finish)
	audits.Delete("/:id", auditHandler.Cancel)
	audits.Get("/:id/report", auditHandler.Report)
	audits.Post("/:id/export", auditHandler.Export)

	protected.Get("/history", RequireRole(entity.RoleAdmin, entity.RoleAuditor), auditHandler.History)
}
