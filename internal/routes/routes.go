package routes

import (
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Auth    *handlers.AuthHandler
	User    *handlers.UserHandler
	Fish    *handlers.FishHandler
	Article *handlers.ArticleHandler
	Report  *handlers.ReportHandler
	Admin   *handlers.AdminHandler
	Health  *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers, roles middleware.RoleLookup) {
	api := app.Group("/api")

	jwtRequired := middleware.JWTProtected(cfg)
	identity := middleware.LoadIdentity(roles)
	adminOnly := middleware.AdminRequired(roles)

	api.Get("/health", h.Health.Check)

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Get("/me", jwtRequired, identity, h.Auth.Me)

	users := api.Group("/users", jwtRequired, identity)
	users.Get("/", adminOnly, h.User.List)
	users.Post("/", adminOnly, h.User.Create)
	users.Get("/:id", h.User.Get)
	users.Put("/:id", h.User.Update)
	users.Delete("/:id", adminOnly, h.User.Delete)

	fish := api.Group("/fish")
	fish.Get("/", h.Fish.List)
	fish.Get("/:id", h.Fish.Get)
	fish.Post("/", jwtRequired, identity, adminOnly, h.Fish.Create)

	articles := api.Group("/articles")
	articles.Get("/", h.Article.List)
	articles.Get("/:id", h.Article.Get)
	articles.Post("/", jwtRequired, identity, adminOnly, h.Article.Create)

	// Static segments are registered before /:id.
	reports := api.Group("/reports")
	reports.Get("/approved", h.Report.ListApproved)
	reports.Get("/me", jwtRequired, identity, h.Report.ListMine)
	reports.Get("/", jwtRequired, identity, adminOnly, h.Report.ListAll)
	reports.Post("/", jwtRequired, identity, h.Report.Create)
	reports.Get("/:id", middleware.OptionalJWT(cfg), identity, h.Report.Get)
	reports.Put("/:id", jwtRequired, identity, adminOnly, h.Report.UpdateStatus)
	reports.Delete("/:id", jwtRequired, identity, h.Report.Delete)

	admin := api.Group("/admin", jwtRequired, identity, adminOnly)
	admin.Get("/stats", h.Admin.Stats)
	admin.Get("/reports", h.Admin.Reports)
	admin.Get("/reports/map", h.Admin.ReportsMap)
	admin.Put("/reports/:id/status", h.Admin.UpdateReportStatus)
}
