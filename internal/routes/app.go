package routes

import (
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/middleware"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp builds the Fiber app with the global middleware stack, the metrics
// endpoint and the /uploads static fallback. Routes are added by Setup.
func NewApp(cfg *config.Config, reg *prometheus.Registry) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "bhasbi-api",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: handlers.ErrorHandler,
	})

	metrics := middleware.NewMetrics(reg)

	app.Use(recover.New())
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics"
	})))
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})
	app.Use(metrics.Handler())
	app.Use(middleware.Timeout(cfg.RequestTimeout))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	app.Static("/uploads", cfg.UploadDir, fiber.Static{MaxAge: 3600})

	return app
}
