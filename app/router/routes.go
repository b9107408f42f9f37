// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/dpetrovsky/mailhub/app/dto"
	"github.com/dpetrovsky/mailhub/app/handlers"
	"github.com/dpetrovsky/mailhub/app/middleware"
	"github.com/dpetrovsky/mailhub/config"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app            *fiber.App
	cfg            *config.Config
	authHandler    handlers.AuthHandlerInterface
	clientHandler  handlers.ClientHandlerInterface
	messageHandler handlers.MessageHandlerInterface
	mailingHandler handlers.MailingHandlerInterface
	siteHandler    handlers.SiteHandlerInterface
	authMiddleware *middleware.AuthMiddleware
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.Config,
	authHandler handlers.AuthHandlerInterface,
	clientHandler handlers.ClientHandlerInterface,
	messageHandler handlers.MessageHandlerInterface,
	mailingHandler handlers.MailingHandlerInterface,
	siteHandler handlers.SiteHandlerInterface,
	authMiddleware *middleware.AuthMiddleware,
) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Mailhub API",
		ServerHeader: "Mailhub",
		ErrorHandler: errorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:            app,
		cfg:            cfg,
		authHandler:    authHandler,
		clientHandler:  clientHandler,
		messageHandler: messageHandler,
		mailingHandler: mailingHandler,
		siteHandler:    siteHandler,
		authMiddleware: authMiddleware,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	r.setupMiddleware()

	// Public site routes
	r.app.Get("/home", r.siteHandler.Home)
	r.app.Post("/contact", r.siteHandler.Contact)
	r.app.Get("/blog/:uuid", r.siteHandler.GetBlogPost)

	// Prometheus scrape endpoint
	r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	api.Use(limiter.New(limiter.Config{
		Max:        2000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	// Auth routes with stricter rate limiting
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
	}))

	auth.Post("/signup", r.authHandler.Signup)
	auth.Post("/login", r.authHandler.Login)
	auth.Post("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate())

	// Protected resource routes
	clients := api.Group("/clients", r.authMiddleware.Authenticate())
	clients.Get("/export", r.clientHandler.ExportClients)
	clients.Post("/", r.clientHandler.CreateClient)
	clients.Get("/", r.clientHandler.ListClients)
	clients.Get("/:uuid", r.clientHandler.GetClient)
	clients.Put("/:uuid", r.clientHandler.UpdateClient)
	clients.Delete("/:uuid", r.clientHandler.DeleteClient)

	messages := api.Group("/messages", r.authMiddleware.Authenticate())
	messages.Post("/", r.messageHandler.CreateMessage)
	messages.Get("/", r.messageHandler.ListMessages)
	messages.Get("/:uuid", r.messageHandler.GetMessage)
	messages.Put("/:uuid", r.messageHandler.UpdateMessage)
	messages.Delete("/:uuid", r.messageHandler.DeleteMessage)

	mailings := api.Group("/mailings", r.authMiddleware.Authenticate())
	mailings.Post("/", r.mailingHandler.CreateMailing)
	mailings.Get("/", r.mailingHandler.ListMailings)
	mailings.Get("/:uuid", r.mailingHandler.GetMailing)
	mailings.Put("/:uuid", r.mailingHandler.UpdateMailing)
	mailings.Delete("/:uuid", r.mailingHandler.DeleteMailing)
	mailings.Get("/:uuid/logs", r.mailingHandler.ListDeliveryLogs)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Info().Msg("routes configured")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware, first so everything downstream can use it
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'; frame-ancestors 'none';",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.Server.CORSAllowedOrigins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	r.app.Use(middleware.Metrics())

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			log.Error().
				Interface("panic", e).
				Str("path", c.Path()).
				Str("method", c.Method()).
				Str("ip", c.IP()).
				Msg("panic recovered")
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Info().Str("address", address).Msg("starting server")
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// healthCheck reports service liveness
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"service":   "mailhub-api",
		},
	})
}

func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": c.Locals("requestid"),
			},
		},
	})
}

func rateLimitReached(c fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
		Success: false,
		Message: "Too many requests. Please try again later.",
		Error: dto.ErrorDetail{
			Code: "RATE_LIMIT_EXCEEDED",
		},
	})
}

// errorHandler is the global Fiber error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Error().Err(err).Int("status", code).Str("path", c.Path()).Msg("request failed")

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": c.Locals("requestid"),
			},
		},
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
