package server

import (
	"time"

	"searchsync/internal/auth"
	"searchsync/internal/config"
	"searchsync/internal/handlers"
	"searchsync/internal/syncer"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server represents the application server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger zerolog.Logger
	syncer *syncer.Syncer
}

// New creates a new server instance
func New(cfg *config.Config, s *syncer.Syncer, logger zerolog.Logger) *Server {
	return &Server{
		config: cfg,
		logger: logger,
		syncer: s,
	}
}

// zerologMiddleware creates a zerolog-based logging middleware for Echo
func (s *Server) zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			s.logger.Info().
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return err
		}
	}
}

// Initialize sets up the Echo framework with middleware and routes
func (s *Server) Initialize() {
	s.echo = echo.New()

	// Middleware
	s.echo.Use(s.zerologMiddleware())
	s.echo.Use(middleware.Recover())

	// Hide Echo banner
	s.echo.HideBanner = true

	// Setup routes
	s.setupRoutes()
}

// setupRoutes configures all the application routes
func (s *Server) setupRoutes() {
	// API group with /api prefix
	api := s.echo.Group("/api")

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Health endpoint (keep at root level for monitoring)
	s.echo.GET("/healthz", handlers.HealthHandler(s.config.Version))

	// API endpoints under /api prefix; mutating routes require the API key
	api.GET("/", handlers.RootHandler(s.config.Version))

	guarded := auth.Middleware(s.config.APIKey)
	api.POST("/sync", handlers.SyncAllHandler(s.syncer), guarded)
	api.POST("/sync/:id", handlers.SyncOneHandler(s.syncer), guarded)
	api.POST("/cleanup", handlers.CleanupHandler(s.syncer), guarded)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Port).Msg("Server starting")
	return s.echo.Start(":" + s.config.Port)
}
