package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/homeboard/core/internal/adapters/calendar"
	httpHandlers "github.com/homeboard/core/internal/adapters/http"
	"github.com/homeboard/core/internal/adapters/weather"
	"github.com/homeboard/core/internal/application/services"
	"github.com/homeboard/core/internal/infrastructure/config"
	"github.com/homeboard/core/internal/infrastructure/logger"
	"github.com/homeboard/core/internal/infrastructure/storage"
	"github.com/homeboard/core/internal/store"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	storage *storage.Store
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, st *storage.Store, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize the state store over the persistence adapter
	adapter := store.NewAdapter(st, appLogger)
	dashboardStore := store.New(adapter, appLogger)

	// Initialize providers
	weatherProvider := weather.NewClient(cfg.Weather, appLogger)
	calendarProvider := calendar.NewClient(cfg.Google, appLogger)

	// Initialize services
	weatherService := services.NewWeatherService(weatherProvider, dashboardStore, cfg.Weather, appLogger)
	calendarService := services.NewCalendarService(calendarProvider, dashboardStore, cfg.Google.PageSize, appLogger)
	factService := services.NewFunFactService(cfg.Dashboard.FunFactInterval)
	systemService := services.NewSystemService(cfg.App.Version)

	// Initialize handlers
	dashboardHandler := httpHandlers.NewDashboardHandler(dashboardStore, appLogger)
	taskHandler := httpHandlers.NewTaskHandler(dashboardStore, appLogger)
	eventHandler := httpHandlers.NewEventHandler(dashboardStore, appLogger)
	familyHandler := httpHandlers.NewFamilyHandler(dashboardStore, appLogger)
	calendarHandler := httpHandlers.NewCalendarHandler(dashboardStore, calendarService, appLogger)
	settingsHandler := httpHandlers.NewSettingsHandler(dashboardStore, appLogger)
	layoutHandler := httpHandlers.NewLayoutHandler(dashboardStore, appLogger)
	weatherHandler := httpHandlers.NewWeatherHandler(weatherService, appLogger)
	factHandler := httpHandlers.NewFunFactHandler(factService)
	systemHandler := httpHandlers.NewSystemHandler(systemService)

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		storage: st,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(
		dashboardHandler,
		taskHandler,
		eventHandler,
		familyHandler,
		calendarHandler,
		settingsHandler,
		layoutHandler,
		weatherHandler,
		factHandler,
		systemHandler,
	)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(
	dashboardHandler *httpHandlers.DashboardHandler,
	taskHandler *httpHandlers.TaskHandler,
	eventHandler *httpHandlers.EventHandler,
	familyHandler *httpHandlers.FamilyHandler,
	calendarHandler *httpHandlers.CalendarHandler,
	settingsHandler *httpHandlers.SettingsHandler,
	layoutHandler *httpHandlers.LayoutHandler,
	weatherHandler *httpHandlers.WeatherHandler,
	factHandler *httpHandlers.FunFactHandler,
	systemHandler *httpHandlers.SystemHandler,
) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Dashboard snapshot
	v1.GET("/dashboard", dashboardHandler.GetDashboard)

	// Task routes
	taskGroup := v1.Group("/tasks")
	taskGroup.GET("", taskHandler.ListTasks)
	taskGroup.POST("", taskHandler.CreateTask)
	taskGroup.PUT("/:id", taskHandler.UpdateTask)
	taskGroup.POST("/:id/toggle", taskHandler.ToggleTask)
	taskGroup.DELETE("/:id", taskHandler.DeleteTask)

	// Countdown event routes
	eventGroup := v1.Group("/events")
	eventGroup.GET("", eventHandler.ListEvents)
	eventGroup.POST("", eventHandler.CreateEvent)
	eventGroup.PUT("/:id", eventHandler.UpdateEvent)
	eventGroup.DELETE("/:id", eventHandler.DeleteEvent)

	// Family routes
	familyGroup := v1.Group("/family")
	familyGroup.GET("", familyHandler.ListFamily)
	familyGroup.POST("", familyHandler.CreateFamilyMember)
	familyGroup.PUT("/:id", familyHandler.UpdateFamilyMember)
	familyGroup.DELETE("/:id", familyHandler.DeleteFamilyMember)

	// Calendar routes
	calendarGroup := v1.Group("/calendar")
	calendarGroup.GET("/events", calendarHandler.ListCalendarEvents)
	calendarGroup.POST("/events", calendarHandler.CreateCalendarEvent)
	calendarGroup.PUT("/events/:id", calendarHandler.UpdateCalendarEvent)
	calendarGroup.DELETE("/events/:id", calendarHandler.DeleteCalendarEvent)
	calendarGroup.POST("/connect", calendarHandler.Connect)
	calendarGroup.POST("/disconnect", calendarHandler.Disconnect)
	calendarGroup.POST("/sync", calendarHandler.Sync)

	// Layout routes
	layoutGroup := v1.Group("/layout")
	layoutGroup.GET("", layoutHandler.GetLayout)
	layoutGroup.POST("/move", layoutHandler.MoveWidget)
	layoutGroup.PATCH("/:id", layoutHandler.PatchWidget)

	// Settings routes
	settingsGroup := v1.Group("/settings")
	settingsGroup.GET("", settingsHandler.GetSettings)
	settingsGroup.PUT("", settingsHandler.UpdateSettings)
	settingsGroup.PUT("/toggles", settingsHandler.UpdateToggles)
	settingsGroup.PUT("/weather-key", settingsHandler.SetWeatherKey)

	// Widget data routes
	v1.GET("/weather", weatherHandler.GetCurrentWeather)
	v1.GET("/weather/forecast", weatherHandler.GetForecast)
	v1.GET("/funfacts", factHandler.GetFunFact)
	v1.GET("/system", systemHandler.GetSystemStatus)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Storage health check
	if err := s.storage.HealthCheck(); err != nil {
		status = "error"
		checks["storage"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["storage"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.storage.GetConnectionInfo(),
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.storage.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": e.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}
