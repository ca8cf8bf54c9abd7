// Package http provides the HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application
// service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinashem/employee-portal/internal/application/service"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host          string
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	JWTSecret     string
	LoginAttempts int
	LoginWindow   time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:          "0.0.0.0",
		Port:          8080,
		ReadTimeout:   30 * time.Second,
		WriteTimeout:  30 * time.Second,
		LoginAttempts: 10,
		LoginWindow:   time.Minute,
	}
}

// Services bundles the application services the server exposes.
type Services struct {
	Auth         service.AuthService
	Requisition  service.RequisitionService
	Leave        service.LeaveService
	Notification service.NotificationService
	Task         service.TaskService
	Audit        service.AuditService
	Export       service.ExportService
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	limiter    *rateLimiter
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, services Services, logger Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:   config,
		router:   gin.New(),
		services: services,
		limiter:  newRateLimiter(config.LoginAttempts, config.LoginWindow),
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(corsMiddleware())
	s.router.Use(userAgentMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.services, s.logger)
	auth := authMiddleware(s.config.JWTSecret)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api/v1")
	{
		// Session
		api.POST("/auth/register", handlers.Register)
		api.POST("/auth/login", s.loginRateLimit(), handlers.Login)
		api.GET("/auth/me", auth, handlers.Me)

		// Requisitions
		api.POST("/requisitions", auth, handlers.CreateRequisition)
		api.GET("/requisitions", auth, handlers.ListRequisitions)
		api.GET("/requisitions/export", auth, handlers.ExportRequisitions)
		api.GET("/requisitions/:id", auth, handlers.GetRequisition)
		api.POST("/requisitions/:id/submit", auth, handlers.SubmitRequisition)
		api.POST("/requisitions/:id/approve", auth, handlers.ApproveRequisition)
		api.POST("/requisitions/:id/reject", auth, handlers.RejectRequisition)
		api.POST("/requisitions/:id/pay", auth, handlers.PayRequisition)
		api.POST("/requisitions/:id/close", auth, handlers.CloseRequisition)

		// Leave
		api.GET("/leave-types", auth, handlers.ListLeaveTypes)
		api.POST("/leaves", auth, handlers.CreateLeave)
		api.GET("/leaves", auth, handlers.ListLeaves)
		api.GET("/leaves/:id", auth, handlers.GetLeave)
		api.POST("/leaves/:id/approve", auth, handlers.ApproveLeave)
		api.POST("/leaves/:id/reject", auth, handlers.RejectLeave)
		api.POST("/leaves/:id/cancel", auth, handlers.CancelLeave)

		// Notifications
		api.GET("/notifications", auth, handlers.ListNotifications)
		api.GET("/notifications/unread-count", auth, handlers.UnreadCount)
		api.POST("/notifications/:id/read", auth, handlers.MarkNotificationRead)
		api.POST("/notifications/read-all", auth, handlers.MarkAllNotificationsRead)

		// Tasks
		api.POST("/tasks", auth, handlers.CreateTask)
		api.GET("/tasks", auth, handlers.ListTasks)
		api.GET("/tasks/:id", auth, handlers.GetTask)
		api.POST("/tasks/:id/status", auth, handlers.UpdateTaskStatus)
		api.POST("/tasks/:id/assign", auth, handlers.ReassignTask)

		// Admin
		api.GET("/admin/users/pending", auth, handlers.ListPendingUsers)
		api.POST("/admin/users/:id/approve", auth, handlers.ApproveUser)
		api.POST("/admin/users/:id/reject", auth, handlers.RejectUser)
		api.GET("/admin/audit-log", auth, handlers.ListAuditLog)
	}
}

// loginRateLimit throttles login attempts per client IP.
func (s *Server) loginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			s.logger.Error("Login rate limit exceeded", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, Response{
				Success: false,
				Error:   "too many login attempts, try again later",
			})
			return
		}
		c.Next()
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
