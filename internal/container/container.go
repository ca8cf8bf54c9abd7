// Package container wires the application's dependencies in order:
// database, repositories, then services. Teardown closes in reverse.
package container

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/application/service"
	"github.com/tinashem/employee-portal/internal/config"
	"github.com/tinashem/employee-portal/internal/infrastructure/persistence/repository"
	"github.com/tinashem/employee-portal/internal/infrastructure/persistence/sqlite"
	"github.com/tinashem/employee-portal/pkg/database"
)

// RepositoryBundle groups all repositories for convenient access.
type RepositoryBundle struct {
	Requisition  port.RequisitionRepository
	Leave        port.LeaveRepository
	LeaveType    port.LeaveTypeRepository
	User         port.UserRepository
	Notification port.NotificationRepository
	Audit        port.AuditLogRepository
	Task         port.TaskRepository
}

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Auth         service.AuthService
	Requisition  service.RequisitionService
	Leave        service.LeaveService
	Notification service.NotificationService
	Task         service.TaskService
	Audit        service.AuditService
	Export       service.ExportService
}

// Container holds the wired application graph.
type Container struct {
	config *config.Config
	logger *zap.Logger

	sqlDB        *sql.DB
	db           *sqlite.DB
	repositories *RepositoryBundle
	services     *ServiceBundle
}

// New builds the full dependency graph: opens the database, runs the
// migrations, and constructs repositories and services.
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	sqlDB, err := database.Open(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	migrator := database.NewMigrator(sqlDB, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db := sqlite.NewDB(sqlDB, logger)

	repos := &RepositoryBundle{
		Requisition:  repository.NewRequisitionRepository(db, logger),
		Leave:        repository.NewLeaveRepository(db, logger),
		LeaveType:    repository.NewLeaveTypeRepository(db, logger),
		User:         repository.NewUserRepository(db, logger),
		Notification: repository.NewNotificationRepository(db, logger),
		Audit:        repository.NewAuditLogRepository(db, logger),
		Task:         repository.NewTaskRepository(db, logger),
	}

	serviceLogger := &zapLoggerAdapter{logger: logger}

	auditService := service.NewAuditService(repos.Audit, serviceLogger)
	notificationService := service.NewNotificationService(repos.Notification, repos.User, serviceLogger)

	services := &ServiceBundle{
		Audit:        auditService,
		Notification: notificationService,
		Auth: service.NewAuthService(
			repos.User, auditService,
			cfg.Auth.JWTSecret, cfg.Auth.TokenTTL,
			serviceLogger,
		),
		Requisition: service.NewRequisitionService(
			repos.Requisition, auditService, notificationService, serviceLogger,
		),
		Leave: service.NewLeaveService(
			repos.Leave, repos.LeaveType,
			cfg.Workflow.HRMayReviewLeave,
			auditService, notificationService, serviceLogger,
		),
		Task: service.NewTaskService(
			repos.Task, auditService, notificationService, serviceLogger,
		),
		Export: service.NewExportService(repos.Requisition, serviceLogger),
	}

	return &Container{
		config:       cfg,
		logger:       logger,
		sqlDB:        sqlDB,
		db:           db,
		repositories: repos,
		services:     services,
	}, nil
}

// Close releases the container's resources.
func (c *Container) Close() error {
	c.logger.Info("Closing container")
	if err := c.sqlDB.Close(); err != nil {
		c.logger.Error("Failed to close database", zap.Error(err))
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// DB returns the transaction manager.
func (c *Container) DB() port.TransactionManager {
	return c.db
}

// Repositories returns all repositories.
func (c *Container) Repositories() *RepositoryBundle {
	return c.repositories
}

// Services returns all application services.
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// ServiceLogger returns an adapter exposing the container's zap logger
// through the key-value Logger interface the adapter layers consume.
func (c *Container) ServiceLogger() *zapLoggerAdapter {
	return &zapLoggerAdapter{logger: c.logger}
}

// zapLoggerAdapter adapts zap.Logger to the service.Logger interface.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
