package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/sirupsen/logrus"

	"fitness-api/internal/config"
	"fitness-api/internal/database"
	"fitness-api/internal/logging"
	"fitness-api/internal/repositories"
	dynamorepo "fitness-api/internal/repositories/dynamodb"
	"fitness-api/internal/repositories/memory"
	sqliterepo "fitness-api/internal/repositories/sqlite"
	"fitness-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *logrus.Logger
	Users           repositories.UserRepository
	ChatService     services.ChatService
	PaymentService  services.PaymentService
	InsightsService services.InsightsService
	SalesService    services.SalesService

	// Internal dependencies
	db *sql.DB
}

// NewContainer creates a new dependency injection container. AWS clients
// are only built when the store or secret resolution needs them.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	logger := logging.New(cfg.Log)

	var awsCfg *aws.Config
	if cfg.Store.Driver == config.StoreDriverDynamoDB || cfg.Secrets.Any() {
		loaded, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Store.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		awsCfg = &loaded
	}

	if cfg.Secrets.Any() {
		if err := config.ResolveSecrets(ctx, cfg, secretsmanager.NewFromConfig(*awsCfg)); err != nil {
			return nil, fmt.Errorf("failed to resolve secrets: %w", err)
		}
	}

	container := &Container{Config: cfg, Logger: logger}

	switch cfg.Store.Driver {
	case config.StoreDriverDynamoDB:
		client := dynamodb.NewFromConfig(*awsCfg, func(o *dynamodb.Options) {
			if cfg.Store.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Store.Endpoint)
			}
		})
		container.Users = dynamorepo.NewUserRepository(client, cfg.Store.UsersTable, logger)
	case config.StoreDriverSQLite:
		dbCfg := database.DefaultConnectionConfig()
		dbCfg.DatabasePath = cfg.Store.SQLitePath
		dbCfg.Logger = logger
		db, err := database.Open(ctx, dbCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open user store: %w", err)
		}
		container.db = db
		container.Users = sqliterepo.NewUserRepository(db, logger)
	case config.StoreDriverMemory:
		container.Users = memory.NewUserRepository()
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	if err := container.wireServices(&services.ServiceConfig{
		AI:       cfg.AI,
		Payments: cfg.Payments,
		Logger:   logger,
	}); err != nil {
		container.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"store_driver":    cfg.Store.Driver,
		"deployment_mode": config.GetDeploymentMode(),
		"stage":           cfg.Stage,
	}).Info("Container initialized")

	return container, nil
}

// NewContainerWithServices builds a container around an existing repository
// and service configuration
func NewContainerWithServices(cfg *config.Config, logger *logrus.Logger, users repositories.UserRepository, svcCfg *services.ServiceConfig) (*Container, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if svcCfg == nil {
		svcCfg = &services.ServiceConfig{}
	}
	if svcCfg.Logger == nil {
		svcCfg.Logger = logger
	}
	container := &Container{Config: cfg, Logger: logger, Users: users}
	if err := container.wireServices(svcCfg); err != nil {
		return nil, err
	}
	return container, nil
}

func (c *Container) wireServices(svcCfg *services.ServiceConfig) error {
	serviceContainer, err := services.NewServiceContainer(c.Users, svcCfg)
	if err != nil {
		return fmt.Errorf("failed to create service container: %w", err)
	}
	if err := serviceContainer.Validate(); err != nil {
		return err
	}

	c.ChatService = serviceContainer.ChatService
	c.PaymentService = serviceContainer.PaymentService
	c.InsightsService = serviceContainer.InsightsService
	c.SalesService = serviceContainer.SalesService
	return nil
}

// CheckHealth reports whether the user store answers
func (c *Container) CheckHealth(ctx context.Context) error {
	if c.Users == nil {
		return fmt.Errorf("user store not configured")
	}
	if err := c.Users.HealthCheck(ctx); err != nil {
		return fmt.Errorf("user store unavailable: %w", err)
	}
	return nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		c.db = nil
	}
	return nil
}
