package app

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AllStackDev1/oja-client/domain"
	"github.com/AllStackDev1/oja-client/internal/config"
	"github.com/AllStackDev1/oja-client/internal/infrastructure/repositories"
	"github.com/AllStackDev1/oja-client/internal/services"
	"github.com/AllStackDev1/oja-client/internal/transport"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	Logger      *zap.Logger
	API         domain.HTTPClient
	SessionRepo *repositories.SessionRepositoryImpl

	// Notifications
	Notifier domain.NotificationSink

	// Services
	AuthSvc domain.AuthService
	DealSvc domain.DealService
	UserSvc domain.UserService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg, Notifier: domain.NopSink{}}

	if err := container.initLogger(); err != nil {
		return nil, err
	}
	if err := container.initInfrastructure(); err != nil {
		return nil, err
	}
	container.initServices()

	return container, nil
}

// SetNotifier swaps the sink used for user-facing notifications. Call before
// the services are exercised; the services keep the sink they were built with,
// so this rebuilds them.
func (c *Container) SetNotifier(sink domain.NotificationSink) {
	if sink == nil {
		sink = domain.NopSink{}
	}
	c.Notifier = sink
	c.initServices()
}

func (c *Container) initLogger() error {
	level, err := zapcore.ParseLevel(c.Config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Config.LogLevel, err)
	}

	var zcfg zap.Config
	if c.Config.LogFormat == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("could not build logger: %w", err)
	}
	c.Logger = logger
	return nil
}

func (c *Container) initInfrastructure() error {
	if c.Config.BaseURL == "" {
		return fmt.Errorf("api base url is not configured")
	}

	c.API = transport.NewClient(c.Config.BaseURL,
		transport.WithLogger(c.Logger),
		transport.WithTimeout(c.Config.RequestTimeout),
	)

	repo, err := repositories.NewSessionRepository(c.Config.SessionDBPath)
	if err != nil {
		return fmt.Errorf("could not open session store: %w", err)
	}
	c.SessionRepo = repo
	return nil
}

func (c *Container) initServices() {
	c.AuthSvc = services.NewAuthService(c.API, c.SessionRepo, c.Notifier, c.Logger)
	c.DealSvc = services.NewDealService(c.API, c.Notifier, c.Logger)
	c.UserSvc = services.NewUserService(c.API, c.Logger)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	if c.SessionRepo != nil {
		return c.SessionRepo.Close()
	}
	return nil
}
