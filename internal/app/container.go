package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"github.com/sritek/hospital-ops-sub000/domain"
	"github.com/sritek/hospital-ops-sub000/internal/config"
	"github.com/sritek/hospital-ops-sub000/internal/infrastructure/audit"
	"github.com/sritek/hospital-ops-sub000/internal/infrastructure/auth"
	"github.com/sritek/hospital-ops-sub000/internal/infrastructure/database"
	"github.com/sritek/hospital-ops-sub000/internal/infrastructure/notifications"
	"github.com/sritek/hospital-ops-sub000/internal/infrastructure/repositories"
	"github.com/sritek/hospital-ops-sub000/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	DB    *gorm.DB
	Redis *database.RedisClient

	// Repositories
	UserRepo    domain.UserRepository
	TenantRepo  domain.TenantRepository
	RefreshRepo domain.RefreshTokenRepository
	HistoryRepo domain.PasswordHistoryRepository
	AttemptRepo domain.LoginAttemptRepository
	OtpRepo     domain.OtpRepository

	// Services
	Hasher          domain.PasswordHasher
	Policy          domain.PasswordPolicy
	TokenSvc        domain.TokenService
	Permissions     domain.PermissionResolver
	NotificationSvc domain.NotificationService
	OtpSvc          domain.OtpService
	AuthSvc         domain.AuthService

	// Audit pipeline. The publisher is kept so Close can drain the
	// broker connection after the dispatcher stops.
	Audit   *audit.Dispatcher
	natsPub *audit.NATSPublisher
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initLogger(); err != nil {
		return nil, err
	}

	// Initialize infrastructure
	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	// Initialize repositories
	container.initRepositories()

	// Initialize services
	if err := container.initServices(); err != nil {
		return nil, err
	}

	return container, nil
}

func (c *Container) initLogger() error {
	level, err := zapcore.ParseLevel(c.Config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Config.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	c.Logger = logger
	return nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	c.Redis = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := c.Redis.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.TenantRepo = repositories.NewTenantRepository(c.DB)
	c.RefreshRepo = repositories.NewRefreshTokenRepository(c.DB)
	c.HistoryRepo = repositories.NewPasswordHistoryRepository(c.DB)
	c.AttemptRepo = repositories.NewLoginAttemptRepository(c.DB)
	c.OtpRepo = repositories.NewOtpRepository(c.Redis.Client, c.Config.OTP_TTL, c.Config.OTP_ResendWindow)
}

func (c *Container) initServices() error {
	c.Hasher = auth.NewPasswordHasher(c.Config.BcryptCost)
	c.Policy = services.NewPasswordPolicy(c.Config.PasswordMinLength, c.Hasher)
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.AccessTTL)

	permissions, err := services.NewPermissionService()
	if err != nil {
		return fmt.Errorf("failed to build permission table: %w", err)
	}
	c.Permissions = permissions

	// Audit events go to NATS when a broker is configured; otherwise the
	// dispatcher falls back to structured logging.
	var sink audit.Sink
	if c.Config.NATSURL != "" {
		pub, err := audit.NewNATSPublisher(c.Config.NATSURL)
		if err != nil {
			return err
		}
		c.natsPub = pub
		sink = pub
	}
	c.Audit = audit.NewDispatcher(sink, 0, c.Logger)

	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
		c.Logger,
	)

	c.OtpSvc = services.NewOtpService(c.OtpRepo, c.NotificationSvc, c.Logger, services.OtpConfig{
		Length:      c.Config.OTP_Length,
		TTL:         c.Config.OTP_TTL,
		MaxAttempts: c.Config.OTP_MaxAttempts,
	})

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.TenantRepo,
		c.RefreshRepo,
		c.HistoryRepo,
		c.AttemptRepo,
		c.Hasher,
		c.Policy,
		c.TokenSvc,
		c.OtpSvc,
		c.Permissions,
		c.Audit,
		c.Logger,
		services.AuthConfig{
			MaxLoginFailures: c.Config.LockoutThreshold,
			LockoutDuration:  c.Config.LockoutDuration,
			PasswordHistory:  c.Config.PasswordHistory,
			RefreshTTL:       c.Config.RefreshTTL,
		},
	)

	return nil
}

// Close drains the audit pipeline and closes all connections
func (c *Container) Close() error {
	if c.Audit != nil {
		c.Audit.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}

	var err error
	if c.DB != nil {
		sqlDB, dbErr := c.DB.DB()
		if dbErr != nil {
			err = dbErr
		} else if closeErr := sqlDB.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if c.Logger != nil {
		c.Logger.Sync()
	}
	return err
}
