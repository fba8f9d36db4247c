package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AccessTTL string `yaml:"access_ttl"`
	// RefreshTTL bounds the opaque refresh tokens stored in Postgres.
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type LockoutConfig struct {
	Threshold int    `yaml:"threshold"`
	Duration  string `yaml:"duration"`
}

type PasswordConfig struct {
	MinLength    int `yaml:"min_length"`
	HistoryLimit int `yaml:"history_limit"`
	BcryptCost   int `yaml:"bcrypt_cost"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Lockout  LockoutConfig  `yaml:"lockout"`
	Password PasswordConfig `yaml:"password"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	NATS     NATSConfig     `yaml:"nats"`
	LogLevel string         `yaml:"log_level"`
}

type Config struct {
	Port          string
	GinMode       string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	JWTIssuer     string
	// AccessTTL is kept in its raw form; the token service parses it and
	// falls back to its own default when the value is malformed.
	AccessTTL         string
	RefreshTTL        time.Duration
	OTP_TTL           time.Duration
	OTP_Length        int
	OTP_MaxAttempts   int
	OTP_ResendWindow  time.Duration
	LockoutThreshold  int
	LockoutDuration   time.Duration
	PasswordMinLength int
	PasswordHistory   int
	BcryptCost        int
	TwilioSID         string
	TwilioToken       string
	TwilioFrom        string
	NATSURL           string
	LogLevel          string
}

// accessTTLPattern is the format the token service understands.
var accessTTLPattern = regexp.MustCompile(`^\d+[smhd]$`)

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the yaml config, applies environment overrides for deploy-time
// secrets, fills defaults, and validates the result. A config that fails
// validation never reaches the container.
func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	applyDefaults(configFile)

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(configFile.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	lockDur, err := time.ParseDuration(configFile.Lockout.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid lockout duration: %w", err)
	}

	cfg := &Config{
		Port:              fmt.Sprintf("%d", configFile.App.Port),
		GinMode:           configFile.App.GinMode,
		DSN:               env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:         env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:     env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:           configFile.Redis.DB,
		JWTSecret:         env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:         configFile.JWT.Issuer,
		AccessTTL:         configFile.JWT.AccessTTL,
		RefreshTTL:        refTTL,
		OTP_TTL:           otpTTL,
		OTP_Length:        configFile.OTP.Length,
		OTP_MaxAttempts:   configFile.OTP.MaxAttempts,
		OTP_ResendWindow:  resWnd,
		LockoutThreshold:  configFile.Lockout.Threshold,
		LockoutDuration:   lockDur,
		PasswordMinLength: configFile.Password.MinLength,
		PasswordHistory:   configFile.Password.HistoryLimit,
		BcryptCost:        configFile.Password.BcryptCost,
		TwilioSID:         env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:       env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:        env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		NATSURL:           env("NATS_URL", configFile.NATS.URL),
		LogLevel:          configFile.LogLevel,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cf *ConfigFile) {
	if cf.App.Port == 0 {
		cf.App.Port = 8080
	}
	if cf.App.GinMode == "" {
		cf.App.GinMode = "release"
	}
	if cf.JWT.Issuer == "" {
		cf.JWT.Issuer = "hospital-ops-identity"
	}
	if cf.JWT.AccessTTL == "" {
		cf.JWT.AccessTTL = "15m"
	}
	if cf.JWT.RefreshTTL == "" {
		cf.JWT.RefreshTTL = "720h"
	}
	if cf.OTP.TTL == "" {
		cf.OTP.TTL = "10m"
	}
	if cf.OTP.Length == 0 {
		cf.OTP.Length = 6
	}
	if cf.OTP.MaxAttempts == 0 {
		cf.OTP.MaxAttempts = 3
	}
	if cf.OTP.ResendWindow == "" {
		cf.OTP.ResendWindow = "60s"
	}
	if cf.Lockout.Threshold == 0 {
		cf.Lockout.Threshold = 5
	}
	if cf.Lockout.Duration == "" {
		cf.Lockout.Duration = "30m"
	}
	if cf.Password.MinLength == 0 {
		cf.Password.MinLength = 8
	}
	if cf.Password.HistoryLimit == 0 {
		cf.Password.HistoryLimit = 5
	}
	if cf.Password.BcryptCost == 0 {
		cf.Password.BcryptCost = bcrypt.DefaultCost
	}
	if cf.LogLevel == "" {
		cf.LogLevel = "info"
	}
}

// Validate rejects configurations that would silently weaken security if
// they reached a running service.
func (c *Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("config: database dsn is required")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("config: redis addr is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("config: jwt secret must be at least 32 bytes, got %d", len(c.JWTSecret))
	}
	if !accessTTLPattern.MatchString(c.AccessTTL) {
		return fmt.Errorf("config: jwt access TTL %q must match <number><s|m|h|d>", c.AccessTTL)
	}
	if c.RefreshTTL <= 0 {
		return fmt.Errorf("config: jwt refresh TTL must be positive")
	}
	if c.OTP_TTL <= 0 {
		return fmt.Errorf("config: otp TTL must be positive")
	}
	if c.OTP_Length < 4 || c.OTP_Length > 10 {
		return fmt.Errorf("config: otp length must be between 4 and 10, got %d", c.OTP_Length)
	}
	if c.OTP_MaxAttempts < 1 {
		return fmt.Errorf("config: otp max attempts must be at least 1, got %d", c.OTP_MaxAttempts)
	}
	if c.LockoutThreshold < 1 {
		return fmt.Errorf("config: lockout threshold must be at least 1, got %d", c.LockoutThreshold)
	}
	if c.LockoutDuration <= 0 {
		return fmt.Errorf("config: lockout duration must be positive")
	}
	if c.PasswordMinLength < 8 {
		return fmt.Errorf("config: password min length must be at least 8, got %d", c.PasswordMinLength)
	}
	if c.PasswordHistory < 1 {
		return fmt.Errorf("config: password history limit must be at least 1, got %d", c.PasswordHistory)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("config: bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	return nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
