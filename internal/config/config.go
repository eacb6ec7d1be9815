package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Email     EmailConfig     `yaml:"email"`
	Decoder   DecoderConfig   `yaml:"decoder"`
	Payment   PaymentConfig   `yaml:"payment"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RedisConfig contains cache settings
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AuthConfig selects the token scheme. Mode "jwt" issues our own tokens;
// mode "firebase" verifies Firebase ID tokens minted by the mobile client.
type AuthConfig struct {
	Mode                    string `yaml:"mode"` // "jwt" or "firebase"
	JWTSecret               string `yaml:"jwt_secret"`
	AccessTokenExpiryMins   int    `yaml:"access_token_expiry_minutes"`
	RefreshTokenExpiryMins  int    `yaml:"refresh_token_expiry_minutes"`
	FirebaseCredentialsFile string `yaml:"firebase_credentials_file"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
	// ReviewDeskEmail receives the stale-claim nudge digest.
	ReviewDeskEmail string `yaml:"review_desk_email"`
	Enabled         bool   `yaml:"enabled"`
}

// DecoderConfig contains VIN decoder settings
type DecoderConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// PaymentConfig tunes the simulated payment processor
type PaymentConfig struct {
	SimulatedDelay time.Duration `yaml:"simulated_delay"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig holds cron specs (seconds precision, UTC)
type SchedulerConfig struct {
	PolicyExpirySweep    string `yaml:"policy_expiry_sweep"`
	ExpiryReminders      string `yaml:"expiry_reminders"`
	ClaimReviewReminders string `yaml:"claim_review_reminders"`
	// ExpiryReminderDays is how many days before expiry the reminder goes out.
	ExpiryReminderDays int `yaml:"expiry_reminder_days"`
	// ClaimReviewAgeDays is how old a Pending claim must be before reviewers
	// are nudged.
	ClaimReviewAgeDays int `yaml:"claim_review_age_days"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	if val := os.Getenv("AUTH_MODE"); val != "" {
		c.Auth.Mode = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Auth.FirebaseCredentialsFile = val
	}

	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}

	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Auth.Mode == "" {
		c.Auth.Mode = "jwt"
	}
	if c.Auth.AccessTokenExpiryMins == 0 {
		c.Auth.AccessTokenExpiryMins = 60
	}
	if c.Auth.RefreshTokenExpiryMins == 0 {
		c.Auth.RefreshTokenExpiryMins = 60 * 24 * 30
	}
	if c.Decoder.BaseURL == "" {
		c.Decoder.BaseURL = "https://vpic.nhtsa.dot.gov/api"
	}
	if c.Decoder.Timeout == 0 {
		c.Decoder.Timeout = 10 * time.Second
	}
	if c.Decoder.CacheTTL == 0 {
		c.Decoder.CacheTTL = 24 * time.Hour
	}
	if c.Payment.SimulatedDelay == 0 {
		c.Payment.SimulatedDelay = 2 * time.Second
	}
	if c.Scheduler.PolicyExpirySweep == "" {
		c.Scheduler.PolicyExpirySweep = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.ExpiryReminders == "" {
		c.Scheduler.ExpiryReminders = "0 0 9 * * *" // 9 AM UTC
	}
	if c.Scheduler.ClaimReviewReminders == "" {
		c.Scheduler.ClaimReviewReminders = "0 0 10 * * 1" // Mondays 10 AM UTC
	}
	if c.Scheduler.ExpiryReminderDays == 0 {
		c.Scheduler.ExpiryReminderDays = 14
	}
	if c.Scheduler.ClaimReviewAgeDays == 0 {
		c.Scheduler.ClaimReviewAgeDays = 3
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	switch c.Auth.Mode {
	case "jwt":
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("JWT secret is required")
		}
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("JWT secret must be at least 32 characters")
		}
	case "firebase":
		if c.Auth.FirebaseCredentialsFile == "" {
			return fmt.Errorf("firebase credentials file is required in firebase auth mode")
		}
	default:
		return fmt.Errorf("unsupported auth mode: %s", c.Auth.Mode)
	}

	if c.Email.Enabled && c.Email.SendGridAPIKey == "" {
		return fmt.Errorf("sendgrid api key is required when email is enabled")
	}

	return nil
}

// GetServerAddress returns the listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseConnectionString builds the lib/pq connection string
func (c *Config) GetDatabaseConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Database, sslMode)
}
