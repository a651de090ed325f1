// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const DefaultStandingsRefreshSchedule = "0 3 * * *"

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
	// For future Turso support
	URL       string `yaml:"url,omitempty"`
	AuthToken string `yaml:"-"` // Loaded from environment
}

// Secrets are read from the environment after .env has been loaded.
type Secrets struct {
	AppSecretKey       string `envconfig:"APP_SECRET_KEY"`
	DatabaseAuthToken  string `envconfig:"DATABASE_AUTH_TOKEN"`
	AWSAccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	AWSRegion          string `envconfig:"AWS_REGION" default:"us-east-1"`
	ClerkSecretKey     string `envconfig:"CLERK_SECRET_KEY"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		TrustProxy  bool   `yaml:"trust_proxy"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Standings struct {
		RefreshSchedule string `yaml:"refresh_schedule"`
	} `yaml:"standings"`

	Email struct {
		Sender        string `yaml:"sender"`
		NotifyAddress string `yaml:"notify_address"`
	} `yaml:"email"`

	Storage struct {
		Bucket        string `yaml:"bucket"`
		PublicBaseURL string `yaml:"public_base_url"`
		Endpoint      string `yaml:"endpoint,omitempty"`
	} `yaml:"storage"`

	Auth struct {
		CognitoPoolID   string `yaml:"cognito_pool_id"`
		CognitoClientID string `yaml:"cognito_client_id"`
	} `yaml:"auth"`

	Features struct {
		EnableLive      bool `yaml:"enable_live"`
		EnableScheduler bool `yaml:"enable_scheduler"`
		EnableDebug     bool `yaml:"enable_debug"`
	} `yaml:"features"`

	Secrets Secrets `yaml:"-"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Read and parse YAML config
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	if err := envconfig.Process("", &cfg.Secrets); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}
	cfg.App.SecretKey = cfg.Secrets.AppSecretKey
	cfg.Database.AuthToken = cfg.Secrets.DatabaseAuthToken

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes yaml and fills defaults. It does not read the environment
// or validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if strings.TrimSpace(cfg.Standings.RefreshSchedule) == "" {
		cfg.Standings.RefreshSchedule = DefaultStandingsRefreshSchedule
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	// Validate based on database driver
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	case "turso":
		if c.Database.URL == "" {
			return fmt.Errorf("database URL is required for turso")
		}
		if c.Database.AuthToken == "" {
			return fmt.Errorf("database auth token is required for turso")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if err := ValidateCronExpr(c.Standings.RefreshSchedule); err != nil {
		return fmt.Errorf("standings refresh_schedule: %w", err)
	}
	if c.Storage.Bucket != "" && c.Storage.PublicBaseURL == "" {
		return fmt.Errorf("storage public_base_url is required when a bucket is set")
	}
	if (c.Auth.CognitoPoolID == "") != (c.Auth.CognitoClientID == "") {
		return fmt.Errorf("cognito pool and client IDs must be set together")
	}

	return nil
}

// ValidateCronExpr accepts standard five-field cron expressions and
// descriptors such as @daily.
func ValidateCronExpr(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return fmt.Errorf("cron expression is required")
	}
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// EmailEnabled reports whether SES credentials and a sender are configured.
func (c *Config) EmailEnabled() bool {
	return c.Email.Sender != "" && c.Secrets.AWSAccessKeyID != "" && c.Secrets.AWSSecretAccessKey != ""
}

func (c *Config) StorageEnabled() bool {
	return c.Storage.Bucket != "" && c.Secrets.AWSAccessKeyID != "" && c.Secrets.AWSSecretAccessKey != ""
}

func (c *Config) CognitoEnabled() bool {
	return c.Auth.CognitoPoolID != "" && c.Auth.CognitoClientID != ""
}
