package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const baseYAML = `app:
  name: "Fixturely"
  environment: "production"
  port: 8080
  base_url: "http://localhost:8080"

database:
  driver: "sqlite"
  filename: "data/fixturely.db"
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(baseYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Standings.RefreshSchedule != DefaultStandingsRefreshSchedule {
		t.Fatalf("expected default refresh schedule, got %q", cfg.Standings.RefreshSchedule)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production environment")
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "missing name", mutate: func(c *Config) { c.App.Name = "" }, want: "app name"},
		{name: "missing port", mutate: func(c *Config) { c.App.Port = 0 }, want: "app port"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, want: "unsupported database driver"},
		{name: "turso without token", mutate: func(c *Config) {
			c.Database.Driver = "turso"
			c.Database.URL = "libsql://example.turso.io"
		}, want: "auth token"},
		{name: "bad cron", mutate: func(c *Config) { c.Standings.RefreshSchedule = "every night" }, want: "refresh_schedule"},
		{name: "bucket without url", mutate: func(c *Config) { c.Storage.Bucket = "logos" }, want: "public_base_url"},
		{name: "half cognito", mutate: func(c *Config) { c.Auth.CognitoPoolID = "us-east-1_abc" }, want: "cognito"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(baseYAML))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateCronExpr(t *testing.T) {
	for _, expr := range []string{"0 3 * * *", "*/15 * * * *", "@daily"} {
		if err := ValidateCronExpr(expr); err != nil {
			t.Fatalf("expected %q to be valid: %v", expr, err)
		}
	}
	for _, expr := range []string{"", "61 * * * *", "not a cron"} {
		if err := ValidateCronExpr(expr); err == nil {
			t.Fatalf("expected %q to be rejected", expr)
		}
	}
}

func TestLoadReadsSecretsFromEnv(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(baseYAML+`
standings:
  refresh_schedule: "30 2 * * *"
`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("APP_SECRET_KEY", "test-secret")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.SecretKey != "test-secret" {
		t.Fatalf("expected secret key from env, got %q", cfg.App.SecretKey)
	}
	if cfg.Secrets.AWSRegion != "eu-west-1" {
		t.Fatalf("expected region from env, got %q", cfg.Secrets.AWSRegion)
	}
	if cfg.Standings.RefreshSchedule != "30 2 * * *" {
		t.Fatalf("unexpected refresh schedule %q", cfg.Standings.RefreshSchedule)
	}
	if cfg.EmailEnabled() {
		t.Fatalf("expected email disabled without sender")
	}
}
