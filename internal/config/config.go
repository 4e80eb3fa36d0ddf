package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Database drivers accepted in database.driver.
const (
	DriverNone     = "none"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Portfolio struct {
		File string `yaml:"file"`
	} `yaml:"portfolio"`
	Schedule struct {
		EvaluateCron string `yaml:"evaluate_cron"`
		DigestCron   string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Database struct {
		Driver      string `yaml:"driver"`
		SQLitePath  string `yaml:"sqlite_path"`
		PostgresURL string `yaml:"postgres_url"`
	} `yaml:"database"`
	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
	State struct {
		File string `yaml:"file"`
	} `yaml:"state"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("PORTFOLIO_FILE"); v != "" {
		cfg.Portfolio.File = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_EVALUATE"); v != "" {
		cfg.Schedule.EvaluateCron = v
	}
	if v := os.Getenv("CRON_DIGEST"); v != "" {
		cfg.Schedule.DigestCron = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.PostgresURL = v
	}
	if v := os.Getenv("EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}

	// Defaults
	if cfg.Portfolio.File == "" {
		cfg.Portfolio.File = "configs/portfolio.yaml"
	}
	if cfg.Schedule.EvaluateCron == "" {
		cfg.Schedule.EvaluateCron = "0 0 6 * * *"
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 0 9 * * 1"
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Driver == "" {
		if cfg.Database.PostgresURL != "" {
			cfg.Database.Driver = DriverPostgres
		} else {
			cfg.Database.Driver = DriverSQLite
		}
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/solar_sentinel.db"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "data/exports"
	}
	if cfg.State.File == "" {
		cfg.State.File = "data/verdicts.json"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Portfolio.File == "" {
		return fmt.Errorf("portfolio.file is required")
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Schedule.EvaluateCron); err != nil {
		return fmt.Errorf("schedule.evaluate_cron: %w", err)
	}
	if _, err := parser.Parse(c.Schedule.DigestCron); err != nil {
		return fmt.Errorf("schedule.digest_cron: %w", err)
	}

	switch c.Database.Driver {
	case DriverNone, DriverSQLite:
	case DriverPostgres:
		if c.Database.PostgresURL == "" {
			return fmt.Errorf("database.postgres_url is required for driver %q", DriverPostgres)
		}
	default:
		return fmt.Errorf("database.driver %q is not one of %s, %s, %s", c.Database.Driver, DriverNone, DriverSQLite, DriverPostgres)
	}
	return nil
}
