package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	Source      StoreConfig
	Destination StoreConfig
	Mail        MailConfig
	Scheduler   SchedulerConfig
	RunLog      RunLogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// StoreConfig holds the credentials and endpoint of one catalog store
type StoreConfig struct {
	StoreHash   string
	AccessToken string
	APIBaseURL  string
	Timeout     time.Duration
}

// MailConfig holds the mail dispatch API settings
type MailConfig struct {
	APIBaseURL string
	APIKey     string
	From       string
	To         string
	Timeout    time.Duration
}

// SchedulerConfig holds the daily trigger settings
type SchedulerConfig struct {
	UTCHour       int
	UTCMinute     int
	CheckInterval time.Duration
	RunOnStart    bool
}

// RunLogConfig holds the persisted run log settings
type RunLogConfig struct {
	Path string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with MIGRATOR_ prefix (e.g. MIGRATOR_SOURCE_ACCESS_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("MIGRATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Source: StoreConfig{
			StoreHash:   v.GetString("source.store_hash"),
			AccessToken: v.GetString("source.access_token"),
			APIBaseURL:  v.GetString("source.api_base_url"),
			Timeout:     v.GetDuration("source.timeout"),
		},
		Destination: StoreConfig{
			StoreHash:   v.GetString("destination.store_hash"),
			AccessToken: v.GetString("destination.access_token"),
			APIBaseURL:  v.GetString("destination.api_base_url"),
			Timeout:     v.GetDuration("destination.timeout"),
		},
		Mail: MailConfig{
			APIBaseURL: v.GetString("mail.api_base_url"),
			APIKey:     v.GetString("mail.api_key"),
			From:       v.GetString("mail.from"),
			To:         v.GetString("mail.to"),
			Timeout:    v.GetDuration("mail.timeout"),
		},
		Scheduler: SchedulerConfig{
			UTCHour:       v.GetInt("scheduler.utc_hour"),
			UTCMinute:     v.GetInt("scheduler.utc_minute"),
			CheckInterval: v.GetDuration("scheduler.check_interval"),
			RunOnStart:    v.GetBool("scheduler.run_on_start"),
		},
		RunLog: RunLogConfig{
			Path: v.GetString("runlog.path"),
		},
	}

	// Zero is a meaningful value for these keys, so their defaults apply
	// only when the key is absent everywhere.
	if !v.IsSet("scheduler.run_on_start") {
		cfg.Scheduler.RunOnStart = true
	}
	if !v.IsSet("scheduler.utc_hour") {
		cfg.Scheduler.UTCHour = 2
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "catalog-migrator"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Source.Timeout == 0 {
		cfg.Source.Timeout = 30 * time.Second
	}
	if cfg.Destination.Timeout == 0 {
		cfg.Destination.Timeout = 30 * time.Second
	}
	if cfg.Mail.Timeout == 0 {
		cfg.Mail.Timeout = 30 * time.Second
	}
	if cfg.Scheduler.CheckInterval == 0 {
		cfg.Scheduler.CheckInterval = time.Minute
	}
	if cfg.RunLog.Path == "" {
		cfg.RunLog.Path = "migration.log"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Scheduler.UTCHour < 0 || c.Scheduler.UTCHour > 23 {
		return fmt.Errorf("scheduler.utc_hour must be between 0 and 23")
	}
	if c.Scheduler.UTCMinute < 0 || c.Scheduler.UTCMinute > 59 {
		return fmt.Errorf("scheduler.utc_minute must be between 0 and 59")
	}

	if c.App.Env == "production" {
		if c.Source.StoreHash == "" || c.Source.AccessToken == "" {
			return fmt.Errorf("source.store_hash and source.access_token are required in production")
		}
		if c.Destination.StoreHash == "" || c.Destination.AccessToken == "" {
			return fmt.Errorf("destination.store_hash and destination.access_token are required in production")
		}
		if c.Mail.APIKey == "" {
			return fmt.Errorf("mail.api_key is required in production")
		}
		if c.Mail.From == "" || c.Mail.To == "" {
			return fmt.Errorf("mail.from and mail.to are required in production")
		}
	}

	return nil
}
