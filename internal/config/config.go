package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

var validate = validator.New()

// Config holds runtime configuration for the service and report tool.
type Config struct {
	Port            string        `envconfig:"PORT" default:"4000" validate:"required,numeric"`
	Seasons         []int         `envconfig:"SEASONS" default:"2019,2020,2021,2022,2023,2024" validate:"required,min=1,unique,dive,gte=1947,lte=2100"`
	TopN            int           `envconfig:"TOP_N" default:"10" validate:"gte=1,lte=500"`
	Category        string        `envconfig:"USAGE_CATEGORY" default:"minutes_dependent" validate:"oneof=minutes_dependent underutilized standard"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"6h" validate:"gt=0"`
	Workers         int           `envconfig:"PIPELINE_WORKERS" default:"4" validate:"gte=1,lte=32"`
	AdminToken      string        `envconfig:"ADMIN_TOKEN"`
	ReportDir       string        `envconfig:"REPORT_DIR" default:"data/reports" validate:"required"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`

	Provider ProviderConfig `envconfig:"PROVIDER"`
	Store    StoreConfig    `envconfig:"STORE"`
	Metrics  MetricsConfig  `envconfig:"METRICS"`
	Log      LogConfig      `envconfig:"LOG"`
}

// ProviderConfig selects and paces the raw table provider.
type ProviderConfig struct {
	Kind    string        `envconfig:"KIND" default:"fixture" validate:"oneof=fixture csv http"`
	RawDir  string        `envconfig:"RAW_DIR" default:"data/raw" validate:"required_if=Kind csv"`
	BaseURL string        `envconfig:"BASE_URL" validate:"required_if=Kind http"`
	APIKey  string        `envconfig:"API_KEY"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s" validate:"gt=0"`
	RPS     float64       `envconfig:"RPS" default:"2" validate:"gt=0"`
	Burst   int           `envconfig:"BURST" default:"1" validate:"gte=1"`
	Retries int           `envconfig:"RETRIES" default:"3" validate:"gte=1,lte=10"`
}

// StoreConfig selects the season store backend.
type StoreConfig struct {
	Kind          string `envconfig:"KIND" default:"fs" validate:"oneof=fs sql redis memory"`
	DataDir       string `envconfig:"DATA_DIR" default:"data/processed" validate:"required_if=Kind fs"`
	SQLDriver     string `envconfig:"SQL_DRIVER" default:"sqlite" validate:"oneof=sqlite postgres"`
	SQLDSN        string `envconfig:"SQL_DSN" validate:"required_if=Kind sql"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379" validate:"required_if=Kind redis"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0" validate:"gte=0"`
}

// LogConfig controls log level/format.
type LogConfig struct {
	Level  string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format string `envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load reads configuration from environment variables, applies defaults and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config from env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// UsageCategory returns the configured ranking category.
func (c Config) UsageCategory() playoffs.UsageCategory {
	return playoffs.UsageCategory(c.Category)
}
