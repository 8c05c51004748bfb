package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/relay/core/logger"
	"github.com/dmitrymomot/relay/core/server"
)

// AppConfig is the demo application configuration. Every field can be set
// from the environment; a YAML file given with -config overrides it.
type AppConfig struct {
	Name        string        `env:"APP_NAME" envDefault:"relay" yaml:"name"`
	Mode        string        `env:"APP_MODE" envDefault:"development" yaml:"mode"`
	LogLevel    string        `env:"APP_LOG_LEVEL" yaml:"log_level"`
	MaxBodySize int64         `env:"APP_MAX_BODY_SIZE" envDefault:"10485760" yaml:"max_body_size"`
	AsyncStep   time.Duration `env:"APP_ASYNC_STEP" envDefault:"1s" yaml:"async_step"`

	Server server.Config `yaml:"server"`
}

func (c AppConfig) production() bool {
	return strings.EqualFold(c.Mode, "production")
}

func newLogger(cfg AppConfig) *slog.Logger {
	opts := []logger.Option{logger.WithDevelopment(cfg.Name)}
	if cfg.production() {
		opts = []logger.Option{logger.WithProduction(cfg.Name)}
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	return logger.New(opts...)
}
