// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use (github.com/joho/godotenv) and
// parses struct fields with github.com/caarlos0/env.
//
//	type AppConfig struct {
//		Mode        string `env:"APP_MODE" envDefault:"development" yaml:"mode"`
//		MaxBodySize int64  `env:"APP_MAX_BODY_SIZE" envDefault:"10485760" yaml:"max_body_size"`
//		Server      server.Config
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg) // panics on failure, for startup
//
// # Caching
//
// Each configuration type is parsed once per process; later Load calls for the
// same type copy the cached value. Different types are cached independently.
//
// # Files
//
// LoadFile parses the environment first and then overlays a YAML file, so a
// key present in the file wins over both the environment and envDefault:
//
//	config.LoadFile("relay.yaml", &cfg)
package config
