package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrNilConfig  = errors.New("config: nil destination")
	ErrParseEnv   = errors.New("config: failed to parse environment")
	ErrReadFile   = errors.New("config: failed to read config file")
	ErrDecodeFile = errors.New("config: failed to decode config file")
)

var (
	dotenvOnce sync.Once
	loadMu     sync.Mutex
	cache      sync.Map // reflect.Type -> T
)

// loadDotenv reads .env into the process environment once.
// A missing file is not an error; existing variables are never overridden.
func loadDotenv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load fills cfg from the environment. The first call for a type parses the
// environment; later calls for the same type copy the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	key := reflect.TypeFor[T]()
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	loadMu.Lock()
	defer loadMu.Unlock()

	// another goroutine may have loaded it while we waited
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	loadDotenv()

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("%w: %w", ErrParseEnv, err)
	}

	cache.Store(key, loaded)
	*cfg = loaded
	return nil
}

// MustLoad is like Load but panics on error. Intended for startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// LoadFile fills cfg from the environment (defaults included) and then
// overlays the YAML file at path, so values present in the file win.
// An empty path is the same as Load. LoadFile does not use the cache.
func LoadFile[T any](path string, cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if path == "" {
		return Load(cfg)
	}

	loadDotenv()

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("%w: %w", ErrParseEnv, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecodeFile, path, err)
	}

	*cfg = loaded
	return nil
}
