package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by config structs that check themselves after parsing.
type Validator interface {
	Validate() error
}

type configCache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	globalCache = &configCache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}

	defaultEnvLoaded sync.Once
)

// LoadEnvFiles loads the given dotenv files into the process environment.
// Variables already set are not overridden. It must be called before the
// first Load to have an effect on cached configs.
func LoadEnvFiles(paths ...string) error {
	var err error
	defaultEnvLoaded.Do(func() {
		err = godotenv.Load(paths...)
	})
	if err != nil {
		return errors.Join(ErrEnvFile, err)
	}
	return nil
}

// Load parses environment variables into v. Each config type is parsed once
// and served from cache afterwards. When no env file was loaded explicitly,
// ./.env is loaded if present.
//
// Example:
//
//	type SMTPConfig struct {
//		Host string `env:"EMAIL_HOST,required"`
//		Port int    `env:"EMAIL_PORT" envDefault:"465"`
//	}
//
//	var cfg SMTPConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	globalCache.mu.RLock()
	if cached, ok := globalCache.values[typeName]; ok {
		*v = cached.(T)
		globalCache.mu.RUnlock()
		return nil
	}
	globalCache.mu.RUnlock()

	globalCache.mu.Lock()
	once, exists := globalCache.onces[typeName]
	if !exists {
		once = new(sync.Once)
		globalCache.onces[typeName] = once
	}
	globalCache.mu.Unlock()

	var err error
	once.Do(func() {
		err = parse(v)
		if err != nil {
			// Let a later call retry, e.g. after the environment was fixed.
			globalCache.mu.Lock()
			delete(globalCache.onces, typeName)
			globalCache.mu.Unlock()
			return
		}

		globalCache.mu.Lock()
		globalCache.values[typeName] = *v
		globalCache.mu.Unlock()
	})
	if err != nil {
		return err
	}

	globalCache.mu.RLock()
	defer globalCache.mu.RUnlock()
	if cached, ok := globalCache.values[typeName]; ok {
		*v = cached.(T)
		return nil
	}

	return ErrConfigNotLoaded
}

// Parse fills v from the environment without caching.
func Parse[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	return parse(v)
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func parse[T any](v *T) error {
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if val, ok := any(v).(Validator); ok {
		if err := val.Validate(); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}
	return nil
}

func getTypeName[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}
