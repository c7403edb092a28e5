// Package config loads typed configuration structs from environment
// variables. A .env file in the working directory is loaded once per
// process, and each configuration type is parsed once and cached, so
// packages can call Load independently without re-reading the environment.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type cache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	globalCache = &cache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}

	dotenvOnce sync.Once
)

// Load parses environment variables into the provided configuration struct
// based on its env tags. Each unique type is parsed once per process;
// subsequent calls for the same type return the cached value.
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	typeName := typeNameOf[T]()

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
		if parseErr := env.Parse(v); parseErr != nil {
			err = errors.Join(ErrParsingConfig, parseErr)
			return
		}
		globalCache.mu.Lock()
		globalCache.values[typeName] = *v // store a copy, callers may mutate theirs
		globalCache.mu.Unlock()
	})
	if err != nil {
		return err
	}

	// A concurrent caller may have hit the once first; read the cached copy.
	globalCache.mu.RLock()
	defer globalCache.mu.RUnlock()
	if cached, ok := globalCache.values[typeName]; ok {
		*v = cached.(T)
		return nil
	}
	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics on failure. Use it for configuration
// the application cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func typeNameOf[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
