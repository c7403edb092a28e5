package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/routekit/pkg/config"
)

type serverConfig struct {
	Addr  string `env:"TEST_SERVER_ADDR" envDefault:":8080"`
	Debug bool   `env:"TEST_SERVER_DEBUG" envDefault:"false"`
}

type cachedConfig struct {
	Value string `env:"TEST_CACHED_VALUE" envDefault:"initial"`
}

type firstConfig struct {
	Value string `env:"TEST_FIRST_VALUE" envDefault:"first"`
}

type secondConfig struct {
	Value string `env:"TEST_SECOND_VALUE" envDefault:"second"`
}

type requiredConfig struct {
	Required string `env:"TEST_REQUIRED_VALUE,required"`
}

func TestLoad(t *testing.T) {
	t.Run("reads environment variables", func(t *testing.T) {
		t.Setenv("TEST_SERVER_ADDR", ":9999")
		t.Setenv("TEST_SERVER_DEBUG", "true")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":9999", cfg.Addr)
		assert.True(t, cfg.Debug)
	})

	t.Run("caches the first load per type", func(t *testing.T) {
		t.Setenv("TEST_CACHED_VALUE", "from_env")

		var first cachedConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, "from_env", first.Value)

		// A later environment change does not affect the cached value.
		t.Setenv("TEST_CACHED_VALUE", "changed")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "from_env", second.Value)
	})

	t.Run("different types load independently", func(t *testing.T) {
		var a firstConfig
		var b secondConfig
		require.NoError(t, config.Load(&a))
		require.NoError(t, config.Load(&b))
		assert.Equal(t, "first", a.Value)
		assert.Equal(t, "second", b.Value)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer fails", func(t *testing.T) {
		err := config.Load[serverConfig](nil)
		require.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on missing required variable", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("succeeds with defaults", func(t *testing.T) {
		assert.NotPanics(t, func() {
			var cfg serverConfig
			config.MustLoad(&cfg)
		})
	})
}
