package envconf

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SetsFromEnvironment(t *testing.T) {
	t.Setenv("TEST_PORT", "9090")
	t.Setenv("TEST_TIMEOUT", "1500ms")
	t.Setenv("TEST_LEVEL", "warn")

	type cfg struct {
		Port    uint16        `env:"TEST_PORT"`
		Timeout time.Duration `env:"TEST_TIMEOUT"`
		Level   slog.Level    `env:"TEST_LEVEL"`
	}

	var c cfg
	require.NoError(t, Load(&c))

	assert.Equal(t, uint16(9090), c.Port)
	assert.Equal(t, 1500*time.Millisecond, c.Timeout)
	assert.Equal(t, slog.LevelWarn, c.Level)
}

func TestLoad_DefaultsApplyWhenUnset(t *testing.T) {
	type cfg struct {
		Backend string        `env:"TEST_UNSET_BACKEND" default:"memory"`
		Wait    time.Duration `env:"TEST_UNSET_WAIT" default:"10s"`
	}

	var c cfg
	require.NoError(t, Load(&c))

	assert.Equal(t, "memory", c.Backend)
	assert.Equal(t, 10*time.Second, c.Wait)
}

func TestLoad_EnvironmentOverridesDefault(t *testing.T) {
	t.Setenv("TEST_BACKEND", "postgres")

	type cfg struct {
		Backend string `env:"TEST_BACKEND" default:"memory"`
	}

	var c cfg
	require.NoError(t, Load(&c))

	assert.Equal(t, "postgres", c.Backend)
}

func TestLoad_MissingRequired(t *testing.T) {
	type cfg struct {
		DSN string `env:"TEST_REQUIRED_DSN"`
	}

	var c cfg
	err := Load(&c)
	require.ErrorIs(t, err, ErrMissingRequired)
}

func TestLoad_RecursesIntoNestedStructs(t *testing.T) {
	t.Setenv("TEST_NESTED_DSN", "postgres://localhost/app")

	type pg struct {
		DSN string `env:"TEST_NESTED_DSN"`
	}
	type cfg struct {
		Postgres pg
	}

	var c cfg
	require.NoError(t, Load(&c))

	assert.Equal(t, "postgres://localhost/app", c.Postgres.DSN)
}
