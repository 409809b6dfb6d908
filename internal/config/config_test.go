package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	c, err := FromEnv(mapLookup(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, 60, c.TickRate)
	assert.True(t, c.Music)
}

func TestFromEnv_Overrides(t *testing.T) {
	c, err := FromEnv(mapLookup(map[string]string{
		EnvTickRate:   "30",
		EnvSeed:       "42",
		EnvLogLevel:   "debug",
		EnvLogFile:    "-",
		EnvMusic:      "false",
		EnvStartLevel: "5",
	}))
	require.NoError(t, err)

	assert.Equal(t, Config{
		TickRate:   30,
		Seed:       42,
		LogLevel:   "debug",
		LogFile:    "-",
		Music:      false,
		StartLevel: 5,
	}, c)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"tick rate not a number": {EnvTickRate: "fast"},
		"tick rate zero":         {EnvTickRate: "0"},
		"negative seed":          {EnvSeed: "-1"},
		"bad music flag":         {EnvMusic: "loud"},
		"level too high":         {EnvStartLevel: "11"},
		"unknown log level":      {EnvLogLevel: "chatty"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(mapLookup(env))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TETRIS_START_LEVEL=3\nTETRIS_TICK_RATE=50\n"), 0o644))
	t.Setenv(EnvStartLevel, "")
	os.Unsetenv(EnvStartLevel)
	t.Setenv(EnvTickRate, "")
	os.Unsetenv(EnvTickRate)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.StartLevel)
	assert.Equal(t, 50, c.TickRate)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TETRIS_START_LEVEL=3\n"), 0o644))
	t.Setenv(EnvStartLevel, "7")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, c.StartLevel)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}
