package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variables read by Load.
const (
	EnvTickRate   = "TETRIS_TICK_RATE"
	EnvSeed       = "TETRIS_SEED"
	EnvLogLevel   = "TETRIS_LOG_LEVEL"
	EnvLogFile    = "TETRIS_LOG_FILE"
	EnvMusic      = "TETRIS_MUSIC"
	EnvStartLevel = "TETRIS_START_LEVEL"
)

type Config struct {
	TickRate   int    // simulation ticks per second
	Seed       uint64 // 0 seeds from the clock
	LogLevel   string
	LogFile    string // "" or "-" disables logging
	Music      bool
	StartLevel int
}

func Default() Config {
	return Config{
		TickRate:   60,
		LogLevel:   "info",
		LogFile:    filepath.Join(os.TempDir(), "go-tetris.log"),
		Music:      true,
		StartLevel: 1,
	}
}

// Load reads the given .env files (default ".env", missing files are
// ignored when no explicit file is given) and then the process environment.
func Load(files ...string) (Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Config{}, fmt.Errorf("loading env files: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from Default overlaid with the variables found by lookup.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()

	if v, ok := lookup(EnvTickRate); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTickRate, err)
		}
		c.TickRate = n
	}
	if v, ok := lookup(EnvSeed); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = n
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.LogFile = v
	}
	if v, ok := lookup(EnvMusic); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMusic, err)
		}
		c.Music = b
	}
	if v, ok := lookup(EnvStartLevel); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvStartLevel, err)
		}
		c.StartLevel = n
	}

	return c, c.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.TickRate < 1 || c.TickRate > 1000 {
		return fmt.Errorf("tick rate %d out of range 1..1000", c.TickRate)
	}
	if c.StartLevel < 1 || c.StartLevel > 10 {
		return fmt.Errorf("start level %d out of range 1..10", c.StartLevel)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}
