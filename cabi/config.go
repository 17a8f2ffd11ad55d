package cabi

import (
	"os"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wippyai/image-interop/decode"
	"github.com/wippyai/image-interop/errors"
)

// EnvPrefix is prepended to every Config variable.
const EnvPrefix = "IMAGEINTEROP_"

// EnvFile names an optional dotenv file loaded before parsing.
const EnvFile = EnvPrefix + "ENV_FILE"

// Config controls the exported loader.
type Config struct {
	MaxPixels int64 `env:"MAX_PIXELS" envDefault:"268435456"`
	Debug     bool  `env:"DEBUG"`
	Flip      bool  `env:"FLIP"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{MaxPixels: decode.DefaultMaxPixels}
}

// ParseEnv builds a Config from environ. A nil environ reads the process
// environment.
func ParseEnv(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return DefaultConfig(), errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "parse environment")
	}
	if cfg.MaxPixels < 0 {
		return DefaultConfig(), errors.InvalidInput(errors.PhaseLoad, EnvPrefix+"MAX_PIXELS must not be negative")
	}
	return cfg, nil
}

// LoadConfig loads the file named by IMAGEINTEROP_ENV_FILE, if set, and
// parses the process environment. Variables already set take precedence
// over the file.
func LoadConfig() (Config, error) {
	if path := os.Getenv(EnvFile); path != "" {
		if err := godotenv.Load(path); err != nil {
			return DefaultConfig(), errors.Load("env file "+path, err)
		}
	}
	return ParseEnv(nil)
}

// Decoder returns a decoder that allocates with the C allocator and
// preserves the source channel layout.
func (c Config) Decoder() *decode.Decoder {
	return decode.New(
		decode.WithAllocator(CAllocator{}),
		decode.WithFlipVertically(c.Flip),
		decode.WithMaxPixels(c.MaxPixels),
	)
}

// Logger returns a development logger when Debug is set, otherwise a no-op logger.
func (c Config) Logger() *zap.Logger {
	if !c.Debug {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Configure applies cfg to the exported loader and to package loggers.
func Configure(cfg Config) {
	l := cfg.Logger()
	SetLogger(l)
	decode.SetLogger(l)
	setDecoder(cfg.Decoder())
}
