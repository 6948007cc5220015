package httpapi

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/lumberjack"
)

// Config describes a server deployment, loaded from a TOML file.
type Config struct {
	// Address is the listen address, e.g. ":8000".
	Address string `toml:"address"`
	// AllowedOrigins lists the CORS origins permitted to call the API. Empty
	// allows all origins.
	AllowedOrigins []string  `toml:"allowed_origins"`
	Log            LogConfig `toml:"log"`
}

// LogConfig configures where log messages go. With no Logfile, messages go to
// stdout.
type LogConfig struct {
	Logfile string `toml:"logfile"`
	MaxSize int    `toml:"max_log_size"` // megabytes
	MaxAge  int    `toml:"max_log_age"`  // days
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{Address: ":8000"}
}

// LoadConfig reads a Config from the TOML file at the given path, filling
// unset fields from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if c.Address == "" {
		c.Address = DefaultConfig().Address
	}
	return c, nil
}

// NewLogger returns a structured logger writing to the configured rotating log
// file, or to stdout when no file is configured.
func (c LogConfig) NewLogger() *slog.Logger {
	var w io.Writer = os.Stdout
	if c.Logfile != "" {
		w = &lumberjack.Logger{
			Filename: c.Logfile,
			MaxSize:  c.MaxSize, // megabytes
			MaxAge:   c.MaxAge,  // days
		}
	}
	return slog.New(slog.NewTextHandler(w, nil))
}
