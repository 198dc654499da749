// Package config loads the huffarc command's configuration.
//
// Configuration is loaded from a single YAML file named by:
//   - the HUFFARC_CONFIG environment variable, or
//   - the --config flag passed to the command
//
// There is no automatic discovery.  Without a file, Default applies, and
// command-line flags override whatever the file sets.  The codec itself
// takes no configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at the config file.
const EnvVar = "HUFFARC_CONFIG"

// Config is the configuration of the huffarc command.
type Config struct {
	// OutputDir is where artifacts and restored files are written.
	// Default: the current directory.
	OutputDir string `yaml:"output_dir"`

	// LogLevel is one of debug, info, warn, error.
	// Default: info
	LogLevel string `yaml:"log_level"`

	// Exclude lists glob patterns (doublestar syntax) of folder members
	// to leave out of folder artifacts.
	Exclude []string `yaml:"exclude"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		OutputDir: ".",
		LogLevel:  "info",
	}
}

// Path returns the config file to load: flagValue if set, otherwise the
// value of EnvVar.  An empty result means no file.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvVar)
}

// Load reads the file at path over Default.  An empty path returns Default.
// Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the log level and every exclude pattern.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
