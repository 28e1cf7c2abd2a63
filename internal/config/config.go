// Package config resolves process settings from defaults, the environment and
// an optional env file. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/studiowebux/diffreq/internal/executor"
	"github.com/studiowebux/diffreq/internal/logging"
)

const (
	// DefaultDiffConfig is the config file xdiff reads when none is given
	DefaultDiffConfig = "xdiff.yml"
	// DefaultRequestConfig is the config file xreq reads when none is given
	DefaultRequestConfig = "xreq.yml"
	// DefaultEnvFile is loaded when present and no env file is given
	DefaultEnvFile = ".env"
)

// Environment variables
const (
	EnvConfig    = "DIFFREQ_CONFIG"
	EnvTimeout   = "DIFFREQ_TIMEOUT"
	EnvLogLevel  = "DIFFREQ_LOG_LEVEL"
	EnvLogFormat = "DIFFREQ_LOG_FORMAT"
	EnvColor     = "DIFFREQ_COLOR"
	EnvCAFile    = "DIFFREQ_CA_FILE"
	EnvCertFile  = "DIFFREQ_CERT_FILE"
	EnvKeyFile   = "DIFFREQ_KEY_FILE"
	EnvInsecure  = "DIFFREQ_INSECURE"
)

// ColorMode controls colored output
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode accepts auto, always or never in any case
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// Config holds the settings shared by both binaries
type Config struct {
	ConfigPath string
	Timeout    time.Duration
	LogLevel   logging.Level
	LogFormat  logging.Format
	Color      ColorMode

	CAFile             string
	CertFile           string
	KeyFile            string
	InsecureSkipVerify bool
}

// Load reads envFile into the environment, then builds a Config from the
// environment with defaultConfigPath as the config file fallback. An empty
// envFile loads DefaultEnvFile when it exists. Variables already set in the
// environment win over the file.
func Load(envFile, defaultConfigPath string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", DefaultEnvFile, err)
	}

	timeout, err := getEnvAsDuration(EnvTimeout, executor.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	color, err := ParseColorMode(getEnv(EnvColor, string(ColorAuto)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvColor, err)
	}

	logDefaults := logging.DefaultConfig()
	level := logDefaults.Level
	if raw := getEnv(EnvLogLevel, ""); raw != "" {
		if level, err = logging.ParseLevel(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	return &Config{
		ConfigPath:         getEnv(EnvConfig, defaultConfigPath),
		Timeout:            timeout,
		LogLevel:           level,
		LogFormat:          logging.ParseFormat(getEnv(EnvLogFormat, string(logDefaults.Format))),
		Color:              color,
		CAFile:             getEnv(EnvCAFile, ""),
		CertFile:           getEnv(EnvCertFile, ""),
		KeyFile:            getEnv(EnvKeyFile, ""),
		InsecureSkipVerify: getEnvAsBool(EnvInsecure, false),
	}, nil
}

// ClientOptions returns the HTTP client settings
func (c *Config) ClientOptions() executor.ClientOptions {
	return executor.ClientOptions{
		Timeout:            c.Timeout,
		CAFile:             c.CAFile,
		CertFile:           c.CertFile,
		KeyFile:            c.KeyFile,
		InsecureSkipVerify: c.InsecureSkipVerify,
	}
}

// Logging returns the logger settings
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.LogLevel
	cfg.Format = c.LogFormat
	return cfg
}

// UseColor decides whether output written to f gets colored. NO_COLOR
// disables auto mode.
func (c *Config) UseColor(f *os.File) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(f)
}

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts a Go duration ("10s") or a number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}
