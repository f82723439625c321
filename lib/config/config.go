// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the vending configuration file.
//
// Configuration comes from a single YAML file named by the --config
// flag ([LoadFile]) or the VENDING_CONFIG environment variable
// ([Load]). There is no discovery and no search path. Values absent
// from the file keep the [Default] values.
//
// After loading, ${VAR} and ${VAR:-default} patterns in path fields are
// expanded. ${VENDING_HOME} refers to the state directory (default
// ~/.local/share/vending). No other environment variables override
// configuration values, except that the credential passphrase is read
// from the variable named by credentials.passphrase_env.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable Load reads the file path from.
const EnvironmentVariable = "VENDING_CONFIG"

// Config is the vending configuration.
type Config struct {
	// Home is the state directory. Other paths default to locations
	// inside it.
	Home string `yaml:"home"`

	Device      DeviceConfig      `yaml:"device"`
	Upstream    UpstreamConfig    `yaml:"upstream"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
}

// DeviceConfig selects the emulated handset.
type DeviceConfig struct {
	// ProfilesFile is a YAML file of device profiles. Empty uses the
	// profiles compiled into the binary.
	ProfilesFile string `yaml:"profiles_file"`

	// Profile names the profile to use.
	// Default: px_3a
	Profile string `yaml:"profile"`

	// Locale is sent at checkin.
	// Default: en_US
	Locale string `yaml:"locale"`

	// TimeZone overrides the profile's timezone when set.
	TimeZone string `yaml:"timezone"`
}

// UpstreamConfig configures the connection to the vendor.
type UpstreamConfig struct {
	// BaseURL is the vendor host.
	// Default: https://android.clients.google.com
	BaseURL string `yaml:"base_url"`

	// RequestTimeout bounds each request.
	// Default: 30s
	RequestTimeout Duration `yaml:"request_timeout"`

	// LoginTimeout bounds the wait for an interactive login. Zero
	// waits indefinitely.
	// Default: 10m
	LoginTimeout Duration `yaml:"login_timeout"`
}

// CredentialsConfig configures durable credential persistence.
type CredentialsConfig struct {
	// Path is the credential file.
	// Default: ${VENDING_HOME}/credential
	Path string `yaml:"path"`

	// User is the default account for commands that do not name one.
	User string `yaml:"user"`

	// AgeRecipient, when set, seals the file to this age1... key.
	AgeRecipient string `yaml:"age_recipient"`

	// AgeIdentityFile holds the identity matching AgeRecipient.
	AgeIdentityFile string `yaml:"age_identity_file"`

	// PassphraseEnv, when set, names the environment variable holding
	// a passphrase the file is sealed with. Exclusive with
	// AgeRecipient.
	PassphraseEnv string `yaml:"passphrase_env"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// ListenAddress is the TCP address to serve on.
	// Default: 127.0.0.1:5000
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout and WriteTimeout bound each HTTP exchange.
	// Default: 30s and 5m (downloads wait on purchase and delivery).
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	// Default: info
	Level string `yaml:"level"`

	// Format is text, json, or auto (text on a terminal, json
	// otherwise).
	// Default: text
	Format string `yaml:"format"`
}

// Duration is a time.Duration written in YAML as a Go duration string
// such as "30s" or "5m".
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (duration *Duration) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*duration = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration as a string.
func (duration Duration) MarshalYAML() (any, error) {
	return time.Duration(duration).String(), nil
}

// Std returns the value as a time.Duration.
func (duration Duration) Std() time.Duration { return time.Duration(duration) }

// Default returns the configuration used for fields the file omits.
func Default() *Config {
	return &Config{
		Home: "${HOME}/.local/share/vending",
		Device: DeviceConfig{
			Profile: "px_3a",
			Locale:  "en_US",
		},
		Upstream: UpstreamConfig{
			BaseURL:        "https://android.clients.google.com",
			RequestTimeout: Duration(30 * time.Second),
			LoginTimeout:   Duration(10 * time.Minute),
		},
		Credentials: CredentialsConfig{
			Path: "${VENDING_HOME}/credential",
		},
		Server: ServerConfig{
			ListenAddress: "127.0.0.1:5000",
			ReadTimeout:   Duration(30 * time.Second),
			WriteTimeout:  Duration(5 * time.Minute),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads the file named by VENDING_CONFIG. There is no fallback:
// an unset variable is an error.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your vending.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path, expands path variables, and
// validates the result.
func LoadFile(path string) (*Config, error) {
	config := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	config.expandVariables()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Resolve expands path variables in a configuration built without a
// file, such as Default() adjusted by flags.
func (config *Config) Resolve() error {
	config.expandVariables()
	return config.Validate()
}

func (config *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	config.Home = expandVars(config.Home, vars)
	vars["VENDING_HOME"] = config.Home

	config.Device.ProfilesFile = expandVars(config.Device.ProfilesFile, vars)
	config.Credentials.Path = expandVars(config.Credentials.Path, vars)
	config.Credentials.AgeIdentityFile = expandVars(config.Credentials.AgeIdentityFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces ${VAR} and ${VAR:-default}. vars take precedence
// over the environment.
func expandVars(text string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(text, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration and reports every problem found.
func (config *Config) Validate() error {
	var errs []error

	if config.Device.Profile == "" {
		errs = append(errs, errors.New("device.profile is required"))
	}

	if config.Upstream.BaseURL == "" {
		errs = append(errs, errors.New("upstream.base_url is required"))
	} else if parsed, err := url.Parse(config.Upstream.BaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("upstream.base_url %q is not an absolute URL", config.Upstream.BaseURL))
	}
	if config.Upstream.RequestTimeout < 0 {
		errs = append(errs, errors.New("upstream.request_timeout must not be negative"))
	}
	if config.Upstream.LoginTimeout < 0 {
		errs = append(errs, errors.New("upstream.login_timeout must not be negative"))
	}

	if config.Credentials.Path == "" {
		errs = append(errs, errors.New("credentials.path is required"))
	}
	if config.Credentials.AgeRecipient != "" && config.Credentials.PassphraseEnv != "" {
		errs = append(errs, errors.New("credentials.age_recipient and credentials.passphrase_env are mutually exclusive"))
	}
	if config.Credentials.AgeRecipient != "" && !strings.HasPrefix(config.Credentials.AgeRecipient, "age1") {
		errs = append(errs, fmt.Errorf("credentials.age_recipient %q is not an age1... public key", config.Credentials.AgeRecipient))
	}

	if config.Server.ListenAddress == "" {
		errs = append(errs, errors.New("server.listen_address is required"))
	}

	if _, err := config.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch config.Log.Format {
	case "text", "json", "auto":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text, json or auto, got %q", config.Log.Format))
	}

	return errors.Join(errs...)
}

// SlogLevel parses Level.
func (log LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// EnsureHome creates the state directory and the credential file's
// directory with mode 0700.
func (config *Config) EnsureHome() error {
	for _, path := range []string{config.Home, filepath.Dir(config.Credentials.Path)} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o700); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}
