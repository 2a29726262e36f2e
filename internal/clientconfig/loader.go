// Package clientconfig loads settings for the relay agent and the timing
// client. Sources are applied in order defaults, YAML file, environment.
package clientconfig

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment prefixes
const (
	RelayEnvPrefix = "RELAY_"
	TimerEnvPrefix = "TIMER_"
)

// Defaults
const (
	DefaultAPIURL         = "http://localhost:8080"
	DefaultPollInterval   = 120 * time.Second
	DefaultFlushInterval  = 30 * time.Second
	DefaultRequestRetries = 2
	DefaultQueuePath      = "timer-queue.db"
	DefaultLogLevel       = "info"
)

// Validation errors
var (
	ErrAPIURLRequired      = errors.New("api_url is required")
	ErrAPIURLInvalid       = errors.New("api_url must be an absolute http(s) URL")
	ErrPollIntervalInvalid = errors.New("poll_interval must be positive")
	ErrQueuePathRequired   = errors.New("queue_path is required")
)

// Config is shared by both client binaries; each uses the fields it needs.
type Config struct {
	APIURL         string        `koanf:"api_url"`
	AccessCode     string        `koanf:"access_code"`
	AdminPIN       string        `koanf:"admin_pin"`
	WatchDir       string        `koanf:"watch_dir"`
	PollInterval   time.Duration `koanf:"poll_interval"`
	RequestRetries int           `koanf:"request_retries"`
	LogLevel       string        `koanf:"log_level"`

	MeetID        int64         `koanf:"meet_id"`
	QueuePath     string        `koanf:"queue_path"`
	FlushInterval time.Duration `koanf:"flush_interval"`
}

// HasCredentials reports whether both halves of the credential pair are set.
func (c *Config) HasCredentials() bool {
	return c.AccessCode != "" && c.AdminPIN != ""
}

// ValidateRelay checks the fields the relay agent depends on.
func (c *Config) ValidateRelay() error {
	if err := validateURL(c.APIURL); err != nil {
		return err
	}
	if c.PollInterval <= 0 {
		return ErrPollIntervalInvalid
	}
	return nil
}

// ValidateTimer checks the fields the timing client depends on.
func (c *Config) ValidateTimer() error {
	if err := validateURL(c.APIURL); err != nil {
		return err
	}
	if c.QueuePath == "" {
		return ErrQueuePathRequired
	}
	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return ErrAPIURLRequired
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrAPIURLInvalid
	}
	return nil
}

// Loader loads a Config from defaults, an optional YAML file and the environment.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
}

// Option configures a Loader
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the YAML file. A file that does not exist is an error.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// NewLoader creates a loader using the relay prefix unless overridden.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: RelayEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every source and returns the merged Config.
func (l *Loader) Load() (*Config, error) {
	if err := l.k.Load(mapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if l.filePath != "" {
		if err := l.k.Load(file.Provider(l.filePath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load file %s: %w", l.filePath, err)
		}
	}

	// RELAY_ACCESS_CODE -> access_code
	transform := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, l.envPrefix))
	}
	if err := l.k.Load(env.Provider(l.envPrefix, ".", transform), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	return &cfg, nil
}

// Load is a shorthand for NewLoader(opts...).Load().
func Load(opts ...Option) (*Config, error) {
	return NewLoader(opts...).Load()
}

// ExistingFile returns path when it names a regular file, otherwise "".
func ExistingFile(path string) string {
	if path == "" {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	return path
}

func defaults() map[string]any {
	return map[string]any{
		"api_url":         DefaultAPIURL,
		"poll_interval":   DefaultPollInterval.String(),
		"request_retries": DefaultRequestRetries,
		"log_level":       DefaultLogLevel,
		"queue_path":      DefaultQueuePath,
		"flush_interval":  DefaultFlushInterval.String(),
	}
}

type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("clientconfig: map provider has no byte form")
}

func (m mapProvider) Read() (map[string]any, error) {
	return m, nil
}
