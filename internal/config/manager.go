package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"wordstat-go/pkg/wordstat"
)

// ErrMissingToken is returned by RequireToken when no API token is configured
var ErrMissingToken = errors.New("API token is required - set WORDSTAT_API_TOKEN or pass --token")

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
	loaded bool
}

// NewManager returns a Manager reading WORDSTAT_* environment variables
// on top of an optional config file.
func NewManager() Manager {
	return NewManagerWithViper(viper.New())
}

// NewManagerWithViper uses v, so callers can bind command line flags
// to config keys before Load.
func NewManagerWithViper(v *viper.Viper) Manager {
	return &manager{viper: v}
}

// Load reads configPath (may be empty for environment-only setups),
// applies defaults and environment overrides, and validates the result.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setupViper(configPath)
	config, err := m.read()
	if err != nil {
		return nil, err
	}
	m.config = config
	m.loaded = true
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		return fmt.Errorf("config not loaded")
	}

	config, err := m.read()
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) read() (*Config, error) {
	if m.viper.ConfigFileUsed() != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func (m *manager) setupViper(configPath string) {
	if configPath != "" {
		m.viper.SetConfigFile(configPath)
	}

	m.viper.SetEnvPrefix("WORDSTAT")
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	conn := wordstat.DefaultConnectionConfig()
	m.viper.SetDefault("api.url", wordstat.ProductionURL)
	m.viper.SetDefault("api.token", "")
	m.viper.SetDefault("connection.max_conns_per_host", conn.MaxConnsPerHost)
	m.viper.SetDefault("connection.max_idle_conn_duration", conn.MaxIdleConnDuration)
	m.viper.SetDefault("connection.dial_timeout", conn.DialTimeout)
	m.viper.SetDefault("connection.read_timeout", conn.ReadTimeout)
	m.viper.SetDefault("connection.write_timeout", conn.WriteTimeout)
	m.viper.SetDefault("connection.request_timeout", conn.RequestTimeout)
	m.viper.SetDefault("connection.max_response_body_size", conn.MaxResponseBodySize)
	m.viper.SetDefault("connection.user_agent", conn.UserAgent)
	m.viper.SetDefault("logger.level", "warn")
	m.viper.SetDefault("logger.format", "json")
	m.viper.SetDefault("logger.output", "stderr")
	m.viper.SetDefault("logger.time_format", "")
	m.viper.SetDefault("sandbox.host", "127.0.0.1")
	m.viper.SetDefault("sandbox.port", 8089)
	m.viper.SetDefault("sandbox.tokens", []string{})
	m.viper.SetDefault("sandbox.ready_after", "0s")
	m.viper.SetDefault("sandbox.max_reports", 5)
}

func validateConfig(config *Config) error {
	u, err := url.Parse(config.API.URL)
	if err != nil {
		return fmt.Errorf("invalid api.url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.url must be an absolute http(s) URL: %q", config.API.URL)
	}

	conn := config.Connection
	if conn.MaxConnsPerHost < 0 || conn.MaxResponseBodySize < 0 {
		return fmt.Errorf("connection limits cannot be negative")
	}
	if conn.DialTimeout < 0 || conn.ReadTimeout < 0 || conn.WriteTimeout < 0 || conn.RequestTimeout < 0 || conn.MaxIdleConnDuration < 0 {
		return fmt.Errorf("connection timeouts cannot be negative")
	}

	if config.Sandbox.Port <= 0 || config.Sandbox.Port > 65535 {
		return fmt.Errorf("invalid sandbox port: %d", config.Sandbox.Port)
	}
	if config.Sandbox.MaxReports <= 0 {
		return fmt.Errorf("sandbox.max_reports must be positive")
	}
	if config.Sandbox.ReadyAfter < 0 {
		return fmt.Errorf("sandbox.ready_after cannot be negative")
	}

	return nil
}

// RequireToken fails when no API token is configured. Only commands that
// call the API need one.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.API.Token) == "" {
		return ErrMissingToken
	}
	return nil
}
