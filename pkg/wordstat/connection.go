package wordstat

import (
	"net"
	"time"

	"github.com/valyala/fasthttp"
)

// ConnectionConfig tunes the fasthttp client behind HTTPTransport
type ConnectionConfig struct {
	MaxConnsPerHost     int           `mapstructure:"max_conns_per_host"`
	MaxIdleConnDuration time.Duration `mapstructure:"max_idle_conn_duration"`
	DialTimeout         time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout         time.Duration `mapstructure:"read_timeout"`
	WriteTimeout        time.Duration `mapstructure:"write_timeout"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	MaxResponseBodySize int           `mapstructure:"max_response_body_size"`
	UserAgent           string        `mapstructure:"user_agent"`
}

// DefaultConnectionConfig returns settings suited to the Wordstat API:
// few concurrent calls, report bodies of a few hundred kilobytes.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxConnsPerHost:     16,
		MaxIdleConnDuration: 90 * time.Second,
		DialTimeout:         10 * time.Second,
		ReadTimeout:         30 * time.Second,
		WriteTimeout:        10 * time.Second,
		RequestTimeout:      60 * time.Second,
		MaxResponseBodySize: 16 << 20,
		UserAgent:           "wordstat-go/1.0",
	}
}

// withDefaults fills zero fields from DefaultConnectionConfig
func (c ConnectionConfig) withDefaults() ConnectionConfig {
	def := DefaultConnectionConfig()
	if c.MaxConnsPerHost <= 0 {
		c.MaxConnsPerHost = def.MaxConnsPerHost
	}
	if c.MaxIdleConnDuration <= 0 {
		c.MaxIdleConnDuration = def.MaxIdleConnDuration
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = def.DialTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.MaxResponseBodySize <= 0 {
		c.MaxResponseBodySize = def.MaxResponseBodySize
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	return c
}

func newFastHTTPClient(config ConnectionConfig) *fasthttp.Client {
	return &fasthttp.Client{
		Name:                config.UserAgent,
		MaxConnsPerHost:     config.MaxConnsPerHost,
		MaxIdleConnDuration: config.MaxIdleConnDuration,
		ReadTimeout:         config.ReadTimeout,
		WriteTimeout:        config.WriteTimeout,
		MaxResponseBodySize: config.MaxResponseBodySize,
		Dial: func(addr string) (net.Conn, error) {
			return fasthttp.DialTimeout(addr, config.DialTimeout)
		},
	}
}
