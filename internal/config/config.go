package config

import (
	"time"

	"wordstat-go/pkg/logger"
	"wordstat-go/pkg/wordstat"
)

type Config struct {
	API        APIConfig                 `mapstructure:"api"`
	Connection wordstat.ConnectionConfig `mapstructure:"connection"`
	Logger     logger.Config             `mapstructure:"logger"`
	Sandbox    SandboxConfig             `mapstructure:"sandbox"`
}

type APIConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

// SandboxConfig configures the local API emulator
type SandboxConfig struct {
	Host       string        `mapstructure:"host"`
	Port       int           `mapstructure:"port"`
	Tokens     []string      `mapstructure:"tokens"`
	ReadyAfter time.Duration `mapstructure:"ready_after"`
	MaxReports int           `mapstructure:"max_reports"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}
