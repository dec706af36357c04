package config

import (
	"trends-go/pkg/logger"
	"trends-go/pkg/upstream"
)

type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Upstream upstream.Config `mapstructure:"upstream"`
	Search   SearchConfig    `mapstructure:"search"`
	Logger   logger.Config   `mapstructure:"logger"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// SearchConfig seeds every filter built by the binaries.
type SearchConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Location string `mapstructure:"location"`
	Language string `mapstructure:"language"`
	Category int    `mapstructure:"category"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}

// Defaults is what runs when no file is given.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Upstream: upstream.DefaultConfig(),
		Search: SearchConfig{
			BaseURL:  "https://trends.google.com",
			Location: "US",
			Language: "en-US",
			Category: 0,
		},
		Logger: logger.Config{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}
