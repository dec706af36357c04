package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

const envPrefix = "TRENDS"

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
	path   string
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// Load reads configPath when it is not empty. TRENDS_* variables override
// both the file and the defaults, e.g. TRENDS_SERVER_PORT.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setupViper(configPath)

	config, err := m.read()
	if err != nil {
		return nil, err
	}

	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
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

func (m *manager) setupViper(configPath string) {
	m.path = configPath
	setDefaults(m.viper, Defaults())

	if configPath != "" {
		m.viper.SetConfigFile(configPath)
	}

	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()
}

func (m *manager) read() (*Config, error) {
	if m.path != "" {
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

// setDefaults registers every key so AutomaticEnv can see it without a file.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)

	v.SetDefault("upstream.timeout", d.Upstream.Timeout)
	v.SetDefault("upstream.user_agent", d.Upstream.UserAgent)
	v.SetDefault("upstream.max_conns_per_host", d.Upstream.MaxConnsPerHost)
	v.SetDefault("upstream.max_idle_duration", d.Upstream.MaxIdleDuration)
	v.SetDefault("upstream.max_retries", d.Upstream.MaxRetries)
	v.SetDefault("upstream.retry_delay", d.Upstream.RetryDelay)

	v.SetDefault("search.base_url", d.Search.BaseURL)
	v.SetDefault("search.location", d.Search.Location)
	v.SetDefault("search.language", d.Search.Language)
	v.SetDefault("search.category", d.Search.Category)

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("logger.output", d.Logger.Output)
	v.SetDefault("logger.time_format", d.Logger.TimeFormat)
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive")
	}

	if config.Upstream.MaxRetries < 0 {
		return fmt.Errorf("max_retries cannot be negative")
	}

	if !strings.HasPrefix(config.Search.BaseURL, "http://") && !strings.HasPrefix(config.Search.BaseURL, "https://") {
		return fmt.Errorf("invalid base_url: %q", config.Search.BaseURL)
	}

	if len(config.Search.Location) != 2 {
		return fmt.Errorf("location must be a two-letter country code, got %q", config.Search.Location)
	}

	if _, err := language.Parse(config.Search.Language); err != nil {
		return fmt.Errorf("invalid language %q: %w", config.Search.Language, err)
	}

	if config.Search.Category < 0 {
		return fmt.Errorf("category cannot be negative")
	}

	return nil
}
