package upstream

import "time"

// Config holds the knobs for the trends backend connection.
type Config struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	UserAgent       string        `mapstructure:"user_agent"`
	MaxConnsPerHost int           `mapstructure:"max_conns_per_host"`
	MaxIdleDuration time.Duration `mapstructure:"max_idle_duration"`
	MaxRetries      int           `mapstructure:"max_retries"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"`
}

// DefaultConfig never retries; searches see exactly one request per stage.
func DefaultConfig() Config {
	return Config{
		Timeout:         15 * time.Second,
		UserAgent:       "trends-go/1.0",
		MaxConnsPerHost: 16,
		MaxIdleDuration: 90 * time.Second,
		MaxRetries:      0,
		RetryDelay:      500 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.MaxConnsPerHost <= 0 {
		c.MaxConnsPerHost = d.MaxConnsPerHost
	}
	if c.MaxIdleDuration <= 0 {
		c.MaxIdleDuration = d.MaxIdleDuration
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = d.RetryDelay
	}
	return c
}
