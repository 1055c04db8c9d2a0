package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dublin-on-time/dublinontime/internal/respond"
)

type RTPIConfig struct {
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
	Timeout string `yaml:"timeout"`
}

func (r RTPIConfig) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid rtpi timeout %q: %w", r.Timeout, err)
	}
	return d, nil
}

type ResponseConfig struct {
	MaxBuses        int             `yaml:"max_buses" validate:"gte=0"`
	DetailSeparator string          `yaml:"detail_separator"`
	ClockSeparator  string          `yaml:"clock_separator"`
	Phrases         respond.Phrases `yaml:"phrases"`
}

type MonitorConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Interval      string `yaml:"interval"`
	ReferenceStop int    `yaml:"reference_stop" validate:"gte=0"`
}

func (m MonitorConfig) IntervalDuration() (time.Duration, error) {
	d, err := time.ParseDuration(m.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid monitor interval %q: %w", m.Interval, err)
	}
	return d, nil
}

type Config struct {
	Listen   string         `yaml:"listen" validate:"required"`
	RTPI     RTPIConfig     `yaml:"rtpi"`
	Response ResponseConfig `yaml:"response"`
	Monitor  MonitorConfig  `yaml:"monitor"`
}

// Default returns the configuration used when no file overrides anything:
// the public RTPI site, five buses per reply, spoken-voice separators.
func Default() *Config {
	return &Config{
		Listen: ":8080",
		RTPI: RTPIConfig{
			Timeout: "30s",
		},
		Response: ResponseConfig{
			MaxBuses: 5,
		},
		Monitor: MonitorConfig{
			Interval: "5m",
		},
	}
}

// Load reads the YAML config at path on top of the defaults. A missing file
// is fine; the defaults alone run a working service.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if _, err := c.RTPI.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Monitor.IntervalDuration(); err != nil {
		return err
	}
	if c.Monitor.Enabled && c.Monitor.ReferenceStop == 0 {
		return fmt.Errorf("monitor: reference_stop is required when enabled")
	}

	return nil
}
