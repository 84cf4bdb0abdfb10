package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/zeusync/byt/internal/core/observability/log"
)

// EnvPrefix prefixes every environment override, e.g. BYT_LOG_LEVEL.
const EnvPrefix = "BYT"

// Profiling modes accepted by DemoConfig.Profile
const (
	ProfileOff = ""
	ProfileCPU = "cpu"
	ProfileMem = "mem"
)

// Config represents the application configuration
type Config struct {
	Log  LogConfig  `mapstructure:"log"`
	Demo DemoConfig `mapstructure:"demo"`
}

// LogConfig represents logger configuration
type LogConfig struct {
	Level    string   `mapstructure:"level"`
	Encoding string   `mapstructure:"encoding"` // console or json
	Outputs  []string `mapstructure:"outputs"`
}

// DemoConfig drives the byt-demo command
type DemoConfig struct {
	Worlds     int    `mapstructure:"worlds"`      // isolated supervisors run side by side
	Ticks      int    `mapstructure:"ticks"`       // ticks per world
	Scenario   string `mapstructure:"scenario"`    // scenario file, built-in scenario when empty
	Profile    string `mapstructure:"profile"`     // "", cpu or mem
	ProfileDir string `mapstructure:"profile_dir"` // output directory of profiles
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.outputs", []string{"stderr"})

	v.SetDefault("demo.worlds", 4)
	v.SetDefault("demo.ticks", 100)
	v.SetDefault("demo.scenario", "")
	v.SetDefault("demo.profile", ProfileOff)
	v.SetDefault("demo.profile_dir", ".")
}

// Load reads the configuration file at path, if any, and applies BYT_
// environment overrides on top of it. Environment variables take precedence
// over the file, which takes precedence over defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Encoding {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.encoding: unsupported %q", c.Log.Encoding))
	}
	if c.Demo.Worlds < 1 {
		errs = append(errs, fmt.Errorf("demo.worlds: must be at least 1, got %d", c.Demo.Worlds))
	}
	if c.Demo.Ticks < 0 {
		errs = append(errs, fmt.Errorf("demo.ticks: must not be negative, got %d", c.Demo.Ticks))
	}
	switch c.Demo.Profile {
	case ProfileOff, ProfileCPU, ProfileMem:
	default:
		errs = append(errs, fmt.Errorf("demo.profile: unsupported %q", c.Demo.Profile))
	}
	return errors.Join(errs...)
}

// LoggerOptions converts the log section into logger options.
func (c LogConfig) LoggerOptions() (log.Options, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return log.Options{}, err
	}
	return log.Options{Level: level, Encoding: c.Encoding, Outputs: c.Outputs}, nil
}
