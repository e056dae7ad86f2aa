// Package config loads service configuration from defaults, an optional
// YAML file and JOBTEGRITY_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "JOBTEGRITY"

// Default configuration values.
const (
	defaultPort         = 8080
	defaultLogLevel     = "info"
	defaultLogFormat    = "json"
	defaultModelPath    = "models/fake_job_model.json"
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 60 * time.Second
)

// Config holds all configuration for the detector service.
type Config struct {
	Port          int           `mapstructure:"port"`
	Debug         bool          `mapstructure:"debug"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFormat     string        `mapstructure:"log_format"`
	ModelPath     string        `mapstructure:"model_path"`
	HistoryDBPath string        `mapstructure:"history_db_path"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
}

// Load builds the configuration. file may be empty; environment variables
// override both defaults and file values (e.g. JOBTEGRITY_PORT,
// JOBTEGRITY_MODEL_PATH). HistoryDBPath empty means history is disabled.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", defaultPort)
	v.SetDefault("debug", false)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_format", defaultLogFormat)
	v.SetDefault("model_path", defaultModelPath)
	v.SetDefault("history_db_path", "")
	v.SetDefault("read_timeout", defaultReadTimeout)
	v.SetDefault("write_timeout", defaultWriteTimeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
