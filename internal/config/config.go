package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Edgar  EdgarConfig  `yaml:"edgar" mapstructure:"edgar"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// EdgarConfig configures outbound SEC EDGAR access.
type EdgarConfig struct {
	// UserAgent is required by SEC fair-access policy. It should identify
	// the operator with a contact address.
	UserAgent         string `yaml:"user_agent" mapstructure:"user_agent"`
	RequestsPerSecond int    `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	MaxRetries        int    `yaml:"max_retries" mapstructure:"max_retries"`
}

// CacheConfig configures the HTTP response cache.
type CacheConfig struct {
	// Dir is where the persistent cache database lives. Configurable so
	// tests can isolate their own cache.
	Dir           string `yaml:"dir" mapstructure:"dir"`
	Driver        string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL   string `yaml:"database_url" mapstructure:"database_url"`
	MemoryEntries int    `yaml:"memory_entries" mapstructure:"memory_entries"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SECFACTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("edgar.user_agent", "secfacts research@sellsadvisors.com")
	v.SetDefault("edgar.requests_per_second", 10)
	v.SetDefault("edgar.max_retries", 3)
	v.SetDefault("cache.dir", defaultCacheDir())
	v.SetDefault("cache.driver", "sqlite")
	v.SetDefault("cache.memory_entries", 100)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	// SEC's documented env var takes precedence over the default contact
	// string but not over an explicit config value.
	if ua := os.Getenv("EDGAR_USER_AGENT"); ua != "" && !v.InConfig("edgar.user_agent") {
		cfg.Edgar.UserAgent = ua
	}

	return &cfg, nil
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".secfacts"
	}
	return filepath.Join(home, ".secfacts")
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
