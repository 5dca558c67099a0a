// Package config loads Pitstop settings and exposes them to modules through
// the plugin.Config interface.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/HerbHall/pitstop/pkg/plugin"
)

// EnvPrefix namespaces environment overrides: PITSTOP_SERVER_PORT=9090.
const EnvPrefix = "PITSTOP"

// Compile-time interface guard.
var _ plugin.Config = (*ViperConfig)(nil)

// ViperConfig wraps a Viper instance to implement plugin.Config.
type ViperConfig struct {
	v *viper.Viper
}

// New creates a Config backed by the given Viper instance.
func New(v *viper.Viper) *ViperConfig {
	if v == nil {
		v = viper.New()
	}
	return &ViperConfig{v: v}
}

// Load reads settings in increasing precedence: built-in defaults, the YAML
// file, then environment variables. A .env file in the working directory is
// loaded into the environment first; variables already set win.
func Load(configPath string) (*ViperConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("pitstop")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/pitstop")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return New(v), nil
}

// SetDefaults installs the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.dev_mode", false)
	v.SetDefault("server.rate_limit_rps", 100)
	v.SetDefault("server.rate_limit_burst", 200)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("database.path", "pitstop.db")
	v.SetDefault("database.busy_timeout", "5s")
	v.SetDefault("database.cache_size_kib", 20000)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "168h")
	v.SetDefault("auth.janitor_schedule", "@hourly")

	v.SetDefault("plugins.bi.forecast_months", 3)
	v.SetDefault("plugins.bi.max_forecast_months", 24)
	v.SetDefault("plugins.bi.alert_threshold", 25.0)
	v.SetDefault("plugins.bi.top_categories", 4)
	v.SetDefault("plugins.bi.query_timeout", "10s")
	v.SetDefault("plugins.bi.holt_winters.season_length", 12)
	v.SetDefault("plugins.bi.holt_winters.alpha", 0.4)
	v.SetDefault("plugins.bi.holt_winters.beta", 0.2)
	v.SetDefault("plugins.bi.holt_winters.gamma", 0.3)
}

func (c *ViperConfig) Unmarshal(target any) error {
	return c.v.Unmarshal(target)
}

func (c *ViperConfig) Get(key string) any {
	return c.v.Get(key)
}

func (c *ViperConfig) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *ViperConfig) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *ViperConfig) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *ViperConfig) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

func (c *ViperConfig) IsSet(key string) bool {
	return c.v.IsSet(key)
}

// Sub returns the section at key. A missing section yields an empty Config
// so modules fall back to their own defaults.
func (c *ViperConfig) Sub(key string) plugin.Config {
	sub := c.v.Sub(key)
	if sub == nil {
		return New(nil)
	}
	return New(sub)
}

// Viper returns the underlying Viper instance for top-level settings.
func (c *ViperConfig) Viper() *viper.Viper {
	return c.v
}
