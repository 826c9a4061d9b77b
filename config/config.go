package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port  string `mapstructure:"PORT"`
	Store string `mapstructure:"STORE"` // redis (default) or postgres

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	PostgresDSN   string `mapstructure:"POSTGRES_DSN"`

	// APIEndpoint is the externally reachable base URL of this service,
	// used to derive webhook channel URLs.
	APIEndpoint string `mapstructure:"API_ENDPOINT"`

	AuthURL    string `mapstructure:"AUTH_URL"`
	ClusterURL string `mapstructure:"CLUSTER_URL"`
	EngineURL  string `mapstructure:"ENGINE_URL"`

	ActionsFile string `mapstructure:"ACTIONS_FILE"`

	// ServiceTimeoutSeconds bounds calls to the identity service, the
	// cluster registry and the action engine.
	ServiceTimeoutSeconds int `mapstructure:"SERVICE_TIMEOUT_SECONDS"`
}

// ServiceTimeout returns the bounded timeout for external service calls
func (c *Config) ServiceTimeout() time.Duration {
	if c.ServiceTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ServiceTimeoutSeconds) * time.Second
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	if config.Store == "" {
		config.Store = "redis"
	}
	return &config, nil
}
