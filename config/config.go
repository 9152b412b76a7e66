package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa*/

const (
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	Port          string `mapstructure:"PORT"`
	Storage       string `mapstructure:"STORAGE"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	PostgresDSN   string `mapstructure:"POSTGRES_DSN"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("STORAGE", StorageRedis)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("POSTGRES_DSN", "")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		// The .env file is optional; everything can come from the
		// environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when STORAGE is redis")
		}
	case StoragePostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE is postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE %q, expected redis or postgres", c.Storage)
	}
	return nil
}
