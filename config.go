package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is loaded once at startup from config.yaml (or MACD_* environment
// variables) and treated as read-only afterwards.
type Config struct {
	Port            int      `mapstructure:"port"`
	LogDir          string   `mapstructure:"log_dir"`
	Workers         int      `mapstructure:"workers"`
	StartingCapital float64  `mapstructure:"starting_capital"`
	Tokens          []string `mapstructure:"tokens"`
}

func loadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/macd-backtest")

	v.SetDefault("port", 8080)
	v.SetDefault("log_dir", "logs")
	v.SetDefault("workers", 4)
	v.SetDefault("starting_capital", 10000)
	v.SetDefault("tokens", []string{"BTC", "ETH", "LINK", "UNI", "AAVE", "DOT"})

	v.SetEnvPrefix("MACD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// a missing file falls back to defaults and environment, anything
		// else (malformed yaml) is fatal
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.StartingCapital <= 0 {
		return Config{}, fmt.Errorf("starting capital must be positive, got %v", cfg.StartingCapital)
	}
	return cfg, nil
}
