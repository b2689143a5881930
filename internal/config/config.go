package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL  string        `mapstructure:"API_BASE_URL"`
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
	StateFile   string        `mapstructure:"STATE_FILE"`

	LockoutMaxAttempts int           `mapstructure:"LOCKOUT_MAX_ATTEMPTS"`
	LockoutDuration    time.Duration `mapstructure:"LOCKOUT_DURATION"`

	// How long a server-side token validation is trusted before a 403
	// triggers another round trip.
	TokenRevalidateInterval time.Duration `mapstructure:"TOKEN_REVALIDATE_INTERVAL"`

	SearchDebounce    time.Duration `mapstructure:"SEARCH_DEBOUNCE"`
	SearchMinLength   int           `mapstructure:"SEARCH_MIN_LENGTH"`
	RecentSearchesMax int           `mapstructure:"RECENT_SEARCHES_MAX"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nfc4care.json"
	}
	return filepath.Join(home, ".nfc4care", "state.json")
}

func Load() (*Config, error) {
	viper.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	viper.SetDefault("HTTP_TIMEOUT", 15*time.Second)
	viper.SetDefault("STATE_FILE", defaultStateFile())
	viper.SetDefault("LOCKOUT_MAX_ATTEMPTS", 5)
	viper.SetDefault("LOCKOUT_DURATION", 15*time.Minute)
	viper.SetDefault("TOKEN_REVALIDATE_INTERVAL", time.Hour)
	viper.SetDefault("SEARCH_DEBOUNCE", 500*time.Millisecond)
	viper.SetDefault("SEARCH_MIN_LENGTH", 3)
	viper.SetDefault("RECENT_SEARCHES_MAX", 5)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", true)

	viper.SetEnvPrefix("N4C")
	viper.AutomaticEnv()

	viper.SetConfigName("nfc4care")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.nfc4care")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
