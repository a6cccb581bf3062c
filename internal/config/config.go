// Package config resolves runtime configuration from config files,
// environment variables, and flags through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix namespaces environment variables, e.g. FORMBANK_SERVER_ADDR.
	EnvPrefix = "FORMBANK"

	configName = "formbank"
	configType = "yaml"
)

// Config is the resolved application configuration.
type Config struct {
	Bank     BankConfig   `mapstructure:"bank"`
	Server   ServerConfig `mapstructure:"server"`
	Store    StoreConfig  `mapstructure:"store"`
	Log      LogConfig    `mapstructure:"log"`
	Renderer string       `mapstructure:"renderer"`
}

// BankConfig locates the default question bank.
type BankConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr  string `mapstructure:"addr"`
	Token string `mapstructure:"token"`
}

// StoreConfig locates the SQLite results database.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig selects logger behaviour.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("bank.path", "bank.yaml")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("store.path", "formbank.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("renderer", "html")
}

// Init wires config file resolution and environment binding on v. An empty
// cfgFile falls back to ./formbank.yaml then ~/.config/formbank/config.yaml.
// A missing config file is not an error; an unreadable one is.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "formbank"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read config file: %w", err)
	}
	return nil
}

// Load resolves the final Config from v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
