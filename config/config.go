package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DBType string `mapstructure:"DB_TYPE"` // sqlite, postgres, mysql
	DSN    string `mapstructure:"DSN"`

	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Auth surface
	ListKey           string `mapstructure:"LIST_KEY"`
	IdentityField     string `mapstructure:"IDENTITY_FIELD"`
	SecretField       string `mapstructure:"SECRET_FIELD"`
	ProtectIdentities bool   `mapstructure:"PROTECT_IDENTITIES"`

	// Reset tokens
	TokensValidForMins int `mapstructure:"TOKENS_VALID_FOR_MINS"`

	// Sessions
	SessionSecret  string `mapstructure:"SESSION_SECRET"`
	SessionMaxAge  int    `mapstructure:"SESSION_MAX_AGE"` // seconds
	BcryptWorkCost int    `mapstructure:"BCRYPT_WORK_COST"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_TYPE", "sqlite")
	viper.SetDefault("DSN", "loom.db")
	viper.SetDefault("LIST_KEY", "User")
	viper.SetDefault("IDENTITY_FIELD", "email")
	viper.SetDefault("SECRET_FIELD", "password")
	viper.SetDefault("PROTECT_IDENTITIES", true)
	viper.SetDefault("TOKENS_VALID_FOR_MINS", 10)
	viper.SetDefault("SESSION_MAX_AGE", 60*60*24)
	viper.SetDefault("BCRYPT_WORK_COST", 10)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
