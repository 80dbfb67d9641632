package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string        `mapstructure:"PORT"`
	Environment string        `mapstructure:"ENVIRONMENT"`
	MongoURI    string        `mapstructure:"MONGODB_URI"`
	SessionTTL  time.Duration `mapstructure:"SESSION_TTL"`
}

// loadConfig reads the .env file at path; a missing file is fine, the
// defaults and the process environment cover everything.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	v.SetDefault("PORT", "5000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017/blogspace")
	v.SetDefault("SESSION_TTL", "24h")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
