package config

import (
	"errors"
	"strings"

	"github.com/cropwise/cropwise/internal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

const EnvPrefix = "CROPWISE"

// LoadConfig loads the config file and ENV variables into a Config struct.
// An explicitly named config file must exist; the default config.yaml is optional
// since every key has a default.
func LoadConfig(configFile string) (*Config, error) {
	// Environment variables take precedence over config file
	loadDotEnv()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}
	v.SetConfigType("yaml")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
		log.Debug("config.yaml not found, using defaults and environment")
	}

	secrets := map[string]string{
		"llm.openai_api_key":           "CROPWISE_OPENAI_API_KEY",
		"llm.anthropic_api_key":        "CROPWISE_ANTHROPIC_API_KEY",
		"storage.s3.access_key_id":     "CROPWISE_S3_ACCESS_KEY_ID",
		"storage.s3.secret_access_key": "CROPWISE_S3_SECRET_ACCESS_KEY",
	}
	for key, env := range secrets {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}
