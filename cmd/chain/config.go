package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// config is the merged view of flags, CHAIN_* environment variables, the
// .env file and chain.yaml, in that order of precedence.
type config struct {
	LogLevel string        `mapstructure:"log-level"`
	NoColor  bool          `mapstructure:"no-color"`
	Input    string        `mapstructure:"input"`
	Format   string        `mapstructure:"format"`
	Comma    string        `mapstructure:"comma"`
	Header   bool          `mapstructure:"header"`
	DB       string        `mapstructure:"db"`
	Query    string        `mapstructure:"query"`
	Cmd      string        `mapstructure:"cmd"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Output   string        `mapstructure:"output"`
	Raw      bool          `mapstructure:"raw"`
	Stats    bool          `mapstructure:"stats"`
}

const envPrefix = "CHAIN"

// loadConfig reads the configuration for cmd. Flags must already be bound
// to v.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (*config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile == "" {
		if _, err := os.Stat(".env"); err == nil {
			envFile = ".env"
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("chain")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Raw && cfg.Output == "" {
		cfg.Output = "lines"
	}
	return &cfg, nil
}

// newLogger builds the stderr logger for level. Pipeline stages log at
// debug level.
func newLogger(cmd *cobra.Command, cfg *config) (zerolog.Logger, error) {
	level := zerolog.WarnLevel
	if cfg.LogLevel != "" {
		parsed, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
		}
		level = parsed
	}
	w := zerolog.ConsoleWriter{
		Out:        cmd.ErrOrStderr(),
		NoColor:    cfg.NoColor,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("component", "chain").Logger(), nil
}
