package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Server struct {
	Port               string `mapstructure:"port" validate:"required,numeric"`
	RequestTimeoutSec  int    `mapstructure:"request_timeout_sec" validate:"gt=0"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" validate:"gt=0"`
}

type AlphaVantage struct {
	// APIKey is not checked here; a bad or missing key shows up as a failed
	// lookup on the first ticker without mock data.
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	OutputSize     string `mapstructure:"output_size" validate:"oneof=compact full"`
	CallTimeoutSec int    `mapstructure:"call_timeout_sec" validate:"gt=0"`
}

type Logging struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

type Config struct {
	Server       Server       `mapstructure:"server"`
	AlphaVantage AlphaVantage `mapstructure:"alphavantage"`
	Logging      Logging      `mapstructure:"logging"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 30, ShutdownTimeoutSec: 5},
		AlphaVantage: AlphaVantage{
			BaseURL:        "https://www.alphavantage.co",
			OutputSize:     "full",
			CallTimeoutSec: 10,
		},
		Logging: Logging{Level: "info"},
	}
}

// envBindings maps config keys to the environment variables that override
// them, highest precedence first.
var envBindings = map[string][]string{
	"server.port":                   {"PORT", "SERVER_PORT"},
	"server.request_timeout_sec":    {"REQUEST_TIMEOUT_SEC"},
	"server.shutdown_timeout_sec":   {"SHUTDOWN_TIMEOUT_SEC"},
	"alphavantage.api_key":          {"ALPHA_VANTAGE_API_KEY"},
	"alphavantage.base_url":         {"ALPHA_VANTAGE_BASE_URL"},
	"alphavantage.output_size":      {"ALPHA_VANTAGE_OUTPUT_SIZE"},
	"alphavantage.call_timeout_sec": {"ALPHA_VANTAGE_CALL_TIMEOUT_SEC"},
	"logging.level":                 {"LOG_LEVEL"},
}

// Load reads JSON config from path. If path is empty, config.json in the
// working directory is used when present; a missing file yields defaults.
// Environment variables override file values.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.request_timeout_sec", d.Server.RequestTimeoutSec)
	v.SetDefault("server.shutdown_timeout_sec", d.Server.ShutdownTimeoutSec)
	v.SetDefault("alphavantage.api_key", d.AlphaVantage.APIKey)
	v.SetDefault("alphavantage.base_url", d.AlphaVantage.BaseURL)
	v.SetDefault("alphavantage.output_size", d.AlphaVantage.OutputSize)
	v.SetDefault("alphavantage.call_timeout_sec", d.AlphaVantage.CallTimeoutSec)
	v.SetDefault("logging.level", d.Logging.Level)
}

func (s Server) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSec) * time.Second
}

func (s Server) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSec) * time.Second
}

func (a AlphaVantage) CallTimeout() time.Duration {
	return time.Duration(a.CallTimeoutSec) * time.Second
}
