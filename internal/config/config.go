package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when neither --config nor CONFIG_PATH is given.
const DefaultPath = "configs/config.yml"

// Config holds application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port"`
		Mode string `yaml:"mode"` // gin mode: release, debug or test
	} `yaml:"server"`

	Data struct {
		ReviewsPath string `yaml:"reviews_path"`
		SourcesPath string `yaml:"sources_path"`
	} `yaml:"data"`

	// Optional audit trail of every classification
	PredictionLog struct {
		Enabled bool   `yaml:"enabled"`
		Driver  string `yaml:"driver"` // "sqlite" or "postgres"
		DSN     string `yaml:"dsn"`    // SQLite path or PostgreSQL URL
	} `yaml:"prediction_log"`

	Telegram struct {
		Enabled  bool   `yaml:"enabled"`
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

// LoadConfig loads configuration from a YAML file, then applies .env and
// environment overrides and fills in defaults. An empty path means CONFIG_PATH
// or DefaultPath, and in that case a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	config := &Config{}
	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	if err := config.applyEnvOverrides(); err != nil {
		return nil, err
	}
	config.applyDefaults()

	config.PredictionLog.DSN = os.ExpandEnv(config.PredictionLog.DSN)
	config.Telegram.BotToken = os.ExpandEnv(config.Telegram.BotToken)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnvOverrides() error {
	envOverride(&c.Server.Port, "EARNERSHUB_PORT")
	envOverride(&c.Data.ReviewsPath, "REVIEWS_CSV")
	envOverride(&c.Data.SourcesPath, "SOURCES_CSV")
	envOverride(&c.PredictionLog.Driver, "PREDICTION_LOG_DRIVER")
	envOverride(&c.PredictionLog.DSN, "PREDICTION_LOG_DSN")
	envOverride(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	envOverride(&c.Log.Level, "LOG_LEVEL")

	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", v, err)
		}
		c.Telegram.ChatID = id
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Data.ReviewsPath == "" {
		c.Data.ReviewsPath = "./data/raw/review_data.csv"
	}
	if c.Data.SourcesPath == "" {
		c.Data.SourcesPath = "./data/raw/earning_sources.csv"
	}
	if c.PredictionLog.Driver == "" {
		c.PredictionLog.Driver = "sqlite"
	}
	if c.PredictionLog.DSN == "" {
		c.PredictionLog.DSN = "./data/predictions.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks settings that have no sensible default
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "release", "debug", "test":
	default:
		return fmt.Errorf("server.mode must be release, debug or test, got %q", c.Server.Mode)
	}
	switch c.PredictionLog.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("prediction_log.driver must be sqlite or postgres, got %q", c.PredictionLog.Driver)
	}
	if c.Telegram.Enabled && (c.Telegram.BotToken == "" || c.Telegram.ChatID == 0) {
		return errors.New("telegram.enabled requires bot_token and chat_id")
	}
	return nil
}

func envOverride(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
