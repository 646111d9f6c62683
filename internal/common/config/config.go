// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Event    EventConfig    `mapstructure:"event"`
	NLP      NLPConfig      `mapstructure:"nlp"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	MetricsAddress  string `mapstructure:"metrics_address"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EventConfig carries the fixed facts about the scheduled event.
type EventConfig struct {
	StartDate   string `mapstructure:"start_date"` // "28 Avril 2023"
	EndDate     string `mapstructure:"end_date"`   // "07 Mai 2023"
	DefaultLang string `mapstructure:"default_lang"`
}

// NLPConfig groups the external model endpoints consumed by the pipeline.
type NLPConfig struct {
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Embedder   EmbedderConfig   `mapstructure:"embedder"`
	Speech     SpeechConfig     `mapstructure:"speech"`
}

type ClassifierConfig struct {
	BaseURL    string  `mapstructure:"base_url"`
	Timeout    int     `mapstructure:"timeout"` // milliseconds
	MaxRetries int     `mapstructure:"max_retries"`
	MinScore   float64 `mapstructure:"min_score"` // confidence gate
}

type EmbedderConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	MaxRetries int    `mapstructure:"max_retries"`
}

type SpeechConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}
	if cfg.NLP.Classifier.MinScore < 0 || cfg.NLP.Classifier.MinScore > 1 {
		return fmt.Errorf("nlp.classifier.min_score must be in [0,1], got %f", cfg.NLP.Classifier.MinScore)
	}
	return nil
}
