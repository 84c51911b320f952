package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration, shared by the training
// job and the serving process.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Corpus struct {
		Dir string `yaml:"dir"`
	} `yaml:"corpus"`
	Database struct {
		Path          string `yaml:"path"`
		MigrationsDir string `yaml:"migrations_dir"`
	} `yaml:"database"`
	Artifacts struct {
		Dir string `yaml:"dir"`
	} `yaml:"artifacts"`
	Training struct {
		SplitRatio  float64 `yaml:"split_ratio"`
		Seed        int64   `yaml:"seed"`
		Epochs      int     `yaml:"epochs"`
		C           float64 `yaml:"c"`
		MaxFeatures int     `yaml:"max_features"`
	} `yaml:"training"`
	Quiz struct {
		ExcerptWords      int `yaml:"excerpt_words"`
		SessionTTLMinutes int `yaml:"session_ttl_minutes"`
	} `yaml:"quiz"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "migrations"
	}
	if c.Training.SplitRatio == 0 {
		c.Training.SplitRatio = 0.7
	}
	if c.Training.Seed == 0 {
		c.Training.Seed = 42
	}
	if c.Quiz.ExcerptWords == 0 {
		c.Quiz.ExcerptWords = 30
	}
	if c.Quiz.SessionTTLMinutes == 0 {
		c.Quiz.SessionTTLMinutes = 60
	}
}
