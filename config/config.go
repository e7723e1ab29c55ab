package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Http struct {
		Host    string        `yaml:"host"`
		Port    int           `yaml:"port"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"http"`
	API struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"api"`
	Model struct {
		Path string `yaml:"path"`
	} `yaml:"model"`
	Log      LogConfig `yaml:"log"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Cache struct {
		Size int `yaml:"size"`
	} `yaml:"cache"`
	UI struct {
		Language string `yaml:"language"`
	} `yaml:"ui"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func Default() *Config {
	var c Config
	c.Http.Host = "0.0.0.0"
	c.Http.Port = 8501
	c.Http.Timeout = 30 * time.Second
	c.API.Host = "0.0.0.0"
	c.API.Port = 5000
	c.Model.Path = "best_model.json"
	c.Log.Level = "info"
	c.Log.Format = "console"
	c.Log.MaxSizeMB = 50
	c.Log.MaxBackups = 3
	c.Log.MaxAgeDays = 28
	c.Database.Path = "predictions.db"
	c.Cache.Size = 256
	c.UI.Language = "en"
	return &c
}

// Load reads a YAML file over the defaults. A missing file yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	config := Default()
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("invalid http.port %d", c.Http.Port)
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("invalid api.port %d", c.API.Port)
	}
	if c.Http.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	if c.Model.Path == "" {
		return fmt.Errorf("model.path is required")
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must not be negative")
	}
	return nil
}

func (c *Config) HttpAddr() string {
	return fmt.Sprintf("%s:%d", c.Http.Host, c.Http.Port)
}

func (c *Config) APIAddr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}
