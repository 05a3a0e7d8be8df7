package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fr4nk3nst1ner/salarydash/internal/utils"
)

// Default input artifacts produced by the upstream clustering pipeline
const (
	DefaultRecordsPath    = "dataset_salarios_con_cluster.csv"
	DefaultCategoriesPath = "resumen_salarios_por_categoria.csv"
)

// Config represents the application configuration
type Config struct {
	Data     DataConfig           `yaml:"data"`
	Currency utils.CurrencyFormat `yaml:"currency"`
	Report   ReportConfig         `yaml:"report"`
	Web      WebConfig            `yaml:"web"`
	Logging  LoggingConfig        `yaml:"logging"`
}

type DataConfig struct {
	Records    string `yaml:"records" validate:"required"`
	Categories string `yaml:"categories" validate:"required"`
	Proxy      string `yaml:"proxy" validate:"omitempty,url"`
}

type ReportConfig struct {
	Bins     int  `yaml:"bins" validate:"gte=1,lte=500"`
	Banner   bool `yaml:"banner"`
	Progress bool `yaml:"progress"`
}

type WebConfig struct {
	Port  int  `yaml:"port" validate:"gte=1,lte=65535"`
	Watch bool `yaml:"watch"`
	// Prefer WEB_USERNAME / WEB_PASSWORD env vars
	Username string `yaml:"username"`
	Password string `yaml:"password" validate:"required_with=Username"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// SearchPaths are checked in order when no config path is given
var SearchPaths = []string{
	"salarydash.yaml",
	"salarydash.yml",
	"config/salarydash.yaml",
}

var validate = validator.New()

// DefaultConfig returns the configuration used when no file is found
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Records:    DefaultRecordsPath,
			Categories: DefaultCategoriesPath,
		},
		Currency: utils.DefaultCurrency,
		Report: ReportConfig{
			Bins:     25,
			Banner:   true,
			Progress: true,
		},
		Web: WebConfig{
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadEnv reads KEY=VALUE pairs from the given .env files into the process
// environment. Missing files are skipped; variables already set win.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the config at path, or the first of SearchPaths that exists when
// path is empty, then applies environment overrides and validates the result.
// An explicit path that does not exist is an error; a missing default file is not.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = findConfigPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SALARYDASH_RECORDS"); v != "" {
		c.Data.Records = v
	}
	if v := os.Getenv("SALARYDASH_CATEGORIES"); v != "" {
		c.Data.Categories = v
	}
	if v := os.Getenv("SALARYDASH_PROXY"); v != "" {
		c.Data.Proxy = v
	}
	if v := os.Getenv("SALARYDASH_CURRENCY_SYMBOL"); v != "" {
		c.Currency.Symbol = v
	}
	if v := os.Getenv("SALARYDASH_PORT"); v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("SALARYDASH_PORT: %q is not a port number", v)
		}
		c.Web.Port = port
	}
	if v := os.Getenv("SALARYDASH_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("WEB_USERNAME"); v != "" {
		c.Web.Username = v
	}
	if v := os.Getenv("WEB_PASSWORD"); v != "" {
		c.Web.Password = v
	}
	return nil
}

func findConfigPath() string {
	for _, p := range SearchPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
