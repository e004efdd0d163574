package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/armcalc/internal/data"
)

// Game data sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Calculator holds all configuration for the armcalc tool.
type Calculator struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Source selects where game data tables come from.
	Source string `yaml:"source"`

	// File source: either a directory with the four tables, explicit
	// paths, or one bundle file. Explicit paths override the directory.
	DataDir string     `yaml:"data_dir"`
	Files   data.Files `yaml:"files"`
	Bundle  string     `yaml:"bundle"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Offline store
	SQLitePath string `yaml:"sqlite_path"`

	// Batch evaluation parallelism
	Workers int `yaml:"workers"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns Calculator config with sensible defaults.
func Default() Calculator {
	return Calculator{
		LogLevel:   "info",
		Source:     SourceFile,
		DataDir:    "data",
		SQLitePath: "armcalc.db",
		Workers:    4,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "armcalc",
			Password: "armcalc",
			DBName:   "armcalc",
			SSLMode:  "disable",
		},
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Calculator, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields and bounds.
func (c Calculator) Validate() error {
	switch c.Source {
	case SourceFile, SourcePostgres, SourceSQLite:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidConfig, c.Source)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// DataFiles returns the table files of the file source. Paths set in
// Files win over the ones discovered in DataDir.
func (c Calculator) DataFiles() data.Files {
	files := data.FilesIn(c.DataDir)
	if c.Files.Armaments != "" {
		files.Armaments = c.Files.Armaments
	}
	if c.Files.Reinforcements != "" {
		files.Reinforcements = c.Files.Reinforcements
	}
	if c.Files.CorrectionAttack != "" {
		files.CorrectionAttack = c.Files.CorrectionAttack
	}
	if c.Files.CorrectionGraph != "" {
		files.CorrectionGraph = c.Files.CorrectionGraph
	}
	return files
}

// FileSource returns the file based data source described by the config.
func (c Calculator) FileSource() data.FileSource {
	return data.FileSource{Files: c.DataFiles(), Bundle: c.Bundle}
}
