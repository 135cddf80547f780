package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Storage struct {
		DataDir       string `yaml:"data_dir" env:"STORAGE_DATA_DIR"`
		StudentFile   string `yaml:"student_file" env:"STORAGE_STUDENT_FILE"`
		CourseFile    string `yaml:"course_file" env:"STORAGE_COURSE_FILE"`
		ProfessorFile string `yaml:"professor_file" env:"STORAGE_PROFESSOR_FILE"`
		LoginFile     string `yaml:"login_file" env:"STORAGE_LOGIN_FILE"`
	} `yaml:"storage"`

	Catalog struct {
		AllowDuplicateIDs bool `yaml:"allow_duplicate_ids" env:"CATALOG_ALLOW_DUPLICATE_IDS"`
	} `yaml:"catalog"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Seed struct {
		ProfessorID       string `yaml:"professor_id" env:"SEED_PROFESSOR_ID"`
		ProfessorPassword string `yaml:"professor_password" env:"SEED_PROFESSOR_PASSWORD"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// Variables from envFiles (".env" when none are given) are exported first;
// missing env files are ignored.
func LoadConfig(configPath string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Storage defaults, matching the historical file names
	config.Storage.DataDir = "data"
	config.Storage.StudentFile = "student.csv"
	config.Storage.CourseFile = "course.csv"
	config.Storage.ProfessorFile = "professor.csv"
	config.Storage.LoginFile = "login.csv"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "checkmygrade.app"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Storage.DataDir == "" {
		return fmt.Errorf("storage data directory is required")
	}

	for name, file := range map[string]string{
		"student":   config.Storage.StudentFile,
		"course":    config.Storage.CourseFile,
		"professor": config.Storage.ProfessorFile,
		"login":     config.Storage.LoginFile,
	} {
		if file == "" {
			return fmt.Errorf("storage %s file is required", name)
		}
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if (config.Seed.ProfessorID == "") != (config.Seed.ProfessorPassword == "") {
		return fmt.Errorf("seed professor id and password must be set together")
	}

	return nil
}

// ValidateServer checks the settings only the HTTP server needs. The offline
// tools work from the table files and never sign tokens.
func (c *Config) ValidateServer() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	return nil
}

// StudentPath returns the path of the student table
func (c *Config) StudentPath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.StudentFile)
}

// CoursePath returns the path of the course table
func (c *Config) CoursePath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.CourseFile)
}

// ProfessorPath returns the path of the professor table
func (c *Config) ProfessorPath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.ProfessorFile)
}

// LoginPath returns the path of the login table
func (c *Config) LoginPath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.LoginFile)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
