package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DevConnectionString is used instead of the configured database when
// DEV_MODE=true.
const DevConnectionString = "file:./local.db?cache=shared&mode=rwc"

type Config struct {
	DB     DBConfig     `toml:"database"`
	Log    LogConfig    `toml:"log"`
	Groups GroupsConfig `toml:"groups"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string" env:"TURSO_DATABASE_URL"` // The entire DB connection string.
	AuthToken        string `toml:"auth_token" env:"TURSO_AUTH_TOKEN"`
}

type LogConfig struct {
	Level  string `toml:"level" env:"FITTRACK_LOG_LEVEL" env-default:"warn"`
	Format string `toml:"format" env:"FITTRACK_LOG_FORMAT" env-default:"text"`
}

type GroupsConfig struct {
	// CodeAttempts bounds how many join codes are drawn before group
	// creation gives up on finding an unused one.
	CodeAttempts int `toml:"code_attempts" env:"FITTRACK_CODE_ATTEMPTS" env-default:"8"`
}

// Returns the path to the config file. FITTRACK_CONFIG overrides the default
// ~/.config/fittrack/config.toml.
func GetConfigPath() (string, error) {
	if p := os.Getenv("FITTRACK_CONFIG"); p != "" {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "fittrack")
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the config file, then environment variables (a .env file
// in the working directory is loaded first when present). Environment wins
// over the file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, statErr := os.Stat(path); statErr == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.DB.ConnectionString = DevConnectionString
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DB.ConnectionString) == "" {
		return errors.New("database connection string not set (config.toml [database] or TURSO_DATABASE_URL)")
	}
	if c.Groups.CodeAttempts < 1 {
		return fmt.Errorf("groups.code_attempts must be at least 1, got %d", c.Groups.CodeAttempts)
	}
	return nil
}

// DSN returns the connection string with the auth token attached for remote
// libsql databases. Local file URLs are returned unchanged.
func (c DBConfig) DSN() string {
	if c.AuthToken == "" || strings.HasPrefix(c.ConnectionString, "file:") {
		return c.ConnectionString
	}

	u, err := url.Parse(c.ConnectionString)
	if err != nil {
		return c.ConnectionString
	}
	q := u.Query()
	q.Set("authToken", c.AuthToken)
	u.RawQuery = q.Encode()
	return u.String()
}
