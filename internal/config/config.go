package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	domainErrors "github.com/thomas-vilte/github2range/internal/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// GitHubHost is the API host. Set it to your GitHub Enterprise instance,
	// e.g. "github.example.com/api/v3".
	GitHubHost        string `toml:"github_host" yaml:"github_host" json:"githubHost"`
	GitHubAccessToken string `toml:"github_access_token" yaml:"github_access_token" json:"githubAccessToken"`
	// RangeWebhook is the URL suggestions are posted to.
	RangeWebhook string `toml:"range_webhook" yaml:"range_webhook" json:"rangeWebhook"`
	// Users maps GitHub logins to the email known by Range.
	Users map[string]string `toml:"users" yaml:"users" json:"users"`
	// MaxAge is how far back, in hours, events are collected.
	MaxAge   float64              `toml:"max_age" yaml:"max_age" json:"maxAge"`
	Language string               `toml:"language" yaml:"language" json:"language"`
	Colors   map[string]ColorSpec `toml:"colors" yaml:"colors" json:"colors"`

	PathFile string `toml:"-" yaml:"-" json:"-"`
}

const (
	DefaultGitHubHost = "api.github.com"
	defaultMaxAge     = 24
	defaultLang       = LangEN

	configDirName  = ".github2range"
	configFileName = "config.toml"
	rcFileName     = ".github2rangerc"

	envPrefix = "GITHUB2RANGE_"
)

func defaultColors() map[string]ColorSpec {
	return map[string]ColorSpec{
		"debug": {"gray"},
		"info":  {"yellow"},
		"warn":  {"cyan"},
		"error": {"bgRed", "white"},
	}
}

// DefaultConfig returns a configuration with every optional field populated.
func DefaultConfig() *Config {
	return &Config{
		GitHubHost: DefaultGitHubHost,
		Users:      map[string]string{},
		MaxAge:     defaultMaxAge,
		Language:   defaultLang,
		Colors:     defaultColors(),
	}
}

// DefaultPath returns $HOME/.github2range/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	if home == "" {
		return "", errors.New("user home directory is empty")
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// RCPath returns $HOME/.github2rangerc, the JSON file older installs used.
func RCPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(home, rcFileName), nil
}

// LoadConfig reads the file at path over the defaults. The result is not
// validated; call Validate before a sync.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domainErrors.ErrConfigRead.WithError(err).WithContext("path", path)
	}

	cfg := DefaultConfig()
	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	cfg.PathFile = path

	if cfg.Users == nil {
		cfg.Users = map[string]string{}
	}
	if cfg.Colors == nil {
		cfg.Colors = defaultColors()
	}

	return cfg, nil
}

// configFormat returns the extension that picks the decoder. rc style files
// such as ~/.github2rangerc have none and hold JSON.
func configFormat(path string) string {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" || strings.HasSuffix(base, "rc") || ext == base {
		return ".json"
	}
	return ext
}

func decode(path string, data []byte, cfg *Config) error {
	var err error
	switch configFormat(path) {
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return domainErrors.ErrConfigFormat.WithContext("path", path)
	}
	if err != nil {
		return fmt.Errorf("error decoding config file %s: %w", path, err)
	}
	return nil
}

// CreateDefaultConfig writes a default TOML config at path and returns it.
func CreateDefaultConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.PathFile = path

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg as TOML to cfg.PathFile. The file may hold a token so
// it is written with owner-only permissions.
func SaveConfig(cfg *Config) error {
	if cfg.PathFile == "" {
		return errors.New("config file path is not defined")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(cfg.PathFile, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}
	return nil
}

// LoadEnvFile loads a dotenv file into the process environment. A missing file
// is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with GITHUB2RANGE_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(envPrefix + "GITHUB_HOST"); ok && v != "" {
		cfg.GitHubHost = v
	}
	if v, ok := os.LookupEnv(envPrefix + "GITHUB_ACCESS_TOKEN"); ok && v != "" {
		cfg.GitHubAccessToken = v
	}
	if v, ok := os.LookupEnv(envPrefix + "RANGE_WEBHOOK"); ok && v != "" {
		cfg.RangeWebhook = v
	}
	if v, ok := os.LookupEnv(envPrefix + "MAX_AGE"); ok && v != "" {
		maxAge, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domainErrors.ErrInvalidMaxAge.WithError(err).WithContext("source", "env")
		}
		cfg.MaxAge = maxAge
	}
	return nil
}

// Validate checks the fields a sync run cannot do without.
func Validate(cfg *Config) error {
	if cfg.GitHubAccessToken == "" {
		return domainErrors.ErrTokenMissing
	}
	if cfg.RangeWebhook == "" {
		return domainErrors.ErrWebhookMissing
	}
	u, err := url.Parse(cfg.RangeWebhook)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return domainErrors.ErrWebhookMissing.WithError(err).WithContext("range_webhook", cfg.RangeWebhook)
	}
	if len(cfg.Users) == 0 {
		return domainErrors.ErrNoUsers
	}
	if cfg.MaxAge <= 0 {
		return domainErrors.ErrInvalidMaxAge
	}
	return nil
}

// MaxAgeDuration converts MaxAge hours into a duration.
func (c *Config) MaxAgeDuration() time.Duration {
	return time.Duration(c.MaxAge * float64(time.Hour))
}
