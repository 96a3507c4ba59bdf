package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

//go:embed config.example.toml
var exampleConf []byte

// EnvPrefix is the prefix for environment variable overrides, e.g. SPOTTY_TOKEN.
const EnvPrefix = "SPOTTY"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	API         APIConfig         `toml:"api"`
	Server      ServerConfig      `toml:"server"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains the bearer credential and the optional refresh pair.
//
// Each field can be overridden from the environment (see [ApplyEnv]).
type CredentialsConfig struct {
	Token           string `toml:"token" envconfig:"TOKEN"`
	RefreshToken    string `toml:"refresh_token" envconfig:"REFRESH_TOKEN"`
	RefreshEndpoint string `toml:"refresh_endpoint" envconfig:"TOKEN_REFRESH_ENDPOINT"`
}

// APIConfig contains Web API settings.
type APIConfig struct {
	BaseURL string `toml:"base_url" envconfig:"API_BASE_URL"`
}

// ServerConfig contains settings for the refresh endpoint server.
type ServerConfig struct {
	Host         string `toml:"host" envconfig:"SERVER_HOST"`
	Port         int    `toml:"port" envconfig:"SERVER_PORT"`
	ClientID     string `toml:"client_id" envconfig:"CLIENT_ID"`
	ClientSecret string `toml:"client_secret" envconfig:"CLIENT_SECRET"`
	TokenURL     string `toml:"token_url" envconfig:"TOKEN_URL"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" envconfig:"LOG_LEVEL"`
}

// Addr returns the host:port the refresh server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ResolveConfig loads path when it exists, falls back to [DefaultConfig] otherwise, then applies environment overrides.
func ResolveConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			config = loaded
		}
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides config fields from SPOTTY_* environment variables.
//
// Each variable is looked up as SPOTTY_<NAME> first and then as the bare <NAME> (so TOKEN_REFRESH_ENDPOINT works as-is).
// Unset variables leave the loaded values untouched.
func ApplyEnv(config *Config) error {
	sections := []any{&config.Credentials, &config.API, &config.Server, &config.Log}
	for _, section := range sections {
		if err := envconfig.Process(EnvPrefix, section); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// SaveConfig writes config to path as TOML, replacing any existing file.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
