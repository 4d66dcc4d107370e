package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// ErrConfigurationMissing means no usable spreadsheet credential bundle was found.
var ErrConfigurationMissing = errors.New("spreadsheet credentials are not configured")

// Backends for sheets.backend
const (
	BackendGoogle = "google"
	BackendMemory = "memory"
)

const EnvPrefix = "FRONTDESK"

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Sheets struct {
		Backend         string        `mapstructure:"backend"`
		SpreadsheetID   string        `mapstructure:"spreadsheet_id"`
		SpreadsheetName string        `mapstructure:"spreadsheet_name"`
		CredentialsFile string        `mapstructure:"credentials_file"`
		CredentialsJSON string        `mapstructure:"credentials_json"`
		RetryMax        int           `mapstructure:"retry_max"`
		Timeout         time.Duration `mapstructure:"timeout"`
	} `mapstructure:"sheets"`

	Redis struct {
		Enabled  bool   `mapstructure:"enabled"`
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	R2 R2Config `mapstructure:"r2"`

	Log struct {
		Level   string `mapstructure:"level"`
		Console bool   `mapstructure:"console"`
	} `mapstructure:"log"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	cfg, err := LoadFile("configs/config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("[Config] Unmarshal failed")
	}
	return cfg
}

// LoadFile reads path (optional) and FRONTDESK_* environment variables over
// the built-in defaults.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// FRONTDESK_SHEETS_SPREADSHEET_ID -> sheets.spreadsheet_id
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Content-Type"})
	v.SetDefault("sheets.backend", BackendGoogle)
	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.spreadsheet_name", "Hospital Front Desk")
	v.SetDefault("sheets.credentials_file", "")
	v.SetDefault("sheets.credentials_json", "")
	v.SetDefault("sheets.retry_max", 3)
	v.SetDefault("sheets.timeout", 20*time.Second)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("r2.enabled", false)
	v.SetDefault("r2.endpoint", "")
	v.SetDefault("r2.region", "auto")
	v.SetDefault("r2.bucket", "")
	v.SetDefault("r2.key", "config/service_account.json")
	v.SetDefault("r2.access_key", "")
	v.SetDefault("r2.secret_key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Info().Str("path", path).Msg("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// Conventional Google variable as a last resort for the key file
	if cfg.Sheets.CredentialsFile == "" {
		cfg.Sheets.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}

	return &cfg, nil
}

// serviceAccount holds the fields the store needs from a credential bundle.
type serviceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// ValidateCredentials checks that data is a service-account bundle.
func ValidateCredentials(data []byte) error {
	var sa serviceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return fmt.Errorf("%w: bundle is not valid JSON: %v", ErrConfigurationMissing, err)
	}

	var missing []string
	if sa.ClientEmail == "" {
		missing = append(missing, "client_email")
	}
	if sa.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: bundle lacks %s", ErrConfigurationMissing, strings.Join(missing, ", "))
	}
	return nil
}

// Credentials returns the service-account bundle, looked up inline first,
// then from the key file, then from R2.
func (c *Config) Credentials(ctx context.Context) ([]byte, error) {
	var (
		data   []byte
		source string
	)

	switch {
	case strings.TrimSpace(c.Sheets.CredentialsJSON) != "":
		data, source = []byte(c.Sheets.CredentialsJSON), "inline"
	case c.Sheets.CredentialsFile != "":
		b, err := os.ReadFile(c.Sheets.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigurationMissing, err)
		}
		data, source = b, "file"
	case c.R2.Enabled:
		log.Info().Str("bucket", c.R2.Bucket).Str("key", c.R2.Key).Msg("[Config] Fetching credential bundle from R2")
		b, err := fetchObjectFromR2(ctx, c.R2)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigurationMissing, err)
		}
		data, source = b, "r2"
	default:
		return nil, ErrConfigurationMissing
	}

	if err := ValidateCredentials(data); err != nil {
		return nil, err
	}
	log.Info().Str("source", source).Msg("[Config] Credential bundle loaded")
	return data, nil
}
