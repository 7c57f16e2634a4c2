package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"sportsbridge/internal/domain"
)

// FileConfig defines the structure loaded from the optional YAML configuration
// file. Everything in it can also be reached through environment variables,
// which win on conflict.
type FileConfig struct {
	// BaseURLs overrides the built-in upstream base URL per provider id.
	BaseURLs map[string]string `yaml:"base_urls,omitempty"`
	// MaxPayloadChars overrides the truncation threshold for rendered results.
	MaxPayloadChars int `yaml:"max_payload_chars,omitempty"`
}

// Config holds the final application configuration, merged from file and
// environment variables. Fields are loaded from environment variables with the
// prefix "SPORTSBRIDGE_", potentially overriding file settings.
type Config struct {
	// Config file path (loaded first from env).
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	ListenAddr        string        `envconfig:"LISTEN_ADDR" default:":8080"`
	AdminAddr         string        `envconfig:"ADMIN_ADDR" default:":8081"`
	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"10s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	// MaxPayloadChars bounds the serialized result text returned to the host;
	// longer payloads are truncated with an explicit marker.
	MaxPayloadChars int `envconfig:"MAX_PAYLOAD_CHARS" default:"40000"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// LogFile receives logs in stdio transport mode, where stdout belongs to
	// the protocol stream.
	LogFile string `envconfig:"LOG_FILE" default:"/tmp/sportsbridge.log"`

	OtelExporterOtlpEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`

	// BaseURLs comes from the config file only.
	BaseURLs map[string]string `ignored:"true"`
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Load loads configuration first from environment variables (to get the file
// path), then from the YAML file if one is specified, and finally reapplies
// environment variables so they override file settings.
func Load() (*Config, error) {
	var initialCfg Config
	if err := envconfig.Process("sportsbridge", &initialCfg); err != nil {
		return nil, fmt.Errorf("failed to process initial environment variables: %w", err)
	}

	fileCfg := FileConfig{}
	if initialCfg.ConfigFilePath != "" {
		yamlFile, err := os.ReadFile(initialCfg.ConfigFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", initialCfg.ConfigFilePath, err)
		}
		if err := yaml.Unmarshal(yamlFile, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", initialCfg.ConfigFilePath, err)
		}
		slog.Info("Loaded configuration from file.", "path", initialCfg.ConfigFilePath)
	}

	finalCfg := initialCfg
	finalCfg.BaseURLs = fileCfg.BaseURLs

	// Process environment variables again to allow overrides over file settings.
	if err := envconfig.Process("sportsbridge", &finalCfg); err != nil {
		return nil, fmt.Errorf("failed to process overriding environment variables: %w", err)
	}

	// Reprocessing reapplies the struct tag default, which must not clobber a
	// file-set limit. The file value holds unless the variable is really set.
	if fileCfg.MaxPayloadChars > 0 && os.Getenv("SPORTSBRIDGE_MAX_PAYLOAD_CHARS") == "" {
		finalCfg.MaxPayloadChars = fileCfg.MaxPayloadChars
	}

	return &finalCfg, nil
}

// providerDefaults is the built-in upstream wiring per provider id.
type providerDefaults struct {
	baseURL      string
	keyVariable  string
	authStyle    domain.AuthStyle
	defaultQuery map[string]string
}

var providers = map[string]providerDefaults{
	"mlb": {
		baseURL:     "https://api.sportradar.com/mlb/production/v8",
		keyVariable: "SPORTRADAR_API_KEY",
		authStyle:   domain.AuthStyleQuery,
	},
	"nba": {
		baseURL:     "https://api.sportradar.com/nba/production/v8",
		keyVariable: "SPORTRADAR_API_KEY",
		authStyle:   domain.AuthStyleQuery,
	},
	"f1": {
		baseURL:      "https://api.jolpi.ca/ergast/f1",
		authStyle:    domain.AuthStyleNone,
		defaultQuery: map[string]string{"format": "json"},
	},
}

// ResolveProvider resolves the immutable ProviderConfig for the given provider
// id. A provider whose credential variable is absent or empty yields a
// ConfigurationError; callers treat that as startup-fatal and must not begin
// serving tools.
func (c *Config) ResolveProvider(id string) (domain.ProviderConfig, error) {
	def, ok := providers[id]
	if !ok {
		return domain.ProviderConfig{}, &domain.ConfigurationError{Variable: id, Reason: "is not a known provider"}
	}

	apiKey := ""
	if def.keyVariable != "" {
		apiKey = strings.TrimSpace(os.Getenv(def.keyVariable))
		if apiKey == "" {
			return domain.ProviderConfig{}, &domain.ConfigurationError{Variable: def.keyVariable, Reason: "is not set"}
		}
	}

	baseURL := def.baseURL
	if override, ok := c.BaseURLs[id]; ok && override != "" {
		baseURL = override
	}

	return domain.ProviderConfig{
		ID:           id,
		BaseURL:      strings.TrimRight(baseURL, "/"),
		APIKey:       apiKey,
		AuthStyle:    def.authStyle,
		DefaultQuery: def.defaultQuery,
	}, nil
}
