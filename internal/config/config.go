// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.gatehouse/config.yaml)
//  3. Default values (sensible defaults for quick start)
//
// Main configuration categories:
//   - AI: generation model, temperature, max tokens, agent turns
//   - Storage: PostgreSQL connection (see storage.go)
//   - Index: embedder model and retrieval top-k for the semantic manual index
//   - Scraper: corpus fetcher limits (see scrape.go)
//   - Observability: Datadog APM tracing (see observability.go)
//
// Security: sensitive values (passwords, API keys) are masked in String()
// and MarshalJSON(); the config directory uses 0750 permissions.
//
// Error handling: sentinel errors checked with errors.Is(), wrapped with
// context using fmt.Errorf("%w: details", ErrXxx).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel errors for configuration validation.
var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates a required API credential is missing.
	// Both the generation and embedding credentials must be present
	// before any query is served.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidMaxTurns indicates the agent turn bound is out of range.
	ErrInvalidMaxTurns = errors.New("invalid max turns")

	// ErrInvalidEmbedderModel indicates the embedder model is invalid.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidTopK indicates the retrieval top-k is out of range.
	ErrInvalidTopK = errors.New("invalid retrieval top-k")

	// ErrInvalidPostgresHost indicates the PostgreSQL host is invalid.
	ErrInvalidPostgresHost = errors.New("invalid PostgreSQL host")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidPostgresDBName indicates the PostgreSQL database name is invalid.
	ErrInvalidPostgresDBName = errors.New("invalid PostgreSQL database name")

	// ErrInvalidPostgresPassword indicates the PostgreSQL password is invalid.
	ErrInvalidPostgresPassword = errors.New("invalid PostgreSQL password")

	// ErrInvalidPostgresSSLMode indicates the PostgreSQL SSL mode is invalid.
	ErrInvalidPostgresSSLMode = errors.New("invalid PostgreSQL SSL mode")
)

const (
	// DefaultModelName is the default generation model. The Dotprompt
	// may override this per prompt.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultEmbedderModel is the OpenAI embedding model used for the
	// semantic manual index. Its 1536 dimensions match the documents
	// table schema in db/migrations.
	DefaultEmbedderModel = "text-embedding-3-small"

	// DefaultMaxHistoryMessages is the default number of messages to load.
	DefaultMaxHistoryMessages int32 = 100

	// MaxAllowedHistoryMessages is the absolute maximum to prevent OOM.
	MaxAllowedHistoryMessages int32 = 10000

	// MinHistoryMessages is the minimum allowed value for MaxHistoryMessages.
	MinHistoryMessages int32 = 10
)

// Config stores application configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON().
// When adding new sensitive fields, update MarshalJSON.
type Config struct {
	// Generation model configuration. Temperature defaults to 0:
	// regulatory answers must not vary between identical queries.
	ModelName   string  `mapstructure:"model_name" json:"model_name"`
	Temperature float32 `mapstructure:"temperature" json:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" json:"max_tokens"`
	PromptDir   string  `mapstructure:"prompt_dir" json:"prompt_dir"`

	// Conversation history configuration
	MaxHistoryMessages int32 `mapstructure:"max_history_messages" json:"max_history_messages"`
	MaxTurns           int   `mapstructure:"max_turns" json:"max_turns"`

	// Storage configuration (see storage.go for documentation)
	PostgresHost     string `mapstructure:"postgres_host" json:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port" json:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user" json:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password" json:"postgres_password"` // SENSITIVE: masked in MarshalJSON
	PostgresDBName   string `mapstructure:"postgres_db_name" json:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode" json:"postgres_ssl_mode"`

	// Semantic index configuration
	EmbedderModel string `mapstructure:"embedder_model" json:"embedder_model"`
	RAGTopK       int    `mapstructure:"rag_top_k" json:"rag_top_k"`

	// TablesPath points at a raw table extract (the fetch command's
	// tables output). When set, its commodity rows are merged over the
	// built-in host register at startup. Empty means built-ins only.
	TablesPath string `mapstructure:"tables_path" json:"tables_path"`

	// Manual corpus fetcher configuration (see scrape.go)
	Scraper ScraperConfig `mapstructure:"scraper" json:"scraper"`

	// Observability configuration (see observability.go)
	Datadog DatadogConfig `mapstructure:"datadog" json:"datadog"`

	// Serve mode configuration
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins"`
	TrustProxy  bool     `mapstructure:"trust_proxy" json:"trust_proxy"` // Trust X-Real-IP/X-Forwarded-For (set true behind reverse proxy)
}

// defaults holds every default value. Temperature 0 keeps identical
// queries returning identical answers; the postgres_* values match
// docker-compose.yml.
var defaults = map[string]any{
	"model_name":           DefaultModelName,
	"temperature":          0.0,
	"max_tokens":           2048,
	"max_history_messages": DefaultMaxHistoryMessages,
	"max_turns":            5,

	"postgres_host":        "localhost",
	"postgres_port":        5432,
	"postgres_user":        "gatehouse",
	"postgres_password":    "gatehouse_dev_password",
	"postgres_db_name":     "gatehouse",
	"postgres_ssl_mode":    "disable",

	"embedder_model": DefaultEmbedderModel,
	"rag_top_k":      5,

	"scraper.parallelism": 2,
	"scraper.delay_ms":    1000,
	"scraper.timeout_ms":  30000,

	"cors_origins": []string{"http://localhost:4200"},
	"trust_proxy":  false,

	"datadog.agent_host":   "localhost:4318",
	"datadog.environment":  "dev",
	"datadog.service_name": "gatehouse",
}

// envBindings maps config keys to their environment variable overrides.
//
// The two AI credentials are deliberately absent: GEMINI_API_KEY is read
// directly by the Genkit Google AI plugin and OPENAI_API_KEY by the
// OpenAI plugin. Validate() still checks that both are present.
var envBindings = map[string]string{
	"datadog.api_key": "DD_API_KEY",
	"cors_origins":    "GATEHOUSE_CORS_ORIGINS",
	"trust_proxy":     "GATEHOUSE_TRUST_PROXY",
	"model_name":      "GATEHOUSE_MODEL_NAME",
	"embedder_model":  "GATEHOUSE_EMBEDDER_MODEL",
	"prompt_dir":      "GATEHOUSE_PROMPT_DIR",
	"tables_path":     "GATEHOUSE_TABLES_PATH",
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dir)
	viper.AddConfigPath(".")

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("no config.yaml found, using defaults", "search_paths", []string{dir, "."})
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// DATABASE_URL overrides the individual postgres_* settings.
	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	// Fail fast: no query is served on an invalid configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// configDir ensures ~/.gatehouse exists and returns it. It also holds
// the CLI's session state file, so serve-only deployments get it too.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	dir := filepath.Join(home, ".gatehouse")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return dir, nil
}

func setDefaults() {
	for key, val := range defaults {
		viper.SetDefault(key, val)
	}
}

func bindEnvVariables() {
	for key, envVar := range envBindings {
		// Hardcoded keys cannot fail to bind; a panic here is a bug.
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}
}

// maskedValue replaces secret material in logs. Full-width blocks
// (U+2588) cannot collide with real secret substrings.
const maskedValue = "████████"

// maskSecret redacts a secret for logging. Short secrets (8 bytes or
// fewer) are hidden entirely; longer ones keep the first and last two
// characters so operators can tell credentials apart. This guards
// against accidental logging only.
func maskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 8:
		return maskedValue
	default:
		return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
	}
}

// MarshalJSON masks sensitive fields: PostgresPassword here,
// Datadog.APIKey via DatadogConfig.MarshalJSON. Keep it in sync when
// adding secrets to Config.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.PostgresPassword = maskSecret(a.PostgresPassword)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// FullModelName returns the provider-qualified model name for Genkit,
// e.g. "googleai/gemini-2.5-flash". A name already containing "/" is
// returned as-is.
func (c *Config) FullModelName() string {
	if strings.Contains(c.ModelName, "/") {
		return c.ModelName
	}
	return "googleai/" + c.ModelName
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
