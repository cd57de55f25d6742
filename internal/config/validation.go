package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
)

// Validate checks the whole configuration and returns the first problem
// found, wrapped around a sentinel so callers can errors.Is it.
//
// Both AI credentials are checked up front: the process refuses to start
// with either one missing rather than failing on the first embedding or
// generation call.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}
	if err := validateCredentials(); err != nil {
		return err
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateIndex(); err != nil {
		return err
	}
	return c.validateStorage()
}

// validateCredentials checks the environment for both provider keys.
// GEMINI_API_KEY drives generation, OPENAI_API_KEY the manual embeddings.
func validateCredentials() error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY environment variable is required for answer generation\n"+
			"Get your API key at: https://ai.google.dev/gemini-api/docs/api-key",
			ErrMissingAPIKey)
	}
	if os.Getenv("OPENAI_API_KEY") == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY environment variable is required for manual embeddings\n"+
			"Get your API key at: https://platform.openai.com/api-keys",
			ErrMissingAPIKey)
	}
	return nil
}

func (c *Config) validateModel() error {
	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}
	if c.Temperature < 0.0 || c.Temperature > 2.0 {
		return fmt.Errorf("%w: must be between 0.0 and 2.0, got %.2f", ErrInvalidTemperature, c.Temperature)
	}
	// Upper bound is the Gemini 2.5 context window.
	if c.MaxTokens < 1 || c.MaxTokens > 2097152 {
		return fmt.Errorf("%w: must be between 1 and 2,097,152, got %d", ErrInvalidMaxTokens, c.MaxTokens)
	}
	if c.MaxTurns < 1 || c.MaxTurns > 25 {
		return fmt.Errorf("%w: must be between 1 and 25, got %d", ErrInvalidMaxTurns, c.MaxTurns)
	}
	return nil
}

func (c *Config) validateIndex() error {
	if c.RAGTopK <= 0 || c.RAGTopK > 10 {
		return fmt.Errorf("%w: must be between 1 and 10, got %d", ErrInvalidTopK, c.RAGTopK)
	}
	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: embedder_model cannot be empty", ErrInvalidEmbedderModel)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.PostgresHost == "" {
		return fmt.Errorf("%w: host cannot be empty", ErrInvalidPostgresHost)
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: must be between 1 and 65535, got %d", ErrInvalidPostgresPort, c.PostgresPort)
	}
	if c.PostgresDBName == "" {
		return fmt.Errorf("%w: database name cannot be empty", ErrInvalidPostgresDBName)
	}

	switch {
	case c.PostgresPassword == "":
		return fmt.Errorf("%w: postgres_password must be set in config.yaml", ErrInvalidPostgresPassword)
	case c.PostgresPassword == "gatehouse_dev_password":
		slog.Warn("using default development password for PostgreSQL",
			"warning", "change postgres_password in config.yaml for production deployments")
	case len(c.PostgresPassword) < 8:
		return fmt.Errorf("%w: postgres_password must be at least 8 characters (got %d)",
			ErrInvalidPostgresPassword, len(c.PostgresPassword))
	}

	// Modern SSL modes only; the deprecated allow/prefer modes downgrade
	// silently under MITM.
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	if c.PostgresSSLMode == "" {
		return fmt.Errorf("%w: postgres_ssl_mode is empty (should have default from setDefaults)",
			ErrInvalidPostgresSSLMode)
	}
	if !slices.Contains(validSSLModes, c.PostgresSSLMode) {
		return fmt.Errorf("%w: %q is not valid, must be one of: %v",
			ErrInvalidPostgresSSLMode, c.PostgresSSLMode, validSSLModes)
	}

	return nil
}

// NormalizeMaxHistoryMessages clamps a history limit into the allowed
// range, substituting the default for zero or negative values.
func NormalizeMaxHistoryMessages(limit int32) int32 {
	switch {
	case limit <= 0:
		return DefaultMaxHistoryMessages
	case limit < MinHistoryMessages:
		return MinHistoryMessages
	case limit > MaxAllowedHistoryMessages:
		return MaxAllowedHistoryMessages
	default:
		return limit
	}
}
