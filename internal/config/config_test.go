package config

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		leaked bool // true when the raw secret may appear in output
	}{
		{"empty", "", false},
		{"short fully masked", "p@ss", false},
		{"eight chars fully masked", "12345678", false},
		{"long keeps edges", "my_long_secret_key_123", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maskSecret(tt.in)
			if tt.in != "" && got == tt.in {
				t.Errorf("maskSecret(%q) returned the secret unmodified", tt.in)
			}
			if len(tt.in) > 8 {
				if !strings.HasPrefix(got, tt.in[:2]) || !strings.HasSuffix(got, tt.in[len(tt.in)-2:]) {
					t.Errorf("maskSecret(%q) = %q, want first/last 2 chars preserved", tt.in, got)
				}
			}
			if len(tt.in) > 0 && len(tt.in) <= 8 && got != maskedValue {
				t.Errorf("maskSecret(%q) = %q, want full mask", tt.in, got)
			}
		})
	}
}

// Secrets must never survive a round trip through JSON or String().
func TestConfigMasksSecrets(t *testing.T) {
	cfg := Config{
		ModelName:        "gemini-2.5-flash",
		PostgresPassword: "super-secret-database-password",
		Datadog: DatadogConfig{
			APIKey: "dd-api-key-value-long-enough",
		},
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(data)

	if strings.Contains(out, "super-secret-database-password") {
		t.Error("postgres password leaked into JSON output")
	}
	if strings.Contains(out, "dd-api-key-value-long-enough") {
		t.Error("datadog API key leaked into JSON output")
	}
	if !strings.Contains(out, maskedValue) {
		t.Error("expected masked placeholder in JSON output")
	}

	if s := cfg.String(); strings.Contains(s, "super-secret-database-password") {
		t.Error("postgres password leaked into String() output")
	}
}

func TestFullModelName(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"gemini-2.5-flash", "googleai/gemini-2.5-flash"},
		{"googleai/gemini-2.5-pro", "googleai/gemini-2.5-pro"},
		{"openai/gpt-4o", "openai/gpt-4o"},
	}
	for _, tt := range tests {
		cfg := &Config{ModelName: tt.model}
		if got := cfg.FullModelName(); got != tt.want {
			t.Errorf("FullModelName(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
}
