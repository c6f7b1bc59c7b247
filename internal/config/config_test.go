package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"attrition/internal/encoder"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "SERVER_ADDR", "MODEL_PATH", "DATABASE_URL", "REDIS_URL", "RATE_LIMIT_MAX", "TLS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if !cfg.IsDev() {
		t.Errorf("IsDev() = false, want true for Env %q", cfg.Env)
	}
	if cfg.ServerAddr != ":3000" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, ":3000")
	}
	if cfg.ModelPath != "model/rfc.json" {
		t.Errorf("ModelPath = %q, want %q", cfg.ModelPath, "model/rfc.json")
	}
	if cfg.DatabaseURL != "" || cfg.RedisURL != "" {
		t.Errorf("backing services enabled by default: db=%q redis=%q", cfg.DatabaseURL, cfg.RedisURL)
	}
	if cfg.RateLimitMax != 100 {
		t.Errorf("RateLimitMax = %d, want 100", cfg.RateLimitMax)
	}
	if cfg.TLSEnabled || cfg.IsMTLSEnabled() {
		t.Error("TLS enabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("MODEL_PATH", "/models/forest.json")
	t.Setenv("RATE_LIMIT_MAX", "25")
	t.Setenv("TLS_ENABLED", "1")
	t.Setenv("TLS_CA_FILE", "/etc/ca.pem")

	cfg := Load()

	if cfg.IsDev() {
		t.Error("IsDev() = true, want false")
	}
	if cfg.ModelPath != "/models/forest.json" {
		t.Errorf("ModelPath = %q", cfg.ModelPath)
	}
	if cfg.RateLimitMax != 25 {
		t.Errorf("RateLimitMax = %d, want 25", cfg.RateLimitMax)
	}
	if !cfg.IsMTLSEnabled() {
		t.Error("IsMTLSEnabled() = false, want true")
	}
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	for _, v := range []string{"abc", "0", "-5"} {
		t.Setenv("RATE_LIMIT_MAX", v)
		if got := Load().RateLimitMax; got != 100 {
			t.Errorf("RATE_LIMIT_MAX=%q: RateLimitMax = %d, want 100", v, got)
		}
	}
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
}

func TestLoadYAMLConfig_Missing(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := LoadYAMLConfig()
	if err != nil {
		t.Fatalf("LoadYAMLConfig() error = %v", err)
	}
	if cfg != nil {
		t.Errorf("LoadYAMLConfig() = %+v, want nil", cfg)
	}

	table, err := cfg.FrequencyTable()
	if err != nil {
		t.Fatalf("FrequencyTable() error = %v", err)
	}
	if f, _ := table.Frequency(encoder.JobRole, "Manager"); f != 0.069 {
		t.Errorf("compiled-in Manager frequency = %v, want 0.069", f)
	}
}

func TestLoadYAMLConfig_FrequencyTable(t *testing.T) {
	writeConfig(t, `
encoding:
  fields:
    BusinessTravel:
      - {name: Travel_Rarely, frequency: 0.7}
      - {name: Non-Travel, frequency: 0.3}
    Department:
      - {name: Sales, frequency: 0.5}
      - {name: Research & Development, frequency: 0.5}
    EducationField:
      - {name: Life Sciences, frequency: 0.6}
      - {name: Medical, frequency: 0.4}
    JobRole:
      - {name: Manager, frequency: 1.0}
    MaritalStatus:
      - {name: Single, frequency: 0.5}
      - {name: Married, frequency: 0.5}
  defaults:
    EducationField: Medical
`)

	cfg, err := LoadYAMLConfig()
	if err != nil {
		t.Fatalf("LoadYAMLConfig() error = %v", err)
	}
	table, err := cfg.FrequencyTable()
	if err != nil {
		t.Fatalf("FrequencyTable() error = %v", err)
	}

	if got := table.Default(encoder.EducationField); got != "Medical" {
		t.Errorf("Default(EducationField) = %q, want Medical", got)
	}
	if got := table.Default(encoder.Department); got != "Sales" {
		t.Errorf("Default(Department) = %q, want Sales", got)
	}
	if f, _ := table.Frequency(encoder.JobRole, "Manager"); f != 1.0 {
		t.Errorf("Frequency(JobRole, Manager) = %v, want 1.0", f)
	}
	if table.Has(encoder.JobRole, "Sales Executive") {
		t.Error("table kept a compiled-in category")
	}
}

func TestLoadYAMLConfig_InvalidTable(t *testing.T) {
	writeConfig(t, `
encoding:
  fields:
    JobRole:
      - {name: Manager, frequency: 1.0}
`)

	cfg, err := LoadYAMLConfig()
	if err != nil {
		t.Fatalf("LoadYAMLConfig() error = %v", err)
	}
	if _, err := cfg.FrequencyTable(); !errors.Is(err, encoder.ErrInvalidTable) {
		t.Errorf("FrequencyTable() error = %v, want ErrInvalidTable", err)
	}
}

func TestLoadYAMLConfig_Malformed(t *testing.T) {
	writeConfig(t, "encoding: [unclosed")

	if _, err := LoadYAMLConfig(); err == nil {
		t.Error("LoadYAMLConfig() succeeded on malformed YAML")
	}
}
