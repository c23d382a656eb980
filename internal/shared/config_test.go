package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "cvx.db" {
			t.Errorf("expected database path cvx.db, got %s", config.Database.Path)
		}

		if config.Parser.BaseURL != "http://localhost:8000" {
			t.Errorf("expected parser base URL http://localhost:8000, got %s", config.Parser.BaseURL)
		}

		if config.CRM.BaseURL != "http://localhost:9000" {
			t.Errorf("expected CRM base URL http://localhost:9000, got %s", config.CRM.BaseURL)
		}

		if config.Upload.Workers != 5 {
			t.Errorf("expected 5 upload workers, got %d", config.Upload.Workers)
		}

		if config.Auth.Username != "admin" {
			t.Errorf("expected default username admin, got %s", config.Auth.Username)
		}
	})

	t.Run("Timeouts", func(t *testing.T) {
		config := DefaultConfig()

		if config.Parser.Timeout() != 15*time.Second {
			t.Errorf("expected 15s parser timeout, got %v", config.Parser.Timeout())
		}
		if config.CRM.Timeout() != 10*time.Second {
			t.Errorf("expected 10s CRM timeout, got %v", config.CRM.Timeout())
		}

		zero := ParserConfig{}
		if zero.Timeout() != 15*time.Second {
			t.Errorf("expected parser timeout default for zero value, got %v", zero.Timeout())
		}
		zeroCRM := CRMConfig{TimeoutSeconds: -1}
		if zeroCRM.Timeout() != 10*time.Second {
			t.Errorf("expected CRM timeout default for negative value, got %v", zeroCRM.Timeout())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[auth]
username = "operator"
password = "secret"

[parser]
base_url = "http://parser.internal:8000"
timeout_seconds = 30

[crm]
base_url = "https://crm.example.com"
api_token = "tok_abc123"
timeout_seconds = 20

[upload]
workers = 8
rate_limit = 2.5

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Parser.Timeout() != 30*time.Second {
			t.Errorf("expected 30s parser timeout, got %v", config.Parser.Timeout())
		}

		if config.CRM.APIToken != "tok_abc123" {
			t.Errorf("expected CRM token tok_abc123, got %s", config.CRM.APIToken)
		}

		if config.Upload.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %f", config.Upload.RateLimit)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
