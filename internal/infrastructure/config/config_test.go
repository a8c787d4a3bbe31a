package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
database:
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  broker:
    host: "broker.local"
    port: 1883
    client_id: "test-client"
  qos: 1
api:
  host: "0.0.0.0"
  port: 5000
`
	cfg, err := Load(writeTestConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}
	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "broker.local")
	}
	if cfg.API.Port != 5000 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 5000)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// A minimal file should still produce a usable config via defaults.
	cfg, err := Load(writeTestConfig(t, "logging:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("MQTT.Broker.Port = %d, want default 1883", cfg.MQTT.Broker.Port)
	}
	if cfg.MQTT.Broker.ClientID != "gatelogic-core" {
		t.Errorf("MQTT.Broker.ClientID = %q, want default gatelogic-core", cfg.MQTT.Broker.ClientID)
	}
	if cfg.Notifications.Email.Port != 465 {
		t.Errorf("Notifications.Email.Port = %d, want default 465", cfg.Notifications.Email.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeTestConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GATELOGIC_MQTT_HOST", "env-broker")
	t.Setenv("GATELOGIC_DATABASE_PATH", "/env/passcodes.db")
	t.Setenv("GATELOGIC_TWILIO_AUTH_TOKEN", "env-token")

	cfg, err := Load(writeTestConfig(t, "mqtt:\n  broker:\n    host: file-broker\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Host != "env-broker" {
		t.Errorf("MQTT.Broker.Host = %q, want env override %q", cfg.MQTT.Broker.Host, "env-broker")
	}
	if cfg.Database.Path != "/env/passcodes.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Notifications.SMS.AuthToken != "env-token" {
		t.Errorf("SMS.AuthToken = %q, want env override", cfg.Notifications.SMS.AuthToken)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config { return defaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, true},
		{"invalid qos", func(c *Config) { c.MQTT.QoS = 3 }, true},
		{"missing broker host", func(c *Config) { c.MQTT.Broker.Host = "" }, true},
		{"invalid api port", func(c *Config) { c.API.Port = 0 }, true},
		{"tls without certs", func(c *Config) { c.API.TLS.Enabled = true }, true},
		{"email enabled without host", func(c *Config) { c.Notifications.Email.Enabled = true }, true},
		{
			"email enabled fully configured",
			func(c *Config) {
				c.Notifications.Email.Enabled = true
				c.Notifications.Email.Host = "smtp.example.com"
				c.Notifications.Email.Recipient = "owner@example.com"
			},
			false,
		},
		{"sms enabled without credentials", func(c *Config) { c.Notifications.SMS.Enabled = true }, true},
		{"short jwt secret", func(c *Config) { c.Security.JWT.Secret = "short" }, true},
		{
			"long jwt secret",
			func(c *Config) { c.Security.JWT.Secret = "0123456789abcdef0123456789abcdef" },
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
