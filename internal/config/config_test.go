package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Postgres: PostgresConfig{DSN: "postgres://localhost:5432/hirepath"},
		Redis:    RedisConfig{Addrs: []string{"localhost:6379"}},
		Auth:     AuthConfig{JWTSecret: "test-secret"},
		AI:       AIConfig{ChatModel: "gpt-4o-mini"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.HTTP.Port = 0 }},
		{"dsn", func(c *Config) { c.Postgres.DSN = "" }},
		{"redis_addrs", func(c *Config) { c.Redis.Addrs = nil }},
		{"jwt_secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"chat_model", func(c *Config) { c.AI.ChatModel = "" }},
		{"page_size", func(c *Config) { c.Search.DefaultPageSize = 500 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Search.TopK != 5 {
		t.Errorf("expected default top_k 5, got %d", cfg.Search.TopK)
	}
	if cfg.Search.DefaultPageSize != 20 {
		t.Errorf("expected default page size 20, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Redis.KeyPrefix != "hirepath:" {
		t.Errorf("expected key prefix hirepath:, got %q", cfg.Redis.KeyPrefix)
	}
	if cfg.AI.ParseTimeoutSec != 10 {
		t.Errorf("expected parse timeout 10s, got %d", cfg.AI.ParseTimeoutSec)
	}
	if cfg.NATS.Subject != "hirepath.reindex" {
		t.Errorf("unexpected default subject %q", cfg.NATS.Subject)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("HIREPATH_TEST_VAR", "secret-value")
	defer os.Unsetenv("HIREPATH_TEST_VAR")

	tests := []struct {
		in, want string
	}{
		{"key: ${HIREPATH_TEST_VAR}", "key: secret-value"},
		{"key: ${HIREPATH_UNSET_VAR:-fallback}", "key: fallback"},
		{"key: ${HIREPATH_TEST_VAR:-fallback}", "key: secret-value"},
		{"key: ${HIREPATH_UNSET_VAR}", "key: "},
		{"key: plain", "key: plain"},
	}
	for _, tc := range tests {
		got := string(expandEnvVars([]byte(tc.in)))
		if got != tc.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
