package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{"PORT", "ENV", "LOG_LEVEL", "MAX_PASSWORD_LENGTH", "SHUTDOWN_TIMEOUT"}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want %+v", cfg, Default())
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %q, want :8080", cfg.Addr())
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "passgen.toml", `
port = "9000"
env = "staging"
log_level = "warn"
max_password_length = 0
shutdown_timeout = "3s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{Port: "9000", Env: "staging", LogLevel: "warn", MaxLength: 0, ShutdownTimeout: 3 * time.Second}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}

	t.Setenv("PORT", "9100")
	t.Setenv("MAX_PASSWORD_LENGTH", "256")

	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("env should override file port, got %q", cfg.Port)
	}
	if cfg.MaxLength != 256 {
		t.Errorf("env should override file max length, got %d", cfg.MaxLength)
	}
	if cfg.Env != "staging" {
		t.Errorf("file env should survive, got %q", cfg.Env)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "bad max length", env: map[string]string{"MAX_PASSWORD_LENGTH": "lots"}},
		{name: "negative max length", env: map[string]string{"MAX_PASSWORD_LENGTH": "-1"}},
		{name: "bad timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
		{name: "bad port", env: map[string]string{"PORT": "http"}},
		{name: "debug in production", env: map[string]string{"ENV": "production", "LOG_LEVEL": "debug"}},
		{name: "bad file timeout", file: `shutdown_timeout = "later"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeFile(t, "bad.toml", tt.file)
			}

			if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoad_UnparsableFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "broken.toml", "port = ")

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is set, even to "".
	os.Unsetenv("LOG_LEVEL")
	path := writeFile(t, ".env", "LOG_LEVEL=error\n")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("LOG_LEVEL"); got != "error" {
		t.Errorf("LOG_LEVEL = %q, want error", got)
	}
}

func TestLoadDotEnv_NoFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}
