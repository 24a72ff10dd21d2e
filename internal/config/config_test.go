package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/tmp/giftwell-test"},
		Server: ServerConfig{
			Port:           "8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Auth: AuthConfig{AccessTokenDuration: 168 * time.Hour},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty environment",
			mutate:  func(c *Config) { c.App.Environment = "" },
			wantErr: true,
		},
		{
			name:    "invalid environment",
			mutate:  func(c *Config) { c.App.Environment = "prod" },
			wantErr: true,
		},
		{
			name:    "staging environment",
			mutate:  func(c *Config) { c.App.Environment = "staging" },
			wantErr: false,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logger.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "uppercase log level accepted",
			mutate:  func(c *Config) { c.Logger.Level = "DEBUG" },
			wantErr: false,
		},
		{
			name:    "empty data path",
			mutate:  func(c *Config) { c.Data.BasePath = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := validConfig()
	want := filepath.Join("/tmp/giftwell-test", "giftwell.db")
	if got := cfg.DatabasePath(); got != want {
		t.Errorf("DatabasePath() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home dir: %v", err)
	}

	tests := []struct {
		name        string
		path        string
		defaultPath string
		want        string
	}{
		{
			name:        "empty uses default",
			path:        "",
			defaultPath: "/var/lib/giftwell",
			want:        "/var/lib/giftwell",
		},
		{
			name: "tilde expansion",
			path: "~/giftwell-data",
			want: filepath.Join(homeDir, "giftwell-data"),
		},
		{
			name: "absolute path unchanged",
			path: "/opt/giftwell",
			want: "/opt/giftwell",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.path, tt.defaultPath)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitOrigins(t *testing.T) {
	got := splitOrigins("http://localhost:5173, https://gifts.example.com ,")
	want := []string{"http://localhost:5173", "https://gifts.example.com"}
	if len(got) != len(want) {
		t.Fatalf("splitOrigins() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitOrigins()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "# comment line\nGIFTWELL_TEST_KEY=from-file\nGIFTWELL_TEST_QUOTED=\"quoted value\"\nnot a pair\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	t.Setenv("GIFTWELL_TEST_EXISTING", "from-env")
	t.Setenv("GIFTWELL_TEST_KEY", "")
	os.Unsetenv("GIFTWELL_TEST_KEY")
	os.Unsetenv("GIFTWELL_TEST_QUOTED")
	defer os.Unsetenv("GIFTWELL_TEST_KEY")
	defer os.Unsetenv("GIFTWELL_TEST_QUOTED")

	if err := loadEnvFile(envFile); err != nil {
		t.Fatalf("loadEnvFile() error = %v", err)
	}

	if got := os.Getenv("GIFTWELL_TEST_KEY"); got != "from-file" {
		t.Errorf("GIFTWELL_TEST_KEY = %q, want %q", got, "from-file")
	}
	if got := os.Getenv("GIFTWELL_TEST_QUOTED"); got != "quoted value" {
		t.Errorf("GIFTWELL_TEST_QUOTED = %q, want %q", got, "quoted value")
	}
	if got := os.Getenv("GIFTWELL_TEST_EXISTING"); got != "from-env" {
		t.Errorf("existing variable was overwritten: %q", got)
	}
}
