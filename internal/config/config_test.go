package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"GATHERINGS_PORT", "GATHERINGS_DATA_BACKEND", "GATHERINGS_DB_PATH",
		"GATHERINGS_STORE_KEY", "GATHERINGS_METRICS", "GATHERINGS_SHUTDOWN_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(key, "") // restores the original value on cleanup
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 || cfg.DataBackend != BackendSQLite || cfg.StoreKey != "gatheringsDB_v2" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Metrics || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GATHERINGS_PORT", "9090")
	t.Setenv("GATHERINGS_DATA_BACKEND", "memory")
	t.Setenv("GATHERINGS_METRICS", "false")
	t.Setenv("GATHERINGS_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9090 || cfg.DataBackend != BackendMemory || cfg.Metrics || cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("Addr = %s", cfg.Addr())
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("GATHERINGS_PORT", "abc")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric port")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
			DataBackend:     BackendSQLite,
			DBPath:          filepath.Join(t.TempDir(), "sub", "test.db"),
			StoreKey:        "gatheringsDB_v2",
			LogLevel:        "info",
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid sqlite backend config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "valid memory backend without path",
			mutate:  func(c *Config) { c.DataBackend = BackendMemory; c.DBPath = "" },
			wantErr: false,
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = 70000 },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "postgres" },
			wantErr:     true,
			errorString: "invalid data backend 'postgres': must be one of [memory sqlite]",
		},
		{
			name:        "sqlite backend missing database path",
			mutate:      func(c *Config) { c.DBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "database path is a directory",
			mutate:      func(c *Config) { c.DBPath = t.TempDir() },
			wantErr:     true,
			errorString: "is a directory",
		},
		{
			name: "database directory below a regular file",
			mutate: func(c *Config) {
				file := filepath.Join(t.TempDir(), "file")
				if err := os.WriteFile(file, nil, 0o600); err != nil {
					t.Fatal(err)
				}
				c.DBPath = filepath.Join(file, "sub", "test.db")
			},
			wantErr:     true,
			errorString: "is not a directory",
		},
		{
			name:        "blank store key",
			mutate:      func(c *Config) { c.StoreKey = " " },
			wantErr:     true,
			errorString: "store key cannot be empty",
		},
		{
			name:        "short shutdown timeout",
			mutate:      func(c *Config) { c.ShutdownTimeout = time.Millisecond },
			wantErr:     true,
			errorString: "invalid shutdown timeout 1ms: must be at least 1 second",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: `unknown log level "verbose"`,
		},
		{
			name:        "multiple errors are combined",
			mutate:      func(c *Config) { c.Port = 0; c.DataBackend = "x" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535\n- invalid data backend 'x'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateDoesNotCreateDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing", "nested")
	cfg := Config{
		Port:            8080,
		ShutdownTimeout: 10 * time.Second,
		DataBackend:     BackendSQLite,
		DBPath:          filepath.Join(dir, "test.db"),
		StoreKey:        "gatheringsDB_v2",
		LogLevel:        "info",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(dir)); !os.IsNotExist(err) {
		t.Errorf("Validate created %s (stat error %v)", filepath.Dir(dir), err)
	}
}
