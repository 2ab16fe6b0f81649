package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.DefaultLatitude != 28.6139 || cfg.DefaultLongitude != 77.2090 {
		t.Errorf("default location = %v,%v, want New Delhi", cfg.DefaultLatitude, cfg.DefaultLongitude)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %s, want 10s", cfg.RequestTimeout)
	}
	if cfg.CacheMaxAge != 3600 {
		t.Errorf("CacheMaxAge = %d, want 3600", cfg.CacheMaxAge)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled = false, want true")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv()

	os.Setenv("PORT", "3000")
	os.Setenv("ENV", "production")
	os.Setenv("DEFAULT_LATITUDE", "19.0760")
	os.Setenv("DEFAULT_LONGITUDE", "72.8777")
	os.Setenv("REQUEST_TIMEOUT", "2s")
	os.Setenv("CACHE_MAX_AGE", "60")
	os.Setenv("METRICS_ENABLED", "false")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.DefaultLatitude != 19.0760 {
		t.Errorf("DefaultLatitude = %v, want 19.0760", cfg.DefaultLatitude)
	}
	if cfg.DefaultLongitude != 72.8777 {
		t.Errorf("DefaultLongitude = %v, want 72.8777", cfg.DefaultLongitude)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("RequestTimeout = %s, want 2s", cfg.RequestTimeout)
	}
	if cfg.CacheMaxAge != 60 {
		t.Errorf("CacheMaxAge = %d, want 60", cfg.CacheMaxAge)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
}

func TestLoad_UnparseableFallsBack(t *testing.T) {
	clearEnv()

	os.Setenv("PORT", "eighty")
	os.Setenv("DEFAULT_LATITUDE", "north")
	os.Setenv("REQUEST_TIMEOUT", "soon")
	os.Setenv("METRICS_ENABLED", "maybe")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DefaultLatitude != 28.6139 {
		t.Errorf("DefaultLatitude = %v, want 28.6139", cfg.DefaultLatitude)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %s, want 10s", cfg.RequestTimeout)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled = false, want true")
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv()
	os.Setenv("DEFAULT_LATITUDE", "91")
	defer clearEnv()

	if _, err := Load(); err == nil {
		t.Error("Load() with latitude 91 succeeded, want error")
	}
}

func validConfig() Config {
	return Config{
		Port:             8080,
		Env:              EnvDevelopment,
		RequestTimeout:   10 * time.Second,
		DefaultLatitude:  28.6139,
		DefaultLongitude: 77.2090,
		CacheMaxAge:      3600,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid development config", mutate: func(c *Config) {}},
		{
			name: "valid production config",
			mutate: func(c *Config) {
				c.Env = EnvProduction
				c.LogFormat = "json"
			},
		},
		{name: "invalid port - too low", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "invalid port - too high", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "invalid environment", mutate: func(c *Config) { c.Env = "invalid" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: true},
		{name: "latitude out of range", mutate: func(c *Config) { c.DefaultLatitude = -90.5 }, wantErr: true},
		{name: "longitude out of range", mutate: func(c *Config) { c.DefaultLongitude = 180.1 }, wantErr: true},
		{name: "poles are valid", mutate: func(c *Config) { c.DefaultLatitude = 90; c.DefaultLongitude = -180 }},
		{name: "negative cache age", mutate: func(c *Config) { c.CacheMaxAge = -1 }, wantErr: true},
		{name: "zero cache age disables caching", mutate: func(c *Config) { c.CacheMaxAge = 0 }},
		{name: "invalid log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: true},
		{name: "invalid log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	cfg.Env = EnvProduction
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Env: EnvProduction}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}

	cfg.Env = EnvStaging
	if cfg.IsProduction() {
		t.Error("IsProduction() = true, want false")
	}
}

// clearEnv removes all config-related environment variables
func clearEnv() {
	vars := []string{
		"PORT", "ENV", "REQUEST_TIMEOUT",
		"DEFAULT_LATITUDE", "DEFAULT_LONGITUDE",
		"CACHE_MAX_AGE", "METRICS_ENABLED",
		"LOG_LEVEL", "LOG_FORMAT",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
