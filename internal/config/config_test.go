package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ALLOW_NEGATIVE_STOCK", "")
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %s, want sqlite", cfg.Database.Driver)
	}
	if cfg.Shop.AllowNegativeStock {
		t.Error("stock guard should be on by default")
	}
	if cfg.Location().String() != "UTC" {
		t.Errorf("Location = %s, want UTC", cfg.Location())
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_DSN", "user:pw@tcp(localhost:3306)/shop")
	t.Setenv("ALLOW_NEGATIVE_STOCK", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Database.Driver != "mysql" {
		t.Errorf("Driver = %s, want mysql", cfg.Database.Driver)
	}
	if !cfg.Shop.AllowNegativeStock {
		t.Error("ALLOW_NEGATIVE_STOCK=true was not applied")
	}
	if len(cfg.Server.CORSAllowedOrigins) != 2 || cfg.Server.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("CORS origins = %v", cfg.Server.CORSAllowedOrigins)
	}
	if cfg.Location().String() != "Asia/Jakarta" {
		t.Errorf("Location = %s, want Asia/Jakarta", cfg.Location())
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
			Auth:     AuthConfig{JWTSecret: "0123456789abcdef", TokenHourLifespan: 1},
			Shop:     ShopConfig{Timezone: "UTC"},
			LogLevel: "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Server.Port = "" }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, true},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }, true},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"zero token lifespan", func(c *Config) { c.Auth.TokenHourLifespan = 0 }, true},
		{"bad timezone", func(c *Config) { c.Shop.Timezone = "Mars/Olympus" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, true},
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
