package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
[database]
dbname = "rooms"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, AuthModeHeader, cfg.Auth.Mode)
	assert.Equal(t, LockDriverLocal, cfg.Locking.Driver)
	assert.Equal(t, 2000, cfg.Locking.WaitTimeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "30-M", cfg.RateLimit.Rate)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9000

[database]
host = "db.internal"
dbname = "rooms"
password = "from-file"
`)

	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 9100, cfg.Server.HTTPPort)
	assert.Equal(t, AuthModeJWT, cfg.Auth.Mode)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{Database: DatabaseConfig{DBName: "rooms"}}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "missing dbname", mutate: func(c *Config) { c.Database.DBName = "" }, wantErr: true},
		{name: "jwt without secret", mutate: func(c *Config) { c.Auth.Mode = AuthModeJWT }, wantErr: true},
		{name: "unknown auth mode", mutate: func(c *Config) { c.Auth.Mode = "basic" }, wantErr: true},
		{name: "unknown lock driver", mutate: func(c *Config) { c.Locking.Driver = "etcd" }, wantErr: true},
		{name: "idle exceeds open", mutate: func(c *Config) { c.Database.MaxIdleConns = 100 }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", d.DSN())
}
