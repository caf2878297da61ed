package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Режимы аутентификации
const (
	AuthModeJWT    = "jwt"
	AuthModeHeader = "header"
)

// Драйверы блокировок комнат
const (
	LockDriverLocal = "local"
	LockDriverRedis = "redis"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	Locking   LockingConfig   `toml:"locking"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	TxMaxRetries    int    `toml:"tx_max_retries"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки идентификации пользователя
type AuthConfig struct {
	Mode      string `toml:"mode"` // "jwt" или "header"
	JWTSecret string `toml:"jwt_secret"`
}

// LockingConfig настройки блокировок комнат (длительности в миллисекундах)
type LockingConfig struct {
	Driver      string `toml:"driver"` // "local" или "redis"
	WaitTimeout int    `toml:"wait_timeout_ms"`
	TTL         int    `toml:"ttl_ms"`
	RetryEvery  int    `toml:"retry_every_ms"`
}

// RedisConfig подключение к Redis (используется при locking.driver = "redis")
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// RateLimitConfig ограничение частоты создания бронирований
type RateLimitConfig struct {
	Enabled bool   `toml:"enabled"`
	Rate    string `toml:"rate"` // формат ulule/limiter, например "30-M"
}

// Load загружает конфигурацию из TOML файла
// Перед чтением подхватывает .env (если есть), после - переопределяет значения из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults заполняет незаданные значения
func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Host, "localhost")
	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.SSLMode, "disable")
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	setDefault(&c.Database.TxMaxRetries, 3)

	setDefault(&c.Logs.Level, "info")

	setDefault(&c.Metrics.Path, "/metrics")
	setDefault(&c.Metrics.ServiceName, "room_booking_service")

	setDefault(&c.Auth.Mode, AuthModeHeader)

	setDefault(&c.Locking.Driver, LockDriverLocal)
	setDefault(&c.Locking.WaitTimeout, 2000)
	setDefault(&c.Locking.TTL, 10000)
	setDefault(&c.Locking.RetryEvery, 25)

	setDefault(&c.Redis.Addr, "localhost:6379")
	setDefault(&c.Redis.KeyPrefix, "room-booking:")

	setDefault(&c.RateLimit.Rate, "30-M")
}

// applyEnv переопределяет значения переменными окружения
func (c *Config) applyEnv() {
	envString(&c.Database.Host, "DB_HOST")
	envInt(&c.Database.Port, "DB_PORT")
	envString(&c.Database.User, "DB_USER")
	envString(&c.Database.Password, "DB_PASSWORD")
	envString(&c.Database.DBName, "DB_NAME")
	envString(&c.Database.SSLMode, "DB_SSLMODE")

	envInt(&c.Server.HTTPPort, "HTTP_PORT")

	envString(&c.Logs.Level, "LOG_LEVEL")
	envString(&c.Logs.File, "LOG_FILE")

	envBool(&c.Metrics.Enabled, "METRICS_ENABLED")

	envString(&c.Auth.Mode, "AUTH_MODE")
	envString(&c.Auth.JWTSecret, "JWT_SECRET")

	envString(&c.Locking.Driver, "LOCK_DRIVER")
	envString(&c.Redis.Addr, "REDIS_ADDR")
	envString(&c.Redis.Password, "REDIS_PASSWORD")

	envBool(&c.RateLimit.Enabled, "RATE_LIMIT_ENABLED")
	envString(&c.RateLimit.Rate, "RATE_LIMIT")
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return errors.New("config: database.dbname is required")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("config: database.max_idle_conns (%d) exceeds max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	switch c.Auth.Mode {
	case AuthModeHeader:
	case AuthModeJWT:
		if c.Auth.JWTSecret == "" {
			return errors.New("config: auth.jwt_secret is required in jwt mode")
		}
	default:
		return fmt.Errorf("config: unknown auth.mode %q", c.Auth.Mode)
	}

	switch c.Locking.Driver {
	case LockDriverLocal, LockDriverRedis:
	default:
		return fmt.Errorf("config: unknown locking.driver %q", c.Locking.Driver)
	}
	if c.Locking.WaitTimeout <= 0 {
		return errors.New("config: locking.wait_timeout_ms must be positive")
	}

	return nil
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

func envString(field *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*field = v
	}
}

func envInt(field *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*field = n
		}
	}
}

func envBool(field *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			*field = b
		}
	}
}
