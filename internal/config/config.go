package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

const (
	LockBackendMemory = "memory"
	LockBackendRedis  = "redis"

	StaffSourceDatabase = "database"
	StaffSourceHTTP     = "http"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	BusinessHours  BusinessHoursConfig  `toml:"business_hours"`
	Booking        BookingConfig        `toml:"booking"`
	Locking        LockingConfig        `toml:"locking"`
	Redis          RedisConfig          `toml:"redis"`
	StaffDirectory StaffDirectoryConfig `toml:"staff_directory"`
	RateLimit      RateLimitConfig      `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	ConnectRetries  int    `toml:"connect_retries"`
	RetryInterval   int    `toml:"retry_interval"`
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessHoursConfig рабочие часы салона (одинаковые для всех дней)
type BusinessHoursConfig struct {
	OpeningTime            types.TimeString `toml:"opening_time"`
	ClosingTime            types.TimeString `toml:"closing_time"`
	SlotGranularityMinutes int              `toml:"slot_granularity_minutes"`
	DefaultDurationMinutes int              `toml:"default_duration_minutes"`
	Timezone               string           `toml:"timezone"`
}

// Location загружает часовой пояс
func (b BusinessHoursConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.Timezone)
}

type BookingConfig struct {
	// AdvanceBookingDays максимальное количество дней вперед (0 - без ограничений)
	AdvanceBookingDays int `toml:"advance_booking_days"`
}

type LockingConfig struct {
	Backend    string `toml:"backend"`
	TTLSeconds int    `toml:"ttl_seconds"`
	// WaitTimeoutSeconds сколько ждать блокировку, прежде чем вернуть ошибку
	WaitTimeoutSeconds int `toml:"wait_timeout_seconds"`
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type StaffDirectoryConfig struct {
	Source  string `toml:"source"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerMinute float64 `toml:"requests_per_minute"`
	Burst             int     `toml:"burst"`
}

// Load читает .env (если есть) и TOML-файл конфигурации
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			ConnectRetries:  5,
			RetryInterval:   5,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "appointment-service"},
		BusinessHours: BusinessHoursConfig{
			OpeningTime:            "09:00",
			ClosingTime:            "18:00",
			SlotGranularityMinutes: 15,
			DefaultDurationMinutes: 15,
			Timezone:               "UTC",
		},
		Locking:        LockingConfig{Backend: LockBackendMemory, TTLSeconds: 10, WaitTimeoutSeconds: 5},
		Redis:          RedisConfig{Addr: "localhost:6379", KeyPrefix: "appointments:lock:"},
		StaffDirectory: StaffDirectoryConfig{Source: StaffSourceDatabase, Timeout: 5},
		RateLimit:      RateLimitConfig{RequestsPerMinute: 30, Burst: 5},
	}
}

// applyEnv секреты из окружения перекрывают значения из файла
func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	bh := c.BusinessHours

	if err := bh.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("%w: business_hours.opening_time: %v", ErrInvalidConfig, err)
	}
	if err := bh.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("%w: business_hours.closing_time: %v", ErrInvalidConfig, err)
	}
	if !bh.OpeningTime.IsBefore(bh.ClosingTime) {
		return fmt.Errorf("%w: business_hours: closing_time must be after opening_time", ErrInvalidConfig)
	}
	if bh.SlotGranularityMinutes <= 0 {
		return fmt.Errorf("%w: business_hours.slot_granularity_minutes must be positive", ErrInvalidConfig)
	}
	if bh.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("%w: business_hours.default_duration_minutes must be positive", ErrInvalidConfig)
	}
	if _, err := bh.Location(); err != nil {
		return fmt.Errorf("%w: business_hours.timezone: %v", ErrInvalidConfig, err)
	}

	if c.Booking.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: booking.advance_booking_days must not be negative", ErrInvalidConfig)
	}

	switch c.Locking.Backend {
	case LockBackendMemory:
	case LockBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for redis locking", ErrInvalidConfig)
		}
		if c.Locking.TTLSeconds <= 0 {
			return fmt.Errorf("%w: locking.ttl_seconds must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown locking.backend %q", ErrInvalidConfig, c.Locking.Backend)
	}

	switch c.StaffDirectory.Source {
	case StaffSourceDatabase:
	case StaffSourceHTTP:
		if c.StaffDirectory.URL == "" {
			return fmt.Errorf("%w: staff_directory.url is required for http source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown staff_directory.source %q", ErrInvalidConfig, c.StaffDirectory.Source)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_minute and burst", ErrInvalidConfig)
	}

	return nil
}
