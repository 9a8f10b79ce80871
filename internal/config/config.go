package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Auth          AuthConfig          `toml:"auth"`
	Redis         RedisConfig         `toml:"redis"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Notifications NotificationsConfig `toml:"notifications"`
	Storage       StorageConfig       `toml:"storage"`
	Jobs          JobsConfig          `toml:"jobs"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`

	// AllowedOrigins origin админки для WebSocket ленты; пусто - только тот же origin
	AllowedOrigins []string `toml:"allowed_origins"`
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
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
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

// AuthConfig настройки проверки токенов.
// Если JWTSecret пустой, токен проверяется удаленно через IdentityURL.
type AuthConfig struct {
	JWTSecret       string   `toml:"jwt_secret"`
	IdentityURL     string   `toml:"identity_url"`
	IdentityAPIKey  string   `toml:"identity_api_key"`
	IdentityTimeout int      `toml:"identity_timeout"`
	AdminEmails     []string `toml:"admin_emails"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
}

// RateLimitConfig лимит на публичные пишущие эндпоинты (запросов в окно на IP)
type RateLimitConfig struct {
	Enabled        bool     `toml:"enabled"`
	Requests       int      `toml:"requests"`
	WindowSeconds  int      `toml:"window_seconds"`
	TrustedProxies []string `toml:"trusted_proxies"` // IP или CIDR балансировщиков
}

type NotificationsConfig struct {
	Enabled        bool     `toml:"enabled"`
	SendGridAPIKey string   `toml:"sendgrid_api_key"`
	FromEmail      string   `toml:"from_email"`
	FromName       string   `toml:"from_name"`
	AdminEmails    []string `toml:"admin_emails"`
}

type StorageConfig struct {
	Enabled       bool   `toml:"enabled"`
	Bucket        string `toml:"bucket"`
	Region        string `toml:"region"`
	Endpoint      string `toml:"endpoint"`
	PublicBaseURL string `toml:"public_base_url"`
}

// JobsConfig расписания фоновых задач в формате cron. Пустая строка отключает задачу.
type JobsConfig struct {
	Timezone           string `toml:"timezone"` // в каком поясе читать расписания
	RemindersSpec      string `toml:"reminders_spec"`
	CalendarPublishKey string `toml:"calendar_publish_key"`
	CalendarSpec       string `toml:"calendar_spec"`
}

// Load читает TOML файл, подгружает .env (если есть) и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// .env опционален
	_ = godotenv.Load()
	cfg.applyEnv()

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
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "consulting-service",
		},
		Auth:      AuthConfig{IdentityTimeout: 5},
		Redis:     RedisConfig{Channel: "reservations"},
		RateLimit: RateLimitConfig{Requests: 10, WindowSeconds: 60},
		Jobs:      JobsConfig{Timezone: "UTC"},
	}
}

// applyEnv переопределяет секреты и адреса из переменных окружения
func (c *Config) applyEnv() {
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.IdentityURL, "IDENTITY_URL")
	setString(&c.Auth.IdentityAPIKey, "IDENTITY_API_KEY")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Notifications.SendGridAPIKey, "SENDGRID_API_KEY")
	setString(&c.Storage.Bucket, "S3_BUCKET")
	setString(&c.Storage.Region, "AWS_REGION")
	setString(&c.Storage.Endpoint, "S3_ENDPOINT")
	if v, ok := os.LookupEnv("ADMIN_EMAILS"); ok && v != "" {
		c.Auth.AdminEmails = splitList(v)
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Auth.JWTSecret == "" && c.Auth.IdentityURL == "" {
		problems = append(problems, "auth.jwt_secret or auth.identity_url is required")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0) {
		problems = append(problems, "rate_limit.requests and rate_limit.window_seconds must be positive")
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !validProxy(proxy) {
			problems = append(problems, fmt.Sprintf("rate_limit.trusted_proxies entry %q is not an IP or CIDR", proxy))
		}
	}
	if c.Notifications.Enabled && (c.Notifications.SendGridAPIKey == "" || c.Notifications.FromEmail == "") {
		problems = append(problems, "notifications.sendgrid_api_key and notifications.from_email are required when notifications are enabled")
	}
	if c.Storage.Enabled && (c.Storage.Bucket == "" || c.Storage.Region == "") {
		problems = append(problems, "storage.bucket and storage.region are required when storage is enabled")
	}
	if _, err := time.LoadLocation(c.Jobs.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("jobs.timezone %q is unknown", c.Jobs.Timezone))
	}
	if c.Jobs.CalendarSpec != "" && !c.Storage.Enabled {
		problems = append(problems, "jobs.calendar_spec requires storage to be enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validProxy(entry string) bool {
	entry = strings.TrimSpace(entry)
	if strings.Contains(entry, "/") {
		_, _, err := net.ParseCIDR(entry)
		return err == nil
	}
	return net.ParseIP(entry) != nil
}
