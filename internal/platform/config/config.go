package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Odin     OdinConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// RateLimitRPS <= 0 desactiva el limitador de /api.
	RateLimitRPS   float64
	RateLimitBurst int
}

func (s ServerConfig) Address() string {
	return ":" + s.Port
}

// DatabaseConfig: si DSN viene vacío se arma desde DB_HOST/DB_USER/...
// Sin host ni DSN el servicio corre con repos in-memory.
type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	Migrate  bool
}

func (d DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(d.DSN) != "" || strings.TrimSpace(d.Host) != ""
}

func (d DatabaseConfig) ConnString() string {
	if dsn := strings.TrimSpace(d.DSN); dsn != "" {
		return dsn
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

type LogConfig struct {
	Level  string
	Format string
}

// OdinConfig configura el verificador de tokens. Sin BaseURL se usa modo dev
// (X-Debug-User-ID).
type OdinConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func (o OdinConfig) Enabled() bool {
	return strings.TrimSpace(o.BaseURL) != "" && strings.TrimSpace(o.APIKey) != ""
}

// Load lee .env (opcional) y luego el entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "vet-medication-reference"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 0),
			RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 20),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvInt("DB_PORT", 5432),
			Name:     getEnv("DB_NAME", "medication_db"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Migrate:  getEnvBool("DB_MIGRATE", true),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Odin: OdinConfig{
			BaseURL: getEnv("ODIN_BASE_URL", ""),
			APIKey:  getEnv("ODIN_API_KEY", ""),
			Timeout: getEnvDuration("ODIN_TIMEOUT", 5*time.Second),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	var errs []string

	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		errs = append(errs, "PORT must be numeric")
	}
	if cfg.App.Environment == "production" && cfg.Database.SSLMode == "disable" && cfg.Database.Enabled() && cfg.Database.DSN == "" {
		errs = append(errs, "DB_SSLMODE=disable is not allowed in production")
	}
	if cfg.Server.RateLimitRPS > 0 && cfg.Server.RateLimitBurst < 1 {
		errs = append(errs, "RATE_LIMIT_BURST must be at least 1")
	}
	if strings.TrimSpace(cfg.Odin.BaseURL) != "" && strings.TrimSpace(cfg.Odin.APIKey) == "" {
		errs = append(errs, "ODIN_API_KEY is required when ODIN_BASE_URL is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
