package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/random"
)

// Config is the complete server configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	Storage  StorageConfig  `toml:"storage"`
	Holiday  HolidayConfig  `toml:"holiday"`
}

type ServerConfig struct {
	Port      int    `toml:"port"`
	ClientURL string `toml:"client_url"`
}

// DatabaseConfig holds connection settings; URL wins over the discrete fields
type DatabaseConfig struct {
	URL      string `toml:"url"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	MaxConns int32  `toml:"max_conns"`
}

type AuthConfig struct {
	JWTSecret       string        `toml:"jwt_secret"`
	TokenTTL        time.Duration `toml:"token_ttl"`
	LoginAttempts   int           `toml:"login_attempts"`
	LoginWindow     time.Duration `toml:"login_window"`
	GeneratedSecret bool          `toml:"-"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StorageConfig points at the MinIO/S3 bucket holding attachments
type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
	Bucket    string `toml:"bucket"`
}

// HolidayConfig controls the public holiday sync
type HolidayConfig struct {
	APIURL   string        `toml:"api_url"`
	Country  string        `toml:"country"`
	Years    []int         `toml:"years"`
	Timeout  time.Duration `toml:"timeout"`
	SyncCron string        `toml:"sync_cron"`
}

// Load reads .env (when present), the environment and then the optional TOML
// file named by CONFIG_FILE.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARNING: failed to read .env: %v", err)
	}

	now := time.Now()
	cfg := &Config{
		Server: ServerConfig{
			Port:      getenvInt("PORT", 5000),
			ClientURL: getenv("CLIENT_URL", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenvInt("DB_PORT", 5432),
			User:     getenv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME", "maintdesk"),
			MaxConns: int32(getenvInt("DB_MAX_CONNS", 10)),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			TokenTTL:      getenvDuration("JWT_TTL", 24*time.Hour),
			LoginAttempts: getenvInt("LOGIN_MAX_ATTEMPTS", 10),
			LoginWindow:   getenvDuration("LOGIN_WINDOW", 15*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getenvInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Endpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
			Bucket:    getenv("MINIO_BUCKET", "maintdesk-files"),
		},
		Holiday: HolidayConfig{
			APIURL:   getenv("HOLIDAY_API_URL", "https://date.nager.at"),
			Country:  getenv("HOLIDAY_COUNTRY", "KR"),
			Years:    getenvYears("HOLIDAY_SYNC_YEARS", []int{now.Year() - 1, now.Year(), now.Year() + 1}),
			Timeout:  getenvDuration("HOLIDAY_API_TIMEOUT", 10*time.Second),
			SyncCron: getenv("HOLIDAY_SYNC_CRON", "0 3 * * *"),
		},
	}

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		if err := LoadFile(file, cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = random.String(32) // Generate random secret for development
		cfg.Auth.GeneratedSecret = true
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}

	return cfg, nil
}

// LoadFile overlays the values present in a TOML file onto cfg
func LoadFile(filename string, cfg *Config) error {
	if _, err := toml.DecodeFile(filename, cfg); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	return nil
}

// DSN returns the pgx connection string
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	q := u.Query()
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String()
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func getenvYears(key string, fallback []int) []int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var years []int
	for _, part := range strings.Split(val, ",") {
		if y, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			years = append(years, y)
		}
	}
	if len(years) == 0 {
		return fallback
	}
	return years
}
