package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	DatabaseService DatabaseServiceConfig `mapstructure:"database_service"`
	WebService      WebServiceConfig      `mapstructure:"web_service"`
	Store           StoreConfig           `mapstructure:"store"`
	RedisService    RedisServiceConfig    `mapstructure:"redis_service"`
	JWT             JWTConfig             `mapstructure:"jwt"`
	Log             LogConfig             `mapstructure:"log"`
	Report          ReportConfig          `mapstructure:"report"`
	Assets          AssetsConfig          `mapstructure:"assets"`
	SMTP            SMTPConfig            `mapstructure:"smtp"`
}

type DatabaseServiceConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Driver      string `mapstructure:"driver"`
	DatabaseURL string `mapstructure:"database_url"`
}

type WebServiceConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// StoreConfig selects how the web API reaches the table service.
// Mode "local" opens the database in-process, "remote" calls the database service over HTTP.
type StoreConfig struct {
	Mode               string        `mapstructure:"mode"`
	DatabaseServiceURL string        `mapstructure:"database_service_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

type RedisServiceConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type ReportConfig struct {
	HotelName       string `mapstructure:"hotel_name"`
	CurrencySymbol  string `mapstructure:"currency_symbol"`
	DefaultPreparer string `mapstructure:"default_preparer"`
	ShareBaseURL    string `mapstructure:"share_base_url"`
}

// AssetsConfig locates the logo and cover photograph embedded in PDF reports.
type AssetsConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	LogoPath  string        `mapstructure:"logo_path"`
	CoverPath string        `mapstructure:"cover_path"`
	SharedTTL time.Duration `mapstructure:"shared_ttl"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
}

var cfg *Config

// Load loads the configuration from a YAML file. A .env file next to the
// working directory is loaded first so HOTEL_* variables can override keys.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("HOTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		// Read config file
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg = loaded
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database_service.host", "127.0.0.1")
	v.SetDefault("database_service.port", 8081)
	v.SetDefault("database_service.driver", "sqlite3")
	v.SetDefault("database_service.database_url", "data/hotel.db")

	v.SetDefault("web_service.host", "0.0.0.0")
	v.SetDefault("web_service.port", 8080)

	v.SetDefault("store.mode", "local")
	v.SetDefault("store.database_service_url", "http://127.0.0.1:8081")
	v.SetDefault("store.timeout", 30*time.Second)

	v.SetDefault("redis_service.enabled", false)
	v.SetDefault("redis_service.host", "127.0.0.1")
	v.SetDefault("redis_service.port", 6379)
	v.SetDefault("redis_service.password", "")
	v.SetDefault("redis_service.db", 0)

	v.SetDefault("jwt.secret_key", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("report.hotel_name", "Lavimac Royal Hotel")
	v.SetDefault("report.currency_symbol", "$")
	v.SetDefault("report.default_preparer", "Hotel Manager")
	v.SetDefault("report.share_base_url", "http://localhost:8080")

	v.SetDefault("assets.base_url", "http://localhost:3000")
	v.SetDefault("assets.logo_path", "/logo.png")
	v.SetDefault("assets.cover_path", "/hotel-cover.jpg")
	v.SetDefault("assets.shared_ttl", 24*time.Hour)

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.from_name", "Hotel Reports")
}

// Get returns the loaded configuration
func Get() *Config {
	return cfg
}

// GetDatabaseServiceAddr returns the database service address
func (c *Config) GetDatabaseServiceAddr() string {
	return fmt.Sprintf("%s:%d", c.DatabaseService.Host, c.DatabaseService.Port)
}

// GetWebServiceAddr returns the web service address
func (c *Config) GetWebServiceAddr() string {
	return fmt.Sprintf("%s:%d", c.WebService.Host, c.WebService.Port)
}

// GetRedisAddr returns the redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisService.Host, c.RedisService.Port)
}

// SMTPConfigured reports whether e-mail sharing can be offered.
func (c *Config) SMTPConfigured() bool {
	return c.SMTP.Host != "" && c.SMTP.From != ""
}
