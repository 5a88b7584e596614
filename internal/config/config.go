package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
	Installment InstallmentConfig
	Printer     PrinterConfig
	Idempotency IdempotencyConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	Timezone string
}

type DatabaseConfig struct {
	Driver   string // postgres or sqlite
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	Path     string // sqlite file
	LogLevel string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

// InstallmentConfig holds the plan policy used when a sale is paid in installments.
type InstallmentConfig struct {
	FirstDueOffsetDays int
	IntervalDays       int
	MinCount           int
	MaxCount           int
	BookletPageSize    int
}

type PrinterConfig struct {
	Type      string
	USBPath   string
	Address   string
	StoreName string
	Width     int
}

type IdempotencyConfig struct {
	TTL time.Duration
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg(".env file not found, using environment variables")
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
			Path:     viper.GetString("DB_PATH"),
			LogLevel: viper.GetString("DB_LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		Installment: InstallmentConfig{
			FirstDueOffsetDays: viper.GetInt("INSTALLMENT_FIRST_DUE_DAYS"),
			IntervalDays:       viper.GetInt("INSTALLMENT_INTERVAL_DAYS"),
			MinCount:           viper.GetInt("INSTALLMENT_MIN_COUNT"),
			MaxCount:           viper.GetInt("INSTALLMENT_MAX_COUNT"),
			BookletPageSize:    viper.GetInt("BOOKLET_PAGE_SIZE"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			StoreName: viper.GetString("PRINTER_STORE_NAME"),
			Width:     viper.GetInt("PRINTER_WIDTH"),
		},
		Idempotency: IdempotencyConfig{
			TTL: time.Duration(viper.GetInt("IDEMPOTENCY_TTL_HOURS")) * time.Hour,
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "parkmoveis-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "parkmoveis")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("DB_PATH", "parkmoveis.db")
	viper.SetDefault("DB_LOG_LEVEL", "warn")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("INSTALLMENT_FIRST_DUE_DAYS", 30)
	viper.SetDefault("INSTALLMENT_INTERVAL_DAYS", 30)
	viper.SetDefault("INSTALLMENT_MIN_COUNT", 2)
	viper.SetDefault("INSTALLMENT_MAX_COUNT", 12)
	viper.SetDefault("BOOKLET_PAGE_SIZE", 4)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_STORE_NAME", "Park Moveis")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)
}

// Location resolves the business timezone used to decide "today".
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate rejects a policy the schedule generator cannot honour.
func (c *InstallmentConfig) Validate() error {
	if c.MinCount < 1 || c.MaxCount < c.MinCount {
		return fmt.Errorf("config: installment count range [%d, %d] is invalid", c.MinCount, c.MaxCount)
	}
	if c.FirstDueOffsetDays < 0 || c.IntervalDays < 1 {
		return fmt.Errorf("config: installment offsets must be positive")
	}
	if c.BookletPageSize < 1 {
		return fmt.Errorf("config: booklet page size must be positive")
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
