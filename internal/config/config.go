package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
	Business  BusinessConfig
	Health    HealthConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type SchedulerConfig struct {
	QuotePurgeSchedule string
	Timezone           string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// BusinessConfig carries the form defaults and the caller-side limits.
type BusinessConfig struct {
	DefaultAmount      string
	DefaultDownPayment string
	DefaultFees        string
	DefaultAPR         string
	DefaultTermMonths  int
	MaxTermMonths      int
	QuoteRetention     time.Duration
	Presets            []PresetConfig
}

// PresetConfig is one quick-fill loan offered next to the defaults.
type PresetConfig struct {
	Name       string
	Amount     string
	TermMonths int
	APR        string
}

type HealthConfig struct {
	Timeout time.Duration
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Don't fail if .env file doesn't exist; real environment wins over the file
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	presets, err := parsePresets(v.GetString("PRESETS"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetString("DATABASE_PORT"),
			Name:            v.GetString("DATABASE_NAME"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: v.GetDuration("CACHE_TTL"),
		},
		Scheduler: SchedulerConfig{
			QuotePurgeSchedule: v.GetString("QUOTE_PURGE_SCHEDULE"),
			Timezone:           v.GetString("SCHEDULER_TIMEZONE"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Business: BusinessConfig{
			DefaultAmount:      v.GetString("DEFAULT_AMOUNT"),
			DefaultDownPayment: v.GetString("DEFAULT_DOWN_PAYMENT"),
			DefaultFees:        v.GetString("DEFAULT_FEES"),
			DefaultAPR:         v.GetString("DEFAULT_APR"),
			DefaultTermMonths:  v.GetInt("DEFAULT_TERM_MONTHS"),
			MaxTermMonths:      v.GetInt("MAX_TERM_MONTHS"),
			QuoteRetention:     v.GetDuration("QUOTE_RETENTION"),
			Presets:            presets,
		},
		Health: HealthConfig{
			Timeout: v.GetDuration("HEALTH_CHECK_TIMEOUT"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_NAME", "loan_amortizer")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "1h")
	v.SetDefault("QUOTE_PURGE_SCHEDULE", "0 0 3 * * *")
	v.SetDefault("SCHEDULER_TIMEZONE", "UTC")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DEFAULT_AMOUNT", "8000")
	v.SetDefault("DEFAULT_DOWN_PAYMENT", "0")
	v.SetDefault("DEFAULT_FEES", "0")
	v.SetDefault("DEFAULT_APR", "6.5")
	v.SetDefault("DEFAULT_TERM_MONTHS", 12)
	v.SetDefault("MAX_TERM_MONTHS", 1200)
	v.SetDefault("QUOTE_RETENTION", "720h")
	v.SetDefault("PRESETS", "personal:8000:12:6.5,auto:25000:60:7.5,mortgage:300000:360:6.75")
	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Business.DefaultTermMonths <= 0 {
		return fmt.Errorf("DEFAULT_TERM_MONTHS must be greater than 0")
	}

	if c.Business.MaxTermMonths < c.Business.DefaultTermMonths {
		return fmt.Errorf("MAX_TERM_MONTHS must be at least DEFAULT_TERM_MONTHS")
	}

	defaults := map[string]string{
		"DEFAULT_AMOUNT":       c.Business.DefaultAmount,
		"DEFAULT_DOWN_PAYMENT": c.Business.DefaultDownPayment,
		"DEFAULT_FEES":         c.Business.DefaultFees,
		"DEFAULT_APR":          c.Business.DefaultAPR,
	}
	for key, value := range defaults {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("%s must be a valid decimal: %w", key, err)
		}
		if d.IsNegative() {
			return fmt.Errorf("%s must not be negative", key)
		}
	}

	seen := make(map[string]bool, len(c.Business.Presets))
	for _, p := range c.Business.Presets {
		if p.Name == "" {
			return fmt.Errorf("PRESETS entries need a name")
		}
		if seen[p.Name] {
			return fmt.Errorf("PRESETS has duplicate name %q", p.Name)
		}
		seen[p.Name] = true

		for field, value := range map[string]string{"amount": p.Amount, "apr": p.APR} {
			d, err := decimal.NewFromString(value)
			if err != nil || d.IsNegative() {
				return fmt.Errorf("PRESETS %q has an invalid %s %q", p.Name, field, value)
			}
		}
		if p.TermMonths < 1 || p.TermMonths > c.Business.MaxTermMonths {
			return fmt.Errorf("PRESETS %q term must be between 1 and MAX_TERM_MONTHS", p.Name)
		}
	}

	if c.Business.QuoteRetention <= 0 {
		return fmt.Errorf("QUOTE_RETENTION must be a positive duration")
	}

	if c.Redis.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}

	if c.Health.Timeout <= 0 {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a positive duration")
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid IANA zone: %w", err)
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Scheduler.QuotePurgeSchedule); err != nil {
		return fmt.Errorf("QUOTE_PURGE_SCHEDULE must be a valid cron spec: %w", err)
	}

	return nil
}

// parsePresets reads comma-separated "name:amount:term:apr" entries.
func parsePresets(raw string) ([]PresetConfig, error) {
	var presets []PresetConfig
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("PRESETS entry %q must be name:amount:term:apr", entry)
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		term, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("PRESETS entry %q has an invalid term: %w", entry, err)
		}

		presets = append(presets, PresetConfig{
			Name:       parts[0],
			Amount:     parts[1],
			TermMonths: term,
			APR:        parts[3],
		})
	}
	return presets, nil
}

// DSN returns the Postgres connection string, preferring DATABASE_URL
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Addr returns the Redis host:port address
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// Location returns the time zone "today" is evaluated in
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetDefaultAmount returns the default loan amount as decimal
func (c *Config) GetDefaultAmount() decimal.Decimal {
	amount, _ := decimal.NewFromString(c.Business.DefaultAmount)
	return amount
}

// GetDefaultDownPayment returns the default down payment as decimal
func (c *Config) GetDefaultDownPayment() decimal.Decimal {
	down, _ := decimal.NewFromString(c.Business.DefaultDownPayment)
	return down
}

// GetDefaultFees returns the default financed fees as decimal
func (c *Config) GetDefaultFees() decimal.Decimal {
	fees, _ := decimal.NewFromString(c.Business.DefaultFees)
	return fees
}

// GetDefaultAPR returns the default annual rate (percent) as decimal
func (c *Config) GetDefaultAPR() decimal.Decimal {
	apr, _ := decimal.NewFromString(c.Business.DefaultAPR)
	return apr
}
