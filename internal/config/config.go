package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/quitofx/newswindow/internal/models"
)

type Config struct {
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"log_level"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Calendar    CalendarConfig `mapstructure:"calendar"`
	Telegram    TelegramConfig `mapstructure:"telegram"`
	Trading     TradingConfig  `mapstructure:"trading"`
	Schedule    ScheduleConfig `mapstructure:"schedule"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CalendarConfig points at the economic-calendar source. Countries is
// the region filter passed through to the source query.
type CalendarConfig struct {
	ServiceURL      string   `mapstructure:"service_url"`
	TimeoutSeconds  int      `mapstructure:"timeout_seconds"`
	CacheTTLMinutes int      `mapstructure:"cache_ttl_minutes"`
	Countries       []string `mapstructure:"countries"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	// ReportChatID always receives scheduled reports, in addition to
	// any chats registered via /start.
	ReportChatID int64 `mapstructure:"report_chat_id"`
	// ChunkLimit is the per-message character budget used when
	// splitting long reports.
	ChunkLimit int `mapstructure:"chunk_limit"`
}

// SessionConfig is one trading session as written in the config file.
type SessionConfig struct {
	Name  string `mapstructure:"name"`
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// TradingConfig carries every knob of the session availability engine.
// Constructed once at startup and passed by reference, never mutated.
type TradingConfig struct {
	Pair                  string            `mapstructure:"pair"`
	Timezone              string            `mapstructure:"timezone"`
	BlackoutRadiusMinutes int               `mapstructure:"blackout_radius_minutes"`
	MinimumWindowMinutes  int               `mapstructure:"minimum_window_minutes"`
	// HolidayKeyword triggers full-day cancellation when contained
	// (case-insensitively) in any relevant event title. Deliberately a
	// coarse containment match; kept configurable instead of fixed.
	HolidayKeyword   string            `mapstructure:"holiday_keyword"`
	Currencies       []string          `mapstructure:"currencies"`
	CurrencyCodes    map[string]string `mapstructure:"currency_codes"`
	ImportanceLevels map[string]string `mapstructure:"importance_levels"`
	Sessions         []SessionConfig   `mapstructure:"sessions"`
}

type ScheduleConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// DailyCron requests tomorrow's day report; WeeklyCron requests the
	// week report starting today. Both run in the trading timezone.
	DailyCron  string `mapstructure:"daily_cron"`
	WeeklyCron string `mapstructure:"weekly_cron"`
}

// Location loads the configured trading timezone.
func (t *TradingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid trading timezone %q: %w", t.Timezone, err)
	}
	return loc, nil
}

// ParsedSessions converts the configured session definitions into
// typed trading sessions, validating start < end.
func (t *TradingConfig) ParsedSessions() ([]models.TradingSession, error) {
	sessions := make([]models.TradingSession, 0, len(t.Sessions))
	for _, sc := range t.Sessions {
		start, err := models.ParseClockTime(sc.Start)
		if err != nil {
			return nil, fmt.Errorf("session %q: %w", sc.Name, err)
		}
		end, err := models.ParseClockTime(sc.End)
		if err != nil {
			return nil, fmt.Errorf("session %q: %w", sc.Name, err)
		}
		if !start.Before(end) {
			return nil, fmt.Errorf("session %q: start %s must be before end %s", sc.Name, start, end)
		}
		sessions = append(sessions, models.TradingSession{Name: sc.Name, Start: start, End: end})
	}
	return sessions, nil
}

// BlackoutRadius returns the medium-impact blackout radius.
func (t *TradingConfig) BlackoutRadius() time.Duration {
	return time.Duration(t.BlackoutRadiusMinutes) * time.Minute
}

// MinimumWindow returns the shortest window worth reporting.
func (t *TradingConfig) MinimumWindow() time.Duration {
	return time.Duration(t.MinimumWindowMinutes) * time.Minute
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	// Enable environment variable support
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind TELEGRAM_BOT_TOKEN environment variable: %w", err)
	}
	if err := viper.BindEnv("telegram.report_chat_id", "REPORT_CHAT_ID"); err != nil {
		return nil, fmt.Errorf("failed to bind REPORT_CHAT_ID environment variable: %w", err)
	}

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Environment = strings.ToLower(config.Environment)

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate enforces the settings the engine cannot run without.
// A failure here is fatal at startup.
func Validate(config *Config) error {
	if config.Trading.Pair == "" {
		return errors.New("trading.pair is required")
	}
	if _, err := config.Trading.Location(); err != nil {
		return err
	}
	if len(config.Trading.Sessions) == 0 {
		return errors.New("trading.sessions must define at least one session")
	}
	if _, err := config.Trading.ParsedSessions(); err != nil {
		return err
	}
	if len(config.Trading.Currencies) == 0 {
		return errors.New("trading.currencies must list the currencies of the traded pair")
	}
	if len(config.Trading.CurrencyCodes) == 0 {
		return errors.New("trading.currency_codes mapping is required")
	}
	if len(config.Trading.ImportanceLevels) == 0 {
		return errors.New("trading.importance_levels mapping is required")
	}
	if config.Trading.BlackoutRadiusMinutes <= 0 {
		return fmt.Errorf("trading.blackout_radius_minutes must be positive, got %d", config.Trading.BlackoutRadiusMinutes)
	}
	if config.Trading.MinimumWindowMinutes < 0 {
		return fmt.Errorf("trading.minimum_window_minutes must not be negative, got %d", config.Trading.MinimumWindowMinutes)
	}
	return nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server
	viper.SetDefault("server.port", 8080)

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "newswindow")
	viper.SetDefault("database.sslmode", "disable")

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Calendar source
	viper.SetDefault("calendar.service_url", "https://economic-calendar.tradingview.com")
	viper.SetDefault("calendar.timeout_seconds", 20)
	viper.SetDefault("calendar.cache_ttl_minutes", 15)
	viper.SetDefault("calendar.countries", []string{"US", "EU"})

	// Telegram
	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.report_chat_id", 0)
	viper.SetDefault("telegram.chunk_limit", 1900)

	// Trading
	viper.SetDefault("trading.pair", "EURUSD")
	viper.SetDefault("trading.timezone", "America/Guayaquil")
	viper.SetDefault("trading.blackout_radius_minutes", 60)
	viper.SetDefault("trading.minimum_window_minutes", 10)
	viper.SetDefault("trading.holiday_keyword", "holiday")
	viper.SetDefault("trading.currencies", []string{"EUR", "USD"})
	viper.SetDefault("trading.currency_codes", map[string]string{
		"US":            "USD",
		"United States": "USD",
		"EU":            "EUR",
		"Euro Area":     "EUR",
	})
	viper.SetDefault("trading.importance_levels", map[string]string{
		"3":      "high",
		"2":      "medium",
		"1":      "low",
		"high":   "high",
		"medium": "medium",
		"low":    "low",
	})
	viper.SetDefault("trading.sessions", []map[string]any{
		{"name": "Session 1", "start": "08:00", "end": "15:45"},
		{"name": "Session 2", "start": "17:45", "end": "21:00"},
	})

	// Schedule
	viper.SetDefault("schedule.enabled", true)
	viper.SetDefault("schedule.daily_cron", "0 20 * * *")
	viper.SetDefault("schedule.weekly_cron", "0 19 * * SUN")
}
