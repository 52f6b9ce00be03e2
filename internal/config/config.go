package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/TradeVault/internal/model"
)

// Config holds all application configuration
type Config struct {
	TwelveAPIKey string
	OpenAIAPIKey string
	OpenAIModel  string

	LogLevel  string
	LogFormat string // json, pretty
	LogDir    string // file logging is off when empty

	RequestTimeout time.Duration
	RequestsPerSec int
	LiveFetchLimit int

	UniverseFile string
	RefreshCron  string
	MetricsAddr  string

	TelegramBotToken string
	// BroadcastChats receive the daily picks on PicksCron; both must be set.
	BroadcastChats []int64
	PicksCron      string

	Database DatabaseConfig

	Backtest BacktestDefaults
	MinScore int
}

// DatabaseConfig holds PostgreSQL connection settings. The vault falls
// back to memory when Host is empty.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// BacktestDefaults are the strategy parameters used when a command
// does not specify them.
type BacktestDefaults struct {
	Oversold   float64
	Overbought float64
	FastWindow int
	SlowWindow int
}

// RSI returns the default RSI reversal parameters.
func (b BacktestDefaults) RSI() model.StrategyParams {
	return model.RSIReversal(b.Oversold, b.Overbought)
}

// SMA returns the default SMA crossover parameters.
func (b BacktestDefaults) SMA() model.StrategyParams {
	return model.SMACrossover(b.FastWindow, b.SlowWindow)
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	// Load values from environment variables
	cfg.TwelveAPIKey = os.Getenv("TWELVE_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getEnvWithDefault("LOG_FORMAT", "pretty")
	cfg.LogDir = os.Getenv("LOG_DIR")
	cfg.RequestTimeout = time.Duration(getEnvIntWithDefault("REQUEST_TIMEOUT", 30)) * time.Second
	cfg.RequestsPerSec = getEnvIntWithDefault("REQUESTS_PER_SEC", 5)
	cfg.LiveFetchLimit = getEnvIntWithDefault("LIVE_FETCH_LIMIT", 8)
	cfg.UniverseFile = os.Getenv("UNIVERSE_FILE")
	cfg.RefreshCron = getEnvWithDefault("REFRESH_CRON", "@every 15m")
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")
	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.PicksCron = os.Getenv("PICKS_CRON")
	chats, err := parseChatIDs(os.Getenv("TELEGRAM_BROADCAST_CHATS"))
	if err != nil {
		return nil, err
	}
	cfg.BroadcastChats = chats

	cfg.Database = DatabaseConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     getEnvWithDefault("DB_PORT", "5432"),
		User:     getEnvWithDefault("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     getEnvWithDefault("DB_NAME", "tradevault"),
		SSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),
	}

	cfg.Backtest = BacktestDefaults{
		Oversold:   getEnvFloatWithDefault("BT_OVERSOLD", 30),
		Overbought: getEnvFloatWithDefault("BT_OVERBOUGHT", 70),
		FastWindow: getEnvIntWithDefault("BT_FAST", 10),
		SlowWindow: getEnvIntWithDefault("BT_SLOW", 30),
	}
	cfg.MinScore = getEnvIntWithDefault("MIN_SCORE", 20)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	if c.RequestsPerSec < 1 {
		return fmt.Errorf("REQUESTS_PER_SEC must be >= 1, got %d", c.RequestsPerSec)
	}
	if c.LiveFetchLimit < 1 {
		return fmt.Errorf("LIVE_FETCH_LIMIT must be >= 1, got %d", c.LiveFetchLimit)
	}
	if err := c.Backtest.RSI().Validate(); err != nil {
		return fmt.Errorf("backtest defaults: %w", err)
	}
	if err := c.Backtest.SMA().Validate(); err != nil {
		return fmt.Errorf("backtest defaults: %w", err)
	}
	return nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// parseChatIDs reads a comma-separated list of Telegram chat IDs.
func parseChatIDs(value string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_BROADCAST_CHATS: invalid chat id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
