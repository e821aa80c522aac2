package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultLeagueID         = 1010
	defaultLeagueAPIURL     = "http://msliga.ru/api/v0"
	defaultLeagueSiteURL    = "http://msliga.ru"
	defaultLeagueAPITimeout = 10 * time.Second
	defaultSessionTimeout   = 60 * time.Minute
	defaultTimezone         = "Europe/Moscow"
	defaultRateLimit        = 2.0
	defaultRateBurst        = 5
)

type Config struct {
	TelegramToken  string
	AdminChatID    int64
	MembersChatID  int64
	SessionTimeout time.Duration
	Timezone       *time.Location

	LeagueID         int64
	LeagueAPIURL     string
	LeagueSiteURL    string
	LeagueAPIToken   string
	LeagueAPITimeout time.Duration

	DBPath   string
	RedisURL string

	SentryDSN   string
	LogLevel    slog.Level
	MetricsAddr string

	RateLimit float64
	RateBurst int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_API_KEY"))
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_API_KEY is required")
	}

	adminChatStr := strings.TrimSpace(os.Getenv("ADMIN_CHAT_ID"))
	if adminChatStr == "" {
		return nil, fmt.Errorf("ADMIN_CHAT_ID is required")
	}
	adminChatID, err := strconv.ParseInt(adminChatStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_CHAT_ID must be a number: %w", err)
	}

	membersChatID := adminChatID
	if v := strings.TrimSpace(os.Getenv("MEMBERS_CHAT_ID")); v != "" {
		membersChatID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MEMBERS_CHAT_ID must be a number: %w", err)
		}
	}

	dbPath := strings.TrimSpace(os.Getenv("DB_PATH"))
	if dbPath == "" {
		return nil, fmt.Errorf("DB_PATH is required")
	}

	cfg := &Config{
		TelegramToken:  token,
		AdminChatID:    adminChatID,
		MembersChatID:  membersChatID,
		LeagueAPIURL:   envOr("LEAGUE_API_URL", defaultLeagueAPIURL),
		LeagueSiteURL:  envOr("LEAGUE_SITE_URL", defaultLeagueSiteURL),
		LeagueAPIToken: strings.TrimSpace(os.Getenv("LEAGUE_API_TOKEN")),
		DBPath:         dbPath,
		RedisURL:       strings.TrimSpace(os.Getenv("REDIS_URL")),
		SentryDSN:      strings.TrimSpace(os.Getenv("SENTRY_DSN")),
		MetricsAddr:    strings.TrimSpace(os.Getenv("METRICS_ADDR")),
	}

	if cfg.LeagueID, err = parseInt64("LEAGUE_ID", defaultLeagueID); err != nil {
		return nil, err
	}
	if cfg.LeagueID <= 0 {
		return nil, fmt.Errorf("LEAGUE_ID must be positive")
	}
	if cfg.SessionTimeout, err = parseDuration("SESSION_TIMEOUT", defaultSessionTimeout); err != nil {
		return nil, err
	}
	if cfg.LeagueAPITimeout, err = parseDuration("LEAGUE_API_TIMEOUT", defaultLeagueAPITimeout); err != nil {
		return nil, err
	}

	tz := envOr("TIMEZONE", defaultTimezone)
	if cfg.Timezone, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", tz, err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(envOr("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg.RateLimit = defaultRateLimit
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_PER_SECOND")); v != "" {
		if cfg.RateLimit, err = strconv.ParseFloat(v, 64); err != nil || cfg.RateLimit <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_PER_SECOND must be a positive number")
		}
	}
	burst, err := parseInt64("RATE_LIMIT_BURST", defaultRateBurst)
	if err != nil {
		return nil, err
	}
	if burst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be positive")
	}
	cfg.RateBurst = int(burst)

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseInt64(key string, fallback int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return n, nil
}

// parseDuration accepts Go durations ("90s", "1h") or a plain number of seconds.
func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("%s must be positive", key)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
