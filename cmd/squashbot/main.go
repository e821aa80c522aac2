package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"nuclight.org/squashbot/internal/bot"
	"nuclight.org/squashbot/internal/config"
	"nuclight.org/squashbot/internal/game"
	"nuclight.org/squashbot/internal/league"
	"nuclight.org/squashbot/internal/logger"
	"nuclight.org/squashbot/internal/metrics"
	"nuclight.org/squashbot/internal/storage"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const janitorInterval = time.Minute

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:    "squashbot",
		Usage:   "Telegram bot for reporting squash league results",
		Version: version,
		Action:  run,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "start the bot (default)",
				Action: run,
			},
			{
				Name:  "migrate",
				Usage: "create or upgrade the sqlite schema and exit",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Usage:    "path to the sqlite database",
						EnvVars:  []string{"DB_PATH"},
						Required: true,
					},
				},
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func migrate(c *cli.Context) error {
	db, err := storage.NewDB(c.String("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(c.Context); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	fmt.Fprintln(c.App.Writer, "database is up to date")
	return nil
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	lg := logger.NewLogger(cfg.LogLevel)
	if cfg.SentryDSN != "" {
		lg, err = logger.NewLoggerWithSentry(cfg.LogLevel, cfg.SentryDSN, version)
		if err != nil {
			return err
		}
		defer sentry.Flush(2 * time.Second)
	}
	slog.SetDefault(lg)

	lg.Info("config loaded",
		"db_path", cfg.DBPath,
		"admin_chat_id", cfg.AdminChatID,
		"members_chat_id", cfg.MembersChatID,
		"league_id", cfg.LeagueID,
		"timezone", cfg.Timezone.String(),
		"redis", cfg.RedisURL != "",
	)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	lg.Info("database initialized")

	prefs, closePrefs, err := preferenceStore(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closePrefs()

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			lg.Info("metrics listening", "addr", cfg.MetricsAddr)
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				lg.Error("metrics server failed", "error", err)
			}
		}()
	}

	sessions := bot.NewRegistry(bot.RegistryOptions{
		IdleTimeout:   cfg.SessionTimeout,
		RatePerSecond: cfg.RateLimit,
		Burst:         cfg.RateBurst,
	}, lg)
	go sessions.RunJanitor(ctx, janitorInterval)

	b, err := bot.New(cfg.TelegramToken, sessions, m, lg)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	client := league.NewClient(league.ClientConfig{
		BaseURL: cfg.LeagueAPIURL,
		SiteURL: cfg.LeagueSiteURL,
		Token:   cfg.LeagueAPIToken,
		Timeout: cfg.LeagueAPITimeout,
	})

	engine := game.NewEngine(
		game.Config{
			LeagueID:    cfg.LeagueID,
			AdminChatID: cfg.AdminChatID,
			Location:    cfg.Timezone,
		},
		game.Deps{
			Directory:  client,
			Authorizer: b.Membership(cfg.MembersChatID),
			Ranker:     game.NewRanker(prefs, lg),
			Submitter:  game.NewSubmitter(client, storage.NewResultRepository(db), cfg.LeagueID, lg),
		},
		lg,
	)

	if err := b.RegisterHandlers(engine); err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		lg.Info("shutting down")
		b.Stop()
	}()

	b.Start()
	return nil
}

// preferenceStore picks redis when configured and the sqlite table otherwise.
func preferenceStore(ctx context.Context, cfg *config.Config, db *storage.DB) (game.PreferenceStore, func(), error) {
	if cfg.RedisURL == "" {
		return storage.NewPreferenceRepository(db), func() {}, nil
	}
	prefs, err := storage.NewRedisPreferences(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return prefs, func() { prefs.Close() }, nil
}
