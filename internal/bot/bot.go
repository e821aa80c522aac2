package bot

import (
	"context"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"nuclight.org/squashbot/internal/game"
	"nuclight.org/squashbot/internal/metrics"
)

// Engine turns one chat event into the next session and the replies to send.
type Engine interface {
	Handle(ctx context.Context, s game.Session, ev game.Event) (game.Session, []game.Action)
}

// sender is the part of the Telegram API used to deliver replies.
type sender interface {
	Send(to tele.Recipient, what any, opts ...any) (*tele.Message, error)
}

type Bot struct {
	bot      *tele.Bot
	api      sender
	engine   Engine
	sessions *Registry
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func New(token string, sessions *Registry, m *metrics.Metrics, logger *slog.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("telegram update failed", "error", err)
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{
		bot:      b,
		api:      b,
		sessions: sessions,
		metrics:  m,
		logger:   logger,
	}, nil
}

// Start blocks until Stop is called.
func (b *Bot) Start() {
	b.logger.Info("bot started", "username", b.bot.Me.Username)
	b.bot.Start()
}

func (b *Bot) Stop() {
	b.bot.Stop()
}

// Membership returns an authorizer backed by this bot's view of chatID.
func (b *Bot) Membership(chatID int64) *Membership {
	return NewMembership(b.bot, chatID)
}
