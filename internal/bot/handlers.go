package bot

import (
	"context"
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v4"

	"nuclight.org/squashbot/internal/game"
)

var errDelivery = errors.New("delivery failed")

var menu = []tele.Command{
	{Text: "newgame", Description: "Внести результат игры"},
	{Text: "back", Description: "Вернуться на шаг назад"},
	{Text: "cancel", Description: "Отменить ввод результата"},
	{Text: "help", Description: "Как пользоваться ботом"},
}

// RegisterHandlers routes updates to engine and publishes the command menu.
func (b *Bot) RegisterHandlers(engine Engine) error {
	b.engine = engine

	if err := b.bot.SetCommands(menu); err != nil {
		return fmt.Errorf("set commands: %w", err)
	}

	b.bot.Use(b.HandleErrors())

	b.bot.Handle(tele.OnText, b.handleUpdate(game.EventText))
	b.bot.Handle(tele.OnUserJoined, b.handleUpdate(game.EventMembership))
	b.bot.Handle(tele.OnUserLeft, b.handleUpdate(game.EventMembership))
	for _, endpoint := range []string{
		tele.OnMedia,
		tele.OnContact,
		tele.OnLocation,
		tele.OnVenue,
		tele.OnDice,
		tele.OnPoll,
	} {
		b.bot.Handle(endpoint, b.handleUpdate(game.EventOther))
	}
	return nil
}

func (b *Bot) handleUpdate(kind game.EventKind) tele.HandlerFunc {
	return func(c tele.Context) error {
		ev, ok := eventFromMessage(kind, c.Message())
		if !ok {
			return nil
		}
		return b.dispatch(context.Background(), ev)
	}
}

// eventFromMessage maps a Telegram message onto a chat event. Messages
// without a human sender (channel posts) are dropped.
func eventFromMessage(kind game.EventKind, m *tele.Message) (game.Event, bool) {
	if m == nil || m.Chat == nil || m.Sender == nil || m.Sender.IsBot {
		return game.Event{}, false
	}
	ev := game.Event{
		Kind:      kind,
		Private:   m.Chat.Type == tele.ChatPrivate,
		ChatID:    m.Chat.ID,
		UserID:    m.Sender.ID,
		Username:  m.Sender.Username,
		FirstName: m.Sender.FirstName,
	}
	if kind == game.EventText {
		ev.Text = m.Text
	}
	return ev, true
}

func kindLabel(kind game.EventKind) string {
	switch kind {
	case game.EventText:
		return "text"
	case game.EventMembership:
		return "membership"
	default:
		return "other"
	}
}

// dispatch runs the event through the chat's session and delivers the replies.
// Events for one chat are handled strictly one at a time.
func (b *Bot) dispatch(ctx context.Context, ev game.Event) error {
	b.metrics.Update(kindLabel(ev.Kind))

	var actions []game.Action
	verdict := b.sessions.Do(ev.ChatID, ev.UserID, func(s game.Session) game.Session {
		next, out := b.engine.Handle(ctx, s, ev)
		actions = out
		if next.Stage != s.Stage {
			b.logger.Debug("stage changed",
				"chat_id", ev.ChatID,
				"user_id", ev.UserID,
				"from", s.Stage,
				"stage", next.Stage,
			)
			b.metrics.Stage(next.Stage.String())
		}
		return next
	})
	switch verdict {
	case ThrottledFirst:
		b.metrics.Throttled()
		return NewUserError(MsgSlowDown, nil)
	case Throttled:
		b.metrics.Throttled()
		return nil
	}
	b.metrics.Sessions(b.sessions.Len())

	return b.deliver(actions)
}

// deliver sends every action in order. A failed send does not stop the rest;
// the first error is returned.
func (b *Bot) deliver(actions []game.Action) error {
	var first error
	for _, a := range actions {
		if _, err := b.api.Send(tele.ChatID(a.ChatID), a.Text, sendOptions(a)); err != nil {
			b.metrics.SendFailure()
			b.logger.Error("failed to send message",
				"chat_id", a.ChatID,
				"announcement", a.Announcement,
				"error", err,
			)
			if first == nil {
				first = fmt.Errorf("%w to chat %d: %w", errDelivery, a.ChatID, err)
			}
			continue
		}
		if a.Announcement {
			b.metrics.Announced()
			b.logger.Info("result announced", "chat_id", a.ChatID)
		}
	}
	return first
}

func sendOptions(a game.Action) *tele.SendOptions {
	opts := &tele.SendOptions{}
	if a.HTML {
		opts.ParseMode = tele.ModeHTML
	}
	switch {
	case a.Keyboard != nil:
		opts.ReplyMarkup = &tele.ReplyMarkup{
			ReplyKeyboard:   replyKeyboard(a.Keyboard),
			ResizeKeyboard:  true,
			OneTimeKeyboard: a.OneTimeKeyboard,
		}
	case a.RemoveKeyboard:
		opts.ReplyMarkup = &tele.ReplyMarkup{RemoveKeyboard: true}
	}
	return opts
}

func replyKeyboard(kb game.Keyboard) [][]tele.ReplyButton {
	rows := make([][]tele.ReplyButton, 0, len(kb))
	for _, labels := range kb {
		row := make([]tele.ReplyButton, 0, len(labels))
		for _, label := range labels {
			row = append(row, tele.ReplyButton{Text: label})
		}
		rows = append(rows, row)
	}
	return rows
}
