package bot

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v4"
)

type chatMemberAPI interface {
	ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error)
}

// Membership answers whether a user belongs to the league members chat.
type Membership struct {
	api    chatMemberAPI
	chatID int64
}

func NewMembership(api chatMemberAPI, chatID int64) *Membership {
	return &Membership{api: api, chatID: chatID}
}

func (m *Membership) IsMember(ctx context.Context, userID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	member, err := m.api.ChatMemberOf(&tele.Chat{ID: m.chatID}, &tele.User{ID: userID})
	if err != nil {
		return false, fmt.Errorf("chat member of %d: %w", m.chatID, err)
	}

	switch member.Role {
	case tele.Member, tele.Administrator, tele.Creator:
		return true, nil
	}
	return false, nil
}
