package bot

import (
	"context"
	"errors"
	"testing"

	tele "gopkg.in/telebot.v4"
)

type fakeChatMembers struct {
	role   tele.MemberStatus
	err    error
	chatID int64
	userID int64
}

func (f *fakeChatMembers) ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error) {
	f.chatID = chat.(*tele.Chat).ID
	f.userID = user.(*tele.User).ID
	if f.err != nil {
		return nil, f.err
	}
	return &tele.ChatMember{Role: f.role}, nil
}

func TestMembership_IsMember(t *testing.T) {
	tests := []struct {
		role tele.MemberStatus
		want bool
	}{
		{tele.Member, true},
		{tele.Administrator, true},
		{tele.Creator, true},
		{tele.Left, false},
		{tele.Kicked, false},
		{tele.Restricted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			api := &fakeChatMembers{role: tt.role}
			got, err := NewMembership(api, -100500).IsMember(context.Background(), 42)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if api.chatID != -100500 || api.userID != 42 {
				t.Errorf("queried chat %d user %d", api.chatID, api.userID)
			}
		})
	}
}

func TestMembership_Error(t *testing.T) {
	cause := errors.New("telegram: chat not found")
	_, err := NewMembership(&fakeChatMembers{err: cause}, 1).IsMember(context.Background(), 2)
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}
