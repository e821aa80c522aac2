package bot

import (
	"errors"
	"fmt"
	"testing"
)

func TestUserError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewUserError("user did something wrong", nil)
		if err.Error() != "user did something wrong" {
			t.Errorf("expected Error() to return message, got '%s'", err.Error())
		}
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("chat member lookup failed")
		err := NewUserError("Failed to check", cause)
		if err.Error() != "Failed to check: chat member lookup failed" {
			t.Errorf("unexpected Error() result: %s", err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("expected errors.Is to match cause")
		}
	})
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"user error", NewUserError(MsgSlowDown, nil), MsgSlowDown},
		{"user error with cause", NewUserError("friendly", errors.New("internal")), "friendly"},
		{"wrapped user error", fmt.Errorf("wrapped: %w", NewUserError("test", nil)), "test"},
		{"regular error", errors.New("database error"), MsgInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"user mistake", NewUserError("slow down", nil), false},
		{"user error with cause", NewUserError("failed", errors.New("api down")), true},
		{"regular error", errors.New("some error"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldLog(tt.err); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
