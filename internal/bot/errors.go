package bot

import (
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v4"
)

// UserError represents an error that should be shown to the user.
// The message is safe to display directly.
type UserError struct {
	Message string // User-friendly message to display
	Cause   error  // Original error for logging (optional)
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// NewUserError creates a new user-facing error with an optional underlying cause.
func NewUserError(message string, cause error) *UserError {
	return &UserError{
		Message: message,
		Cause:   cause,
	}
}

// GetUserMessage extracts the user-friendly message from an error.
// Anything that is not a UserError gets the generic internal error text.
func GetUserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Message
	}
	return MsgInternalError
}

// ShouldLog returns true if the error should be logged.
// UserErrors without a cause are user mistakes and don't need logging.
func ShouldLog(err error) bool {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Cause != nil
	}
	return true
}

// HandleErrors logs handler failures and tells the user what went wrong.
// Delivery failures are only logged since replying would fail the same way.
func (b *Bot) HandleErrors() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			if ShouldLog(err) {
				attrs := []any{"error", err}
				if chat := c.Chat(); chat != nil {
					attrs = append(attrs, "chat_id", chat.ID)
				}
				if sender := c.Sender(); sender != nil {
					attrs = append(attrs, "user_id", sender.ID)
				}
				b.logger.Error("handler failed", attrs...)
			}

			if errors.Is(err, errDelivery) {
				return nil
			}
			if sendErr := c.Send(GetUserMessage(err)); sendErr != nil {
				b.logger.Warn("failed to report error to user", "error", sendErr)
			}
			return nil
		}
	}
}
