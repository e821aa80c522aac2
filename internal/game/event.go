package game

import "strings"

// EventKind classifies inbound chat updates.
type EventKind int

const (
	EventText EventKind = iota
	// EventMembership is a join/leave notification; it never needs an answer.
	EventMembership
	// EventOther is any non-text content: photos, stickers, locations.
	EventOther
)

// Event is one inbound message as seen by the engine.
type Event struct {
	Kind      EventKind
	Private   bool
	ChatID    int64
	UserID    int64
	Username  string
	FirstName string
	Text      string
}

// SenderName is how the sender is credited in announcements.
func (e Event) SenderName() string {
	if e.Username != "" {
		return "@" + e.Username
	}
	return e.FirstName
}

// command extracts a lower-cased command from text: "/NewGame@squashbot x" → "/newgame".
func command(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.ToLower(strings.Fields(text)[0])
	if at := strings.IndexByte(cmd, '@'); at > 0 {
		cmd = cmd[:at]
	}
	return cmd, true
}

// Action is an outbound request to the transport.
type Action struct {
	ChatID int64
	Text   string
	// Keyboard replaces the reply keyboard when non-nil.
	Keyboard        Keyboard
	OneTimeKeyboard bool
	RemoveKeyboard  bool
	HTML            bool
	// Announcement marks the admin-channel post of a published result.
	Announcement bool
}
