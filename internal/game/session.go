package game

import "time"

// Session is the accumulated dialogue state of one chat.
// A field belongs to the stage that collects it: while the session sits at that
// stage the field and every later one are empty.
type Session struct {
	ChatID int64
	UserID int64
	Stage  Stage

	Location string
	Date     time.Time // calendar day, midnight in the league timezone
	Time     time.Time // full end-of-game timestamp
	Player1  string
	Player2  string
	Result   string

	// Directory caches league candidates for the session lifetime.
	Directory Directory
}

// NewSession returns an idle session for the given chat.
func NewSession(chatID, userID int64) Session {
	return Session{ChatID: chatID, UserID: userID, Stage: StageStart}
}

// Reset returns the session to StageStart and clears every collected field.
// The candidate cache survives.
func (s *Session) Reset() {
	s.Stage = StageStart
	s.clearFrom(StageLocation)
}

// clearFrom empties the field collected at stage and everything collected after it.
func (s *Session) clearFrom(stage Stage) {
	for _, st := range stageOrder {
		if st.Before(stage) {
			continue
		}
		switch st {
		case StageLocation:
			s.Location = ""
		case StageDate:
			s.Date = time.Time{}
		case StageTime:
			s.Time = time.Time{}
		case StageFirstPlayer:
			s.Player1 = ""
		case StageSecondPlayer:
			s.Player2 = ""
		case StageResult:
			s.Result = ""
		}
	}
}

// moveTo sets the stage and drops anything collected at or after it.
func (s *Session) moveTo(stage Stage) {
	s.Stage = stage
	s.clearFrom(stage)
}

// Idle reports whether no result is being entered.
func (s Session) Idle() bool {
	return s.Stage == StageStart
}
