package game

// Stage is one step of the result-entry dialogue.
type Stage string

const (
	StageStart        Stage = "start"
	StageLocation     Stage = "location"
	StageDate         Stage = "date"
	StageTime         Stage = "time"
	StageFirstPlayer  Stage = "first_player"
	StageSecondPlayer Stage = "second_player"
	StageResult       Stage = "result"
	StageConfirmation Stage = "confirmation"
)

// stageOrder is the order in which the dialogue visits stages.
// /back walks it backwards, successful input walks it forwards.
var stageOrder = []Stage{
	StageStart,
	StageLocation,
	StageDate,
	StageTime,
	StageFirstPlayer,
	StageSecondPlayer,
	StageResult,
	StageConfirmation,
}

func (s Stage) index() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	return s.index() >= 0
}

// Next returns the stage following s. ok is false for the last stage or an unknown one.
func (s Stage) Next() (Stage, bool) {
	i := s.index()
	if i < 0 || i+1 >= len(stageOrder) {
		return s, false
	}
	return stageOrder[i+1], true
}

// Prev returns the stage preceding s. ok is false at StageStart or for an unknown stage.
func (s Stage) Prev() (Stage, bool) {
	i := s.index()
	if i <= 0 {
		return s, false
	}
	return stageOrder[i-1], true
}

// Before reports whether s comes strictly before other in dialogue order.
func (s Stage) Before(other Stage) bool {
	return s.index() < other.index()
}

func (s Stage) String() string {
	return string(s)
}
