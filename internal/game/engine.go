package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	locationsPerRow = 1
	datesPerRow     = 3
	slotsPerRow     = 3
	playersPerRow   = 1
	scoresPerRow    = 3
)

// Authorizer decides who may enter results.
type Authorizer interface {
	IsMember(ctx context.Context, userID int64) (bool, error)
}

// Config holds league-wide settings for the engine.
type Config struct {
	LeagueID    int64
	AdminChatID int64
	Location    *time.Location
}

// Deps are the engine's collaborators.
type Deps struct {
	Directory  LeagueDirectory
	Authorizer Authorizer
	Ranker     *Ranker
	Submitter  *Submitter
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Engine interprets chat events against a session. It keeps no per-chat state
// of its own: Handle takes a session and returns the next one together with the
// messages to send. On any collaborator failure the input session comes back
// unchanged.
type Engine struct {
	cfg       Config
	directory LeagueDirectory
	auth      Authorizer
	ranker    *Ranker
	submitter *Submitter
	now       func() time.Time
	logger    *slog.Logger
}

func NewEngine(cfg Config, deps Deps, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	ranker := deps.Ranker
	if ranker == nil {
		ranker = NewRanker(nil, logger)
	}
	return &Engine{
		cfg:       cfg,
		directory: deps.Directory,
		auth:      deps.Authorizer,
		ranker:    ranker,
		submitter: deps.Submitter,
		now:       clock,
		logger:    logger,
	}
}

func (e *Engine) clock() time.Time {
	return e.now().In(e.cfg.Location)
}

// Handle consumes one event.
func (e *Engine) Handle(ctx context.Context, s Session, ev Event) (Session, []Action) {
	if !ev.Private {
		// Group chats only ever see the bot for announcements.
		if ev.Kind == EventText {
			if _, ok := command(ev.Text); ok {
				return s, []Action{{ChatID: ev.ChatID, Text: MsgPrivateOnly}}
			}
		}
		return s, nil
	}

	if !s.Stage.Valid() {
		e.logger.Error("session in unknown stage, resetting", "chat_id", s.ChatID, "stage", s.Stage)
		s.Reset()
	}

	switch ev.Kind {
	case EventMembership:
		return s, nil
	case EventOther:
		return s, []Action{{ChatID: ev.ChatID, Text: MsgTextOnly}}
	}

	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return s, nil
	}
	if cmd, ok := command(text); ok {
		return e.handleCommand(ctx, s, ev, cmd)
	}
	return e.handleText(ctx, s, ev, text)
}

func (e *Engine) handleCommand(ctx context.Context, s Session, ev Event, cmd string) (Session, []Action) {
	e.logger.Info("command "+cmd,
		"chat_id", ev.ChatID,
		"user_id", ev.UserID,
		"username", ev.Username,
		"stage", s.Stage,
	)

	switch cmd {
	case "/newgame":
		return e.newGame(ctx, s, ev)
	case "/cancel":
		if s.Idle() {
			return s, []Action{reply(s, MsgNothingToCancel)}
		}
		s.Reset()
		return s, []Action{{ChatID: s.ChatID, Text: MsgCancelled, RemoveKeyboard: true}}
	case "/back":
		prev, ok := s.Stage.Prev()
		if !ok {
			return s, []Action{reply(s, MsgCannotGoBack)}
		}
		return e.enterOrFail(ctx, s, prev)
	case "/start", "/help":
		return s, []Action{reply(s, MsgHelp)}
	default:
		return s, nil
	}
}

func (e *Engine) newGame(ctx context.Context, s Session, ev Event) (Session, []Action) {
	if !s.Idle() {
		return s, []Action{reply(s, MsgAlreadyEntering)}
	}
	if e.auth == nil {
		e.logger.Error("no authorizer configured", "chat_id", ev.ChatID)
		return s, []Action{reply(s, MsgNotMember)}
	}
	member, err := e.auth.IsMember(ctx, ev.UserID)
	if err != nil {
		e.logger.Warn("membership check failed", "user_id", ev.UserID, "error", err)
		return s, []Action{reply(s, MsgMembershipUnavailable)}
	}
	if !member {
		e.logger.Info("non-member tried to enter a result", "user_id", ev.UserID, "username", ev.Username)
		return s, []Action{reply(s, MsgNotMember)}
	}

	s.ChatID = ev.ChatID
	s.UserID = ev.UserID
	return e.enterOrFail(ctx, s, StageLocation)
}

func (e *Engine) handleText(ctx context.Context, s Session, ev Event, text string) (Session, []Action) {
	now := e.clock()

	switch s.Stage {
	case StageStart:
		return s, []Action{reply(s, MsgIdle)}

	case StageLocation:
		cand, ok := s.Directory.Locations.Lookup(StripMarker(text))
		if !ok {
			return s, []Action{reply(s, MsgUnknownLocation)}
		}
		next := s
		next.Location = cand.Name
		next, actions, ok := e.advance(ctx, s, next)
		if ok {
			e.ranker.Record(ctx, s.UserID, CategoryLocation, cand.Name)
		}
		return next, actions

	case StageDate:
		day, err := ParseDate(StripMarker(text), now)
		if err != nil {
			return s, []Action{reply(s, MsgBadDate)}
		}
		if isFutureDay(day, now) {
			return s, []Action{reply(s, MsgFutureGame)}
		}
		next := s
		next.Date = day
		next, actions, _ := e.advance(ctx, s, next)
		return next, actions

	case StageTime:
		end, err := ParseClock(text, s.Date)
		if err != nil {
			return s, []Action{reply(s, MsgBadTime)}
		}
		if end.After(now) {
			return s, []Action{reply(s, MsgFutureGame)}
		}
		next := s
		next.Time = end
		next, actions, _ := e.advance(ctx, s, next)
		return next, actions

	case StageFirstPlayer:
		name := StripMarker(text)
		cand, ok := s.Directory.Players.Lookup(name)
		if !ok {
			return s, []Action{e.suggestPlayers(ctx, s, name, MsgUnknownPlayer)}
		}
		next := s
		next.Player1 = cand.Name
		next, actions, ok := e.advance(ctx, s, next)
		if ok {
			e.ranker.Record(ctx, s.UserID, CategoryPlayer, cand.Name)
		}
		return next, actions

	case StageSecondPlayer:
		name := StripMarker(text)
		cand, ok := s.Directory.Players.Lookup(name)
		if !ok {
			return s, []Action{e.suggestPlayers(ctx, s, name, MsgUnknownPlayer)}
		}
		if cand.Name == s.Player1 {
			return s, []Action{e.suggestPlayers(ctx, s, name, MsgSamePlayer)}
		}
		next := s
		next.Player2 = cand.Name
		next, actions, ok := e.advance(ctx, s, next)
		if ok {
			e.ranker.Record(ctx, s.UserID, CategoryPlayer, cand.Name)
		}
		return next, actions

	case StageResult:
		score, ok := NormalizeScore(text)
		if !ok {
			return s, []Action{reply(s, MsgBadScore)}
		}
		next := s
		next.Result = score
		next, actions, _ := e.advance(ctx, s, next)
		return next, actions

	case StageConfirmation:
		if !isConfirmation(text) {
			return s, []Action{reply(s, MsgConfirmPrompt)}
		}
		return e.submit(ctx, s, ev)

	default:
		e.logger.Error("session in unknown stage", "chat_id", s.ChatID, "stage", s.Stage)
		return s, nil
	}
}

func isConfirmation(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "ok", "ок":
		return true
	}
	return false
}

// advance moves next (which carries the newly accepted field) to the stage after
// prev.Stage. On failure prev is returned together with an error reply.
func (e *Engine) advance(ctx context.Context, prev, next Session) (Session, []Action, bool) {
	stage, ok := prev.Stage.Next()
	if !ok {
		e.logger.Error("no stage after current", "chat_id", prev.ChatID, "stage", prev.Stage)
		return prev, nil, false
	}
	entered, action, err := e.enter(ctx, next, stage)
	if err != nil {
		e.logger.Warn("failed to enter stage", "chat_id", prev.ChatID, "stage", stage, "error", err)
		return prev, []Action{reply(prev, MsgDirectoryUnavailable)}, false
	}
	return entered, []Action{action}, true
}

func (e *Engine) enterOrFail(ctx context.Context, s Session, stage Stage) (Session, []Action) {
	entered, action, err := e.enter(ctx, s, stage)
	if err != nil {
		e.logger.Warn("failed to enter stage", "chat_id", s.ChatID, "stage", stage, "error", err)
		return s, []Action{reply(s, MsgDirectoryUnavailable)}
	}
	return entered, []Action{action}
}

// enter moves s to stage and builds the stage prompt. Directory data is fetched
// on first use and cached in the returned session.
func (e *Engine) enter(ctx context.Context, s Session, stage Stage) (Session, Action, error) {
	now := e.clock()
	s.moveTo(stage)

	switch stage {
	case StageStart:
		return s, Action{ChatID: s.ChatID, Text: MsgIdle, RemoveKeyboard: true}, nil

	case StageLocation:
		if s.Directory.Locations == nil {
			locations, err := loadLocations(ctx, e.directory)
			if err != nil {
				return s, Action{}, err
			}
			s.Directory.Locations = locations
		}
		labels := e.ranker.Rank(ctx, s.UserID, CategoryLocation, s.Directory.Locations.Names())
		return s, prompt(s, MsgChooseLocation, Rows(labels, locationsPerRow)), nil

	case StageDate:
		days := DateChoices(now)
		labels := make([]string, 0, len(days))
		for _, d := range days {
			labels = append(labels, d.Format(DateLayout))
		}
		return s, prompt(s, fmt.Sprintf(MsgFmtChooseDate, s.Location), Rows(labels, datesPerRow)), nil

	case StageTime:
		slots := TimeSlots(s.Date, now)
		labels := make([]string, 0, len(slots))
		for _, t := range slots {
			labels = append(labels, t.Format(ClockLayout))
		}
		return s, prompt(s, fmt.Sprintf(MsgFmtChooseTime, FormatDateRussian(s.Date)), Rows(labels, slotsPerRow)), nil

	case StageFirstPlayer:
		if s.Directory.Players == nil {
			players, err := loadPlayers(ctx, e.directory, e.cfg.LeagueID)
			if err != nil {
				return s, Action{}, err
			}
			s.Directory.Players = players
		}
		labels := e.ranker.Rank(ctx, s.UserID, CategoryPlayer, s.Directory.Players.Names())
		text := fmt.Sprintf(MsgFmtChooseFirstPlayer, HumanizeSince(s.Time, now))
		return s, prompt(s, text, Rows(labels, playersPerRow)), nil

	case StageSecondPlayer:
		labels := e.ranker.Rank(ctx, s.UserID, CategoryPlayer, e.opponents(s))
		return s, prompt(s, fmt.Sprintf(MsgFmtChooseSecondPlayer, s.Player1), Rows(labels, playersPerRow)), nil

	case StageResult:
		return s, prompt(s, fmt.Sprintf(MsgFmtChooseResult, s.Player1, s.Player2), Rows(Scores, scoresPerRow)), nil

	case StageConfirmation:
		text := fmt.Sprintf(MsgFmtConfirm, s.Location, s.Time.Format(StampLayout), s.Player1, s.Player2, s.Result)
		return s, prompt(s, text, Keyboard{{ConfirmLabel}, {"/back"}}), nil
	}

	return s, Action{}, fmt.Errorf("no prompt for stage %q", stage)
}

// opponents lists every player except the already chosen first one.
func (e *Engine) opponents(s Session) []string {
	names := s.Directory.Players.Names()
	out := names[:0]
	for _, n := range names {
		if n != s.Player1 {
			out = append(out, n)
		}
	}
	return out
}

// suggestPlayers offers the opponents closest to name. Equally close names keep
// the order of the player keyboard.
func (e *Engine) suggestPlayers(ctx context.Context, s Session, name, text string) Action {
	ranked := e.ranker.Rank(ctx, s.UserID, CategoryPlayer, e.opponents(s))
	for i, label := range ranked {
		ranked[i] = StripMarker(label)
	}
	suggestions := Suggest(name, ranked, SuggestionLimit)
	return prompt(s, text, Rows(suggestions, playersPerRow))
}

func (e *Engine) submit(ctx context.Context, s Session, ev Event) (Session, []Action) {
	if e.submitter == nil {
		e.logger.Error("no submitter configured", "chat_id", s.ChatID)
		return s, []Action{reply(s, MsgPublishFailed)}
	}

	announcement, err := e.submitter.Submit(ctx, s, ev.SenderName())
	if errors.Is(err, ErrAlreadyPublished) {
		e.logger.Info("duplicate result confirmation", "chat_id", s.ChatID, "user_id", s.UserID)
		s.Reset()
		return s, []Action{{ChatID: s.ChatID, Text: MsgAlreadyPublished, RemoveKeyboard: true}}
	}
	if err != nil {
		e.logger.Error("failed to submit result", "chat_id", s.ChatID, "user_id", s.UserID, "error", err)
		return s, []Action{reply(s, MsgPublishFailed)}
	}

	s.Reset()
	actions := []Action{{ChatID: s.ChatID, Text: MsgPublished, RemoveKeyboard: true}}

	if e.cfg.AdminChatID == 0 {
		return s, actions
	}
	html, err := RenderAnnouncement(announcement)
	if err != nil {
		e.logger.Error("failed to render announcement", "chat_id", s.ChatID, "error", err)
		return s, actions
	}
	return s, append(actions, Action{ChatID: e.cfg.AdminChatID, Text: html, HTML: true, Announcement: true})
}

func reply(s Session, text string) Action {
	return Action{ChatID: s.ChatID, Text: text}
}

func prompt(s Session, text string, kb Keyboard) Action {
	return Action{ChatID: s.ChatID, Text: text, Keyboard: kb}
}
