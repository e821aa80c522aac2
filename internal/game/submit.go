package game

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrIncompleteSession = errors.New("session is not ready for submission")
	ErrUnknownLocation   = errors.New("location is not in the league directory")
	ErrUnknownPlayer     = errors.New("player is not in the league directory")
	ErrAlreadyPublished  = errors.New("result already published")
)

// WireTimeLayout is the end_datetime format the league API expects.
const WireTimeLayout = time.RFC3339

// ResultPayload is one match result as sent to the league API.
type ResultPayload struct {
	League      int64  `validate:"required,gt=0"`
	Player1     int64  `validate:"required,gt=0,nefield=Player2"`
	Player2     int64  `validate:"required,gt=0"`
	Score1      int    `validate:"min=0,max=3"`
	Score2      int    `validate:"min=0,max=3,nefield=Score1"`
	Location    int64  `validate:"required,gt=0"`
	EndDatetime string `validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Fingerprint identifies a result independently of who entered it.
func (p ResultPayload) Fingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%d|%d|%d|%d|%d|%s",
		p.League, p.Player1, p.Player2, p.Score1, p.Score2, p.Location, p.EndDatetime)))
	return hex.EncodeToString(sum[:])
}

// Publisher is the write side of the league API.
type Publisher interface {
	PublishResult(ctx context.Context, payload ResultPayload) error
	PlayerProfileURL(leagueID, playerID int64) string
}

// PublishedResult is a journal entry for a result accepted by the league.
type PublishedResult struct {
	Fingerprint string
	Payload     ResultPayload
	ChatID      int64
	UserID      int64
	Submitter   string
	PublishedAt time.Time
}

// Journal remembers published results so the same game is not posted twice.
type Journal interface {
	IsPublished(ctx context.Context, fingerprint string) (bool, error)
	RecordPublished(ctx context.Context, r PublishedResult) error
}

// Announcement is what the admin channel is told about a published result.
type Announcement struct {
	Submitter  string
	Location   string
	When       string
	Player1    string
	Player1URL string
	Player2    string
	Player2URL string
	Score      string
}

// Submitter turns a confirmed session into a league result.
type Submitter struct {
	api      Publisher
	journal  Journal
	leagueID int64
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// NewSubmitter creates a submitter. journal may be nil.
func NewSubmitter(api Publisher, journal Journal, leagueID int64, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{
		api:      api,
		journal:  journal,
		leagueID: leagueID,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Payload builds the API payload for a confirmed session.
func (s *Submitter) Payload(sess Session) (ResultPayload, error) {
	if sess.Location == "" || sess.Time.IsZero() || sess.Player1 == "" || sess.Player2 == "" || sess.Result == "" {
		return ResultPayload{}, ErrIncompleteSession
	}
	r1, r2, err := ParseScore(sess.Result)
	if err != nil {
		return ResultPayload{}, err
	}
	loc, ok := sess.Directory.Locations.ID(sess.Location)
	if !ok {
		return ResultPayload{}, fmt.Errorf("%w: %s", ErrUnknownLocation, sess.Location)
	}
	p1, ok := sess.Directory.Players.ID(sess.Player1)
	if !ok {
		return ResultPayload{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, sess.Player1)
	}
	p2, ok := sess.Directory.Players.ID(sess.Player2)
	if !ok {
		return ResultPayload{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, sess.Player2)
	}

	payload := ResultPayload{
		League:      s.leagueID,
		Player1:     p1,
		Player2:     p2,
		Score1:      r1,
		Score2:      r2,
		Location:    loc,
		EndDatetime: sess.Time.Format(WireTimeLayout),
	}
	if err := s.validate.Struct(payload); err != nil {
		return ResultPayload{}, fmt.Errorf("invalid result payload: %w", err)
	}
	return payload, nil
}

// Submit publishes the session's result and returns the announcement to post.
// Nothing is returned for announcing unless the league accepted the result.
func (s *Submitter) Submit(ctx context.Context, sess Session, submitter string) (Announcement, error) {
	payload, err := s.Payload(sess)
	if err != nil {
		return Announcement{}, err
	}
	fingerprint := payload.Fingerprint()

	if s.journal != nil {
		published, err := s.journal.IsPublished(ctx, fingerprint)
		if err != nil {
			s.logger.Warn("failed to check result journal", "chat_id", sess.ChatID, "error", err)
		} else if published {
			return Announcement{}, ErrAlreadyPublished
		}
	}

	if err := s.api.PublishResult(ctx, payload); err != nil {
		return Announcement{}, fmt.Errorf("publish result: %w", err)
	}

	s.logger.Info("result published",
		"chat_id", sess.ChatID,
		"user_id", sess.UserID,
		"player1", payload.Player1,
		"player2", payload.Player2,
		"score", sess.Result,
		"location", payload.Location,
		"end_datetime", payload.EndDatetime,
	)

	if s.journal != nil {
		entry := PublishedResult{
			Fingerprint: fingerprint,
			Payload:     payload,
			ChatID:      sess.ChatID,
			UserID:      sess.UserID,
			Submitter:   submitter,
			PublishedAt: s.now(),
		}
		if err := s.journal.RecordPublished(ctx, entry); err != nil {
			s.logger.Warn("failed to record published result", "chat_id", sess.ChatID, "error", err)
		}
	}

	return Announcement{
		Submitter:  submitter,
		Location:   sess.Location,
		When:       sess.Time.Format(StampLayout),
		Player1:    sess.Player1,
		Player1URL: s.api.PlayerProfileURL(s.leagueID, payload.Player1),
		Player2:    sess.Player2,
		Player2URL: s.api.PlayerProfileURL(s.leagueID, payload.Player2),
		Score:      FormatScore(payload.Score1, payload.Score2),
	}, nil
}
