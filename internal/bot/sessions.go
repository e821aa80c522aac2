package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"nuclight.org/squashbot/internal/game"
)

// Verdict tells whether an update was let through the per-chat limiter.
type Verdict int

const (
	Admitted Verdict = iota
	// ThrottledFirst is the first rejected update after an admitted one;
	// the user is told to slow down once.
	ThrottledFirst
	// Throttled updates are dropped silently.
	Throttled
)

type chatState struct {
	mu       sync.Mutex
	session  game.Session
	lastSeen time.Time
	limiter  *rate.Limiter
	warned   bool
	// gone is set once the janitor drops the state from the registry.
	gone bool
}

// Registry holds one conversation per chat. Sessions idle longer than the
// timeout are forgotten and the next update starts from scratch.
type Registry struct {
	mu      sync.Mutex
	chats   map[int64]*chatState
	timeout time.Duration
	limit   rate.Limit
	burst   int
	now     func() time.Time
	logger  *slog.Logger
}

type RegistryOptions struct {
	// IdleTimeout of zero keeps sessions forever.
	IdleTimeout time.Duration
	// RatePerSecond of zero disables throttling.
	RatePerSecond float64
	Burst         int
	Clock         func() time.Time
}

func NewRegistry(opts RegistryOptions, logger *slog.Logger) *Registry {
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Registry{
		chats:   make(map[int64]*chatState),
		timeout: opts.IdleTimeout,
		limit:   limit,
		burst:   burst,
		now:     clock,
		logger:  logger,
	}
}

func (r *Registry) state(chatID, userID int64) *chatState {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.chats[chatID]
	if !ok {
		st = &chatState{
			session: game.NewSession(chatID, userID),
			limiter: rate.NewLimiter(r.limit, r.burst),
		}
		r.chats[chatID] = st
	}
	return st
}

// Do runs fn with the chat's current session and stores the session it returns.
// Calls for the same chat are serialized.
func (r *Registry) Do(chatID, userID int64, fn func(game.Session) game.Session) Verdict {
	st := r.state(chatID, userID)
	st.mu.Lock()
	for st.gone {
		st.mu.Unlock()
		st = r.state(chatID, userID)
		st.mu.Lock()
	}
	defer st.mu.Unlock()

	now := r.now()
	if !st.limiter.AllowN(now, 1) {
		if st.warned {
			return Throttled
		}
		st.warned = true
		return ThrottledFirst
	}
	st.warned = false

	if r.expired(st, now) && !st.session.Idle() {
		r.logger.Info("session expired", "chat_id", chatID, "stage", st.session.Stage)
		st.session = game.NewSession(chatID, userID)
	}
	st.session.UserID = userID

	st.session = fn(st.session)
	st.lastSeen = now
	return Admitted
}

func (r *Registry) expired(st *chatState, now time.Time) bool {
	return r.timeout > 0 && !st.lastSeen.IsZero() && now.Sub(st.lastSeen) > r.timeout
}

// session returns a copy of the chat's session.
func (r *Registry) session(chatID int64) (game.Session, bool) {
	r.mu.Lock()
	st, ok := r.chats[chatID]
	r.mu.Unlock()
	if !ok {
		return game.Session{}, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.session, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chats)
}

// Sweep drops sessions idle past the timeout and returns how many went.
// Chats busy with an update are skipped.
func (r *Registry) Sweep() int {
	if r.timeout <= 0 {
		return 0
	}
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, st := range r.chats {
		if !st.mu.TryLock() {
			continue
		}
		if r.expired(st, now) {
			st.gone = true
			delete(r.chats, id)
			removed++
		}
		st.mu.Unlock()
	}
	return removed
}

// RunJanitor sweeps every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("expired sessions removed", "count", n)
			}
		}
	}
}
