package bot

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"nuclight.org/squashbot/internal/game"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func toStage(stage game.Stage) func(game.Session) game.Session {
	return func(s game.Session) game.Session {
		s.Stage = stage
		return s
	}
}

func TestRegistry_KeepsSessionPerChat(t *testing.T) {
	r := NewRegistry(RegistryOptions{}, discardLogger())

	r.Do(1, 10, toStage(game.StageLocation))
	r.Do(2, 20, toStage(game.StageDate))

	s1, _ := r.session(1)
	s2, _ := r.session(2)
	if s1.Stage != game.StageLocation || s1.UserID != 10 {
		t.Errorf("chat 1: got %+v", s1)
	}
	if s2.Stage != game.StageDate || s2.ChatID != 2 {
		t.Errorf("chat 2: got %+v", s2)
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 chats, got %d", r.Len())
	}
}

func TestRegistry_IdleTimeout(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(RegistryOptions{IdleTimeout: time.Hour, Clock: clock.Now}, discardLogger())

	r.Do(1, 10, toStage(game.StageTime))

	clock.Advance(59 * time.Minute)
	var seen game.Stage
	r.Do(1, 10, func(s game.Session) game.Session {
		seen = s.Stage
		return s
	})
	if seen != game.StageTime {
		t.Fatalf("session expired too early: %s", seen)
	}

	clock.Advance(61 * time.Minute)
	r.Do(1, 10, func(s game.Session) game.Session {
		seen = s.Stage
		return s
	})
	if seen != game.StageStart {
		t.Errorf("expected expired session to restart, got %s", seen)
	}
}

func TestRegistry_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(RegistryOptions{IdleTimeout: time.Minute, Clock: clock.Now}, discardLogger())

	r.Do(1, 10, toStage(game.StageDate))
	clock.Advance(30 * time.Second)
	r.Do(2, 20, toStage(game.StageDate))
	clock.Advance(45 * time.Second)

	if n := r.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept, got %d", n)
	}
	if _, ok := r.session(1); ok {
		t.Error("chat 1 should be gone")
	}
	if _, ok := r.session(2); !ok {
		t.Error("chat 2 should remain")
	}
}

func TestRegistry_Throttle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(RegistryOptions{RatePerSecond: 1, Burst: 2, Clock: clock.Now}, discardLogger())

	noop := func(s game.Session) game.Session { return s }
	want := []Verdict{Admitted, Admitted, ThrottledFirst, Throttled}
	for i, w := range want {
		if got := r.Do(1, 10, noop); got != w {
			t.Errorf("update %d: expected verdict %d, got %d", i, w, got)
		}
	}

	clock.Advance(time.Second)
	if got := r.Do(1, 10, noop); got != Admitted {
		t.Errorf("expected refill after a second, got %d", got)
	}
	if got := r.Do(2, 20, noop); got != Admitted {
		t.Errorf("other chats are not affected, got %d", got)
	}
}

func TestRegistry_SerializesChat(t *testing.T) {
	r := NewRegistry(RegistryOptions{}, discardLogger())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Do(1, 10, func(s game.Session) game.Session {
				s.Location += "x"
				return s
			})
		}()
	}
	wg.Wait()

	s, _ := r.session(1)
	if len(s.Location) != 50 {
		t.Errorf("expected 50 serialized updates, got %d", len(s.Location))
	}
}
