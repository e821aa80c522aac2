package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"
)

var msk = time.FixedZone("MSK", 3*60*60)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeDirectory struct {
	locations     []Location
	players       []Player
	err           error
	locationCalls int
	playerCalls   int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		locations: []Location{
			{ID: 1, Title: "НСЦ"},
			{ID: 2, Title: "Лужники"},
			{ID: 3, Title: "Вертикаль"},
		},
		players: []Player{
			{ID: 11, FirstName: "Иван", LastName: "Иванов"},
			{ID: 22, FirstName: "Пётр", LastName: "Петров"},
			{ID: 33, FirstName: "Мария", LastName: "Сидорова"},
		},
	}
}

func (d *fakeDirectory) Locations(context.Context) ([]Location, error) {
	d.locationCalls++
	if d.err != nil {
		return nil, d.err
	}
	return d.locations, nil
}

func (d *fakeDirectory) Players(_ context.Context, leagueID int64) ([]Player, error) {
	d.playerCalls++
	if d.err != nil {
		return nil, d.err
	}
	if leagueID != 1010 {
		return nil, fmt.Errorf("unexpected league %d", leagueID)
	}
	return d.players, nil
}

type fakeAuth struct {
	member bool
	err    error
}

func (a *fakeAuth) IsMember(context.Context, int64) (bool, error) {
	return a.member, a.err
}

type fakePublisher struct {
	published []ResultPayload
	err       error
}

func (p *fakePublisher) PublishResult(_ context.Context, payload ResultPayload) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, payload)
	return nil
}

func (p *fakePublisher) PlayerProfileURL(leagueID, playerID int64) string {
	return fmt.Sprintf("http://league.test/competitors/%d/leagues/%d/", playerID, leagueID)
}

type memJournal struct {
	entries map[string]PublishedResult
	err     error
}

func newMemJournal() *memJournal {
	return &memJournal{entries: make(map[string]PublishedResult)}
}

func (j *memJournal) IsPublished(_ context.Context, fp string) (bool, error) {
	if j.err != nil {
		return false, j.err
	}
	_, ok := j.entries[fp]
	return ok, nil
}

func (j *memJournal) RecordPublished(_ context.Context, r PublishedResult) error {
	if j.err != nil {
		return j.err
	}
	j.entries[r.Fingerprint] = r
	return nil
}

type memPrefs struct {
	scores map[string]map[string]int
	err    error
}

func newMemPrefs() *memPrefs {
	return &memPrefs{scores: make(map[string]map[string]int)}
}

func prefKey(userID int64, category Category) string {
	return fmt.Sprintf("%d:%s", userID, category)
}

func (m *memPrefs) IncrementScore(_ context.Context, userID int64, category Category, name string) error {
	if m.err != nil {
		return m.err
	}
	key := prefKey(userID, category)
	if m.scores[key] == nil {
		m.scores[key] = make(map[string]int)
	}
	m.scores[key][name]++
	return nil
}

func (m *memPrefs) TopScored(_ context.Context, userID int64, category Category, limit int) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	scores := m.scores[prefKey(userID, category)]
	names := make([]string, 0, len(scores))
	for n := range scores {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if scores[names[i]] != scores[names[j]] {
			return scores[names[i]] > scores[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

var errBoom = errors.New("boom")
