package game

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Location is a court as listed by the league.
type Location struct {
	ID    int64
	Title string
}

// Player is a league participant.
type Player struct {
	ID        int64
	FirstName string
	LastName  string
}

// DisplayName is the "Last First" form used on keyboards and in announcements.
func (p Player) DisplayName() string {
	return strings.Join(strings.Fields(p.LastName+" "+p.FirstName), " ")
}

// LeagueDirectory is the read side of the league API.
type LeagueDirectory interface {
	Locations(ctx context.Context) ([]Location, error)
	Players(ctx context.Context, leagueID int64) ([]Player, error)
}

// Candidate is one valid choice with its league id.
type Candidate struct {
	Name string
	ID   int64
}

// Candidates is an immutable name→id set. Lookup prefers the exact name and
// falls back to a case and diacritics insensitive match only when that match
// is unambiguous.
type Candidates struct {
	byName   map[string]Candidate
	byFolded map[string][]string
	names    []string
}

// NewCandidates builds a candidate set. Blank names are skipped; when the same
// name appears twice the later id wins and the first position is kept.
func NewCandidates(items []Candidate) *Candidates {
	c := &Candidates{
		byName:   make(map[string]Candidate, len(items)),
		byFolded: make(map[string][]string, len(items)),
	}
	for _, item := range items {
		name := collapseSpaces(item.Name)
		if name == "" {
			continue
		}
		if _, exists := c.byName[name]; !exists {
			c.names = append(c.names, name)
			key := normalizeKey(name)
			c.byFolded[key] = append(c.byFolded[key], name)
		}
		c.byName[name] = Candidate{Name: name, ID: item.ID}
	}
	return c
}

// Lookup resolves free text to a canonical candidate. Text that folds to
// several candidates ("Федоров" vs "Фёдоров") resolves to none.
func (c *Candidates) Lookup(text string) (Candidate, bool) {
	if c == nil {
		return Candidate{}, false
	}
	if cand, ok := c.byName[collapseSpaces(text)]; ok {
		return cand, true
	}
	matches := c.byFolded[normalizeKey(text)]
	if len(matches) != 1 {
		return Candidate{}, false
	}
	return c.byName[matches[0]], true
}

// ID returns the league id of a canonical name.
func (c *Candidates) ID(name string) (int64, bool) {
	cand, ok := c.Lookup(name)
	return cand.ID, ok
}

// Names returns canonical names in source order.
func (c *Candidates) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Directory is the per-session cache of league candidates. Nil fields have not
// been fetched yet.
type Directory struct {
	Locations *Candidates
	Players   *Candidates
}

func loadLocations(ctx context.Context, api LeagueDirectory) (*Candidates, error) {
	locations, err := api.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	items := make([]Candidate, 0, len(locations))
	for _, l := range locations {
		items = append(items, Candidate{Name: l.Title, ID: l.ID})
	}
	return NewCandidates(items), nil
}

func loadPlayers(ctx context.Context, api LeagueDirectory, leagueID int64) (*Candidates, error) {
	players, err := api.Players(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	items := make([]Candidate, 0, len(players))
	for _, p := range players {
		items = append(items, Candidate{Name: p.DisplayName(), ID: p.ID})
	}
	return NewCandidates(items), nil
}

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeKey folds case, whitespace and diacritics so that "  нсц " matches "НСЦ"
// and "Семён" matches "Семен".
func normalizeKey(s string) string {
	s = collapseSpaces(s)
	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}
	return strings.ToLower(s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
