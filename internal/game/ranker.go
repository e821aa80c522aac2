package game

import (
	"context"
	"log/slog"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Category separates preference counters for different kinds of choices.
type Category string

const (
	CategoryLocation Category = "location"
	CategoryPlayer   Category = "player"
)

// FavouriteCount is how many of a user's most used choices are promoted.
const FavouriteCount = 3

// PreferenceStore keeps per-user usage counters.
type PreferenceStore interface {
	IncrementScore(ctx context.Context, userID int64, category Category, name string) error
	TopScored(ctx context.Context, userID int64, category Category, limit int) ([]string, error)
}

// Ranker orders choice keyboards by a user's history.
// Store failures never block the dialogue; they are logged and ranking falls
// back to plain alphabetical order.
type Ranker struct {
	store  PreferenceStore
	logger *slog.Logger
}

func NewRanker(store PreferenceStore, logger *slog.Logger) *Ranker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ranker{store: store, logger: logger}
}

// Rank returns keyboard labels for names: up to FavouriteCount favourites first,
// each marked with PreferenceMarker, then the remaining names in Russian
// alphabetical order.
func (r *Ranker) Rank(ctx context.Context, userID int64, category Category, names []string) []string {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	var favourites []string
	if r.store != nil {
		top, err := r.store.TopScored(ctx, userID, category, FavouriteCount+len(names))
		if err != nil {
			r.logger.Warn("failed to load preferences",
				"user_id", userID,
				"category", category,
				"error", err,
			)
		}
		for _, name := range top {
			if len(favourites) == FavouriteCount {
				break
			}
			if present[name] {
				favourites = append(favourites, name)
				present[name] = false
			}
		}
	}

	rest := make([]string, 0, len(names))
	for _, n := range names {
		if present[n] {
			rest = append(rest, n)
			present[n] = false
		}
	}
	SortNames(rest)

	labels := make([]string, 0, len(favourites)+len(rest))
	for _, f := range favourites {
		labels = append(labels, markFavourite(f))
	}
	return append(labels, rest...)
}

// Record counts one more use of name. Failures are logged and dropped.
func (r *Ranker) Record(ctx context.Context, userID int64, category Category, name string) {
	if r.store == nil {
		return
	}
	if err := r.store.IncrementScore(ctx, userID, category, name); err != nil {
		r.logger.Warn("failed to record preference",
			"user_id", userID,
			"category", category,
			"name", name,
			"error", err,
		)
	}
}

// SortNames sorts names in Russian collation order.
func SortNames(names []string) {
	collate.New(language.Russian).SortStrings(names)
}
