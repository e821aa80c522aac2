package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRanker_FavouritesFirst(t *testing.T) {
	ctx := context.Background()
	prefs := newMemPrefs()
	r := NewRanker(prefs, testLogger())

	for name, n := range map[string]int{"НСЦ": 3, "Лужники": 1, "Закрытый корт": 5, "Европа": 2, "Вертикаль": 1} {
		for i := 0; i < n; i++ {
			r.Record(ctx, 7, CategoryLocation, name)
		}
	}

	names := []string{"НСЦ", "Лужники", "Вертикаль", "Европа", "Юность", "Арена"}
	got := r.Rank(ctx, 7, CategoryLocation, names)

	// "Закрытый корт" is no longer listed, so it is not promoted.
	assert.Equal(t, []string{
		markFavourite("НСЦ"),
		markFavourite("Европа"),
		markFavourite("Вертикаль"),
		"Арена",
		"Лужники",
		"Юность",
	}, got)
}

func TestRanker_OtherUserSeesPlainOrder(t *testing.T) {
	ctx := context.Background()
	prefs := newMemPrefs()
	r := NewRanker(prefs, testLogger())
	r.Record(ctx, 7, CategoryPlayer, "Петров Пётр")

	got := r.Rank(ctx, 8, CategoryPlayer, []string{"Петров Пётр", "Иванов Иван"})
	assert.Equal(t, []string{"Иванов Иван", "Петров Пётр"}, got)
}

func TestRanker_StoreFailure(t *testing.T) {
	ctx := context.Background()
	prefs := newMemPrefs()
	prefs.err = errBoom
	r := NewRanker(prefs, testLogger())

	r.Record(ctx, 7, CategoryLocation, "НСЦ")
	got := r.Rank(ctx, 7, CategoryLocation, []string{"НСЦ", "Арена"})
	assert.Equal(t, []string{"Арена", "НСЦ"}, got)
}

func TestRanker_NilStore(t *testing.T) {
	r := NewRanker(nil, nil)
	r.Record(context.Background(), 1, CategoryLocation, "x")
	assert.Equal(t, []string{"б", "в"}, r.Rank(context.Background(), 1, CategoryLocation, []string{"в", "б"}))
}

func TestSortNames_RussianCollation(t *testing.T) {
	names := []string{"ёжик", "Яблоко", "арбуз", "Ель", "жук"}
	SortNames(names)
	require.Len(t, names, 5)
	assert.Equal(t, "арбуз", names[0])
	assert.Equal(t, "Яблоко", names[4])
	assert.Less(t, indexOf(names, "Ель"), indexOf(names, "жук"))
	assert.Less(t, indexOf(names, "ёжик"), indexOf(names, "жук"))
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
