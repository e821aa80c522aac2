package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_DisplayName(t *testing.T) {
	assert.Equal(t, "Иванов Иван", Player{FirstName: "Иван", LastName: "Иванов"}.DisplayName())
	assert.Equal(t, "Иванов", Player{LastName: " Иванов "}.DisplayName())
}

func TestCandidates_Lookup(t *testing.T) {
	c := NewCandidates([]Candidate{
		{Name: "НСЦ", ID: 1},
		{Name: "Петров  Пётр", ID: 22},
		{Name: "   ", ID: 99},
	})

	tests := []struct {
		text string
		want string
		id   int64
	}{
		{"НСЦ", "НСЦ", 1},
		{"  нсц ", "НСЦ", 1},
		{"петров пётр", "Петров Пётр", 22},
		{"Петров Петр", "Петров Пётр", 22},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cand, ok := c.Lookup(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, cand.Name)
			assert.Equal(t, tt.id, cand.ID)
		})
	}

	_, ok := c.Lookup("Лужники")
	assert.False(t, ok)
	assert.Equal(t, []string{"НСЦ", "Петров Пётр"}, c.Names(), "blank names are skipped")
}

func TestCandidates_DuplicateLaterWins(t *testing.T) {
	c := NewCandidates([]Candidate{
		{Name: "НСЦ", ID: 1},
		{Name: "Лужники", ID: 2},
		{Name: " НСЦ ", ID: 3},
	})

	assert.Equal(t, []string{"НСЦ", "Лужники"}, c.Names())
	id, ok := c.ID("НСЦ")
	require.True(t, ok)
	assert.Equal(t, int64(3), id)
}

func TestCandidates_NamesDifferingOnlyByDiacritics(t *testing.T) {
	c := NewCandidates([]Candidate{
		{Name: "Фёдоров Алексей", ID: 1},
		{Name: "Федоров Алексей", ID: 2},
		{Name: "Петров Пётр", ID: 3},
	})

	assert.Equal(t, []string{"Фёдоров Алексей", "Федоров Алексей", "Петров Пётр"}, c.Names())

	id, ok := c.ID("Фёдоров Алексей")
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	id, ok = c.ID("Федоров Алексей")
	require.True(t, ok)
	assert.Equal(t, int64(2), id)

	_, ok = c.Lookup("федоров алексей")
	assert.False(t, ok, "folded text matching two players is ambiguous")

	cand, ok := c.Lookup("петров петр")
	require.True(t, ok, "unambiguous folded text still resolves")
	assert.Equal(t, int64(3), cand.ID)
}

func TestCandidates_Nil(t *testing.T) {
	var c *Candidates
	_, ok := c.Lookup("x")
	assert.False(t, ok)
	assert.Nil(t, c.Names())
	_, ok = c.ID("x")
	assert.False(t, ok)
}

func TestLoadPlayers(t *testing.T) {
	dir := newFakeDirectory()

	players, err := loadPlayers(context.Background(), dir, 1010)
	require.NoError(t, err)
	assert.Equal(t, []string{"Иванов Иван", "Петров Пётр", "Сидорова Мария"}, players.Names())

	dir.err = errBoom
	_, err = loadLocations(context.Background(), dir)
	assert.ErrorIs(t, err, errBoom)
}
