package storage

import (
	"context"
	"reflect"
	"testing"

	"nuclight.org/squashbot/internal/game"
)

func TestPreferenceRepository_TopScored(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferenceRepository(setupTestDB(t))

	uses := []struct {
		user     int64
		category game.Category
		name     string
		times    int
	}{
		{1, game.CategoryLocation, "Лужники", 3},
		{1, game.CategoryLocation, "НСЦ", 1},
		{1, game.CategoryLocation, "Вертикаль", 1},
		{1, game.CategoryLocation, "Европа", 2},
		{1, game.CategoryPlayer, "Иванов Иван", 5},
		{2, game.CategoryLocation, "НСЦ", 9},
	}
	for _, u := range uses {
		for i := 0; i < u.times; i++ {
			if err := repo.IncrementScore(ctx, u.user, u.category, u.name); err != nil {
				t.Fatalf("IncrementScore failed: %v", err)
			}
		}
	}

	got, err := repo.TopScored(ctx, 1, game.CategoryLocation, 3)
	if err != nil {
		t.Fatalf("TopScored failed: %v", err)
	}
	want := []string{"Лужники", "Европа", "Вертикаль"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got, err = repo.TopScored(ctx, 1, game.CategoryPlayer, 3)
	if err != nil {
		t.Fatalf("TopScored failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Иванов Иван"}) {
		t.Errorf("categories should not mix, got %v", got)
	}
}

func TestPreferenceRepository_Empty(t *testing.T) {
	repo := NewPreferenceRepository(setupTestDB(t))

	got, err := repo.TopScored(context.Background(), 42, game.CategoryPlayer, 3)
	if err != nil {
		t.Fatalf("TopScored failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected nothing, got %v", got)
	}

	got, err = repo.TopScored(context.Background(), 42, game.CategoryPlayer, 0)
	if err != nil || got != nil {
		t.Errorf("zero limit: got %v, %v", got, err)
	}
}
