package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/channelgrid/server/internal/models"
)

func TestGormZipResolver(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&models.ZipCode{
		Code:        "90210",
		Coordinates: "34.0901, -118.4065",
		CreatedAt:   time.Now(),
	}).Error; err != nil {
		t.Fatalf("seed zip: %v", err)
	}

	resolver := NewGormZipResolver(db)
	lat, lng, err := resolver.Resolve(context.Background(), "90210")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if lat != 34.0901 || lng != -118.4065 {
		t.Errorf("got (%v, %v)", lat, lng)
	}

	_, _, err = resolver.Resolve(context.Background(), "99999")
	if !errors.Is(err, ErrZipNotFound) {
		t.Errorf("missing zip: err = %v, want ErrZipNotFound", err)
	}
}

// The unscored count path must match the scored search's row set.
func TestGormStoreCountMatchesSearch(t *testing.T) {
	db := newTestDB(t)
	seedDirectory(t, db)
	store := NewGormChannelStore(db)

	c := ComposeFilters(buildText("austin"), Options{})
	rows, err := store.Search(context.Background(), c, "relevance DESC, city_name ASC", 50, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	total, err := store.Count(context.Background(), c)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if int64(len(rows)) != total {
		t.Errorf("search returned %d rows, count says %d", len(rows), total)
	}
}

func TestGormStoreWindowing(t *testing.T) {
	db := newTestDB(t)
	seedDirectory(t, db)
	store := NewGormChannelStore(db)

	c := buildAll()
	first, err := store.Search(context.Background(), c, "city_name ASC, state_name ASC", 2, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	second, err := store.Search(context.Background(), c, "city_name ASC, state_name ASC", 2, 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("window sizes %d/%d", len(first), len(second))
	}
	if first[0].Slug == second[0].Slug {
		t.Error("windows overlap")
	}
}
