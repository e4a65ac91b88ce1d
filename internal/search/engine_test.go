package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/channelgrid/server/internal/models"
)

func strptr(s string) *string   { return &s }
func f64ptr(f float64) *float64 { return &f }
func i64ptr(i int64) *int64     { return &i }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Channel{}, &models.ZipCode{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedChannel(t *testing.T, db *gorm.DB, c models.Channel) {
	t.Helper()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed channel %s: %v", c.Slug, err)
	}
}

func seedDirectory(t *testing.T, db *gorm.DB) {
	t.Helper()
	seedChannel(t, db, models.Channel{
		Slug: "austin-tx", CityName: "Austin",
		StateName: strptr("Texas"), StateCode: strptr("TX"),
		CountryName: strptr("United States"), CountryCode: strptr("US"),
		Population: i64ptr(961855),
		Latitude:   f64ptr(30.2672), Longitude: f64ptr(-97.7431),
		CustomDomain: strptr("austintexas.com"),
		Status:       strptr(models.StatusLive),
		Title:        strptr("Austin, Texas"),
	})
	seedChannel(t, db, models.Channel{
		Slug: "austin-in", CityName: "Austin",
		StateName: strptr("Indiana"), StateCode: strptr("IN"),
		CountryName: strptr("United States"), CountryCode: strptr("US"),
		Population: i64ptr(4295),
		Latitude:   f64ptr(38.7584), Longitude: f64ptr(-85.8080),
		Status: strptr(models.StatusLive),
	})
	seedChannel(t, db, models.Channel{
		Slug: "dallas-tx", CityName: "Dallas",
		StateName: strptr("Texas"), StateCode: strptr("TX"),
		CountryName: strptr("United States"), CountryCode: strptr("US"),
		Population: i64ptr(1304379),
		Latitude:   f64ptr(32.7767), Longitude: f64ptr(-96.7970),
		CustomDomain: strptr("example.org"),
		Status:       strptr(models.StatusPreview),
	})
	seedChannel(t, db, models.Channel{
		Slug: "portland-or", CityName: "Portland",
		StateName: strptr("Oregon"), StateCode: strptr("OR"),
		CountryName: strptr("United States"), CountryCode: strptr("US"),
		Population: i64ptr(652503),
		Latitude:   f64ptr(45.5152), Longitude: f64ptr(-122.6784),
		CustomDomain: strptr("example.com"),
		Status:       strptr(models.StatusLive),
	})
	// Geo-incomplete: no coordinates, must never appear in "all" results.
	seedChannel(t, db, models.Channel{
		Slug: "ghost-town", CityName: "Ghost Town",
		StateName: strptr("Nevada"), StateCode: strptr("NV"),
		CountryName: strptr("United States"), CountryCode: strptr("US"),
		Status: strptr(models.StatusLive),
	})
}

func newTestEngine(t *testing.T) (*Engine, *gorm.DB) {
	db := newTestDB(t)
	seedDirectory(t, db)
	return NewGormEngine(db, nil), db
}

func TestEngineTextSearchRanking(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Search(context.Background(), "Austin", Options{})
	if !res.Success {
		t.Fatalf("search failed: %s", res.Message)
	}
	if len(res.Channels) != 2 {
		t.Fatalf("got %d channels, want 2", len(res.Channels))
	}
	// Exact city ties break on city name; both are Austin, so both score
	// 100 and stay deterministic via the secondary sort.
	for _, ch := range res.Channels {
		if ch.CityName != "Austin" {
			t.Errorf("unexpected channel %s", ch.Slug)
		}
		if ch.Relevance == nil || *ch.Relevance != 100 {
			t.Errorf("%s relevance = %v, want 100", ch.Slug, ch.Relevance)
		}
	}
}

// "Austin Texas": the channel matching city AND state outranks the
// channel matching only the city.
func TestEngineMultiWordTwoRanking(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Search(context.Background(), "Austin Texas", Options{})
	if !res.Success {
		t.Fatalf("search failed: %s", res.Message)
	}
	if len(res.Channels) < 2 {
		t.Fatalf("got %d channels, want at least 2", len(res.Channels))
	}
	if res.Channels[0].Slug != "austin-tx" {
		t.Errorf("first result = %s, want austin-tx", res.Channels[0].Slug)
	}
	if res.Channels[1].Slug != "austin-in" {
		t.Errorf("second result = %s, want austin-in", res.Channels[1].Slug)
	}
	if *res.Channels[0].Relevance <= *res.Channels[1].Relevance {
		t.Errorf("pair match must outscore city-only match: %d <= %d",
			*res.Channels[0].Relevance, *res.Channels[1].Relevance)
	}
}

// Bulk domain order is a priority signal: the first listed domain wins.
func TestEngineBulkDomainOrdering(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Search(context.Background(), "example.com, example.org", Options{})
	if !res.Success {
		t.Fatalf("search failed: %s", res.Message)
	}
	if len(res.Channels) != 2 {
		t.Fatalf("got %d channels, want 2", len(res.Channels))
	}
	if res.Channels[0].Slug != "portland-or" {
		t.Errorf("first result = %s, want portland-or (example.com)", res.Channels[0].Slug)
	}

	// Reversing the list reverses the ranking.
	res = engine.Search(context.Background(), "example.org, example.com", Options{})
	if res.Channels[0].Slug != "dallas-tx" {
		t.Errorf("first result = %s, want dallas-tx (example.org)", res.Channels[0].Slug)
	}
}

// The empty query lists geo-complete channels only.
func TestEngineAllExcludesGeoIncomplete(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Search(context.Background(), "", Options{Status: models.StatusLive})
	if !res.Success {
		t.Fatalf("search failed: %s", res.Message)
	}
	for _, ch := range res.Channels {
		if ch.Slug == "ghost-town" {
			t.Error("geo-incomplete channel leaked into the all listing")
		}
		if !ch.GeoComplete() {
			t.Errorf("%s has no coordinates", ch.Slug)
		}
	}
	if len(res.Channels) != 3 {
		t.Errorf("got %d live geo-complete channels, want 3", len(res.Channels))
	}
}

func TestEngineFilters(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Search(context.Background(), "", Options{State: "tx"})
	if len(res.Channels) != 2 {
		t.Fatalf("TX filter: got %d channels", len(res.Channels))
	}

	res = engine.Search(context.Background(), "", Options{State: "tx", Status: models.StatusPreview})
	if len(res.Channels) != 1 || res.Channels[0].Slug != "dallas-tx" {
		t.Fatalf("combined filter: got %v", res.Channels)
	}

	// Applied filters echo normalized values.
	if res.Filters.State != "TX" || res.Filters.Status != models.StatusPreview {
		t.Errorf("filters echo = %+v", res.Filters)
	}
}

func TestEnginePagination(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Search(context.Background(), "", Options{PerPage: 2, Sort: SortCity})
	if res.Pagination == nil {
		t.Fatal("missing pagination")
	}
	if res.Pagination.TotalCount != 4 {
		t.Errorf("totalCount = %d, want 4", res.Pagination.TotalCount)
	}
	if res.Pagination.TotalPages != 2 || !res.Pagination.HasNext || res.Pagination.HasPrev {
		t.Errorf("pagination = %+v", res.Pagination)
	}
	if len(res.Channels) != 2 {
		t.Errorf("page size = %d", len(res.Channels))
	}

	page2 := engine.Search(context.Background(), "", Options{PerPage: 2, Page: 2, Sort: SortCity})
	if page2.Pagination.ShowingStart != 3 || page2.Pagination.ShowingEnd != 4 {
		t.Errorf("page 2 shows %d-%d", page2.Pagination.ShowingStart, page2.Pagination.ShowingEnd)
	}
	if page2.Channels[0].Slug == res.Channels[0].Slug {
		t.Error("page 2 repeats page 1 rows")
	}
}

func TestEngineSortPopulation(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Search(context.Background(), "", Options{Sort: SortPopulation})
	if res.Channels[0].Slug != "dallas-tx" {
		t.Errorf("largest city first, got %s", res.Channels[0].Slug)
	}
}

// Warm-cache searches return the stored result even after the data moves;
// invalidation restores live reads.
func TestEngineCacheLifecycle(t *testing.T) {
	engine, db := newTestEngine(t)

	opts := Options{Sort: SortCity}
	first := engine.Search(context.Background(), "Austin", opts)
	if got := len(first.Channels); got != 2 {
		t.Fatalf("got %d channels", got)
	}

	seedChannel(t, db, models.Channel{
		Slug: "austin-mn", CityName: "Austin",
		StateName: strptr("Minnesota"), StateCode: strptr("MN"),
		Latitude: f64ptr(43.6666), Longitude: f64ptr(-92.9746),
		Status: strptr(models.StatusLive),
	})

	cached := engine.Search(context.Background(), "Austin", opts)
	if len(cached.Channels) != 2 {
		t.Errorf("cache miss on identical query: got %d channels", len(cached.Channels))
	}

	engine.InvalidateCache()
	fresh := engine.Search(context.Background(), "Austin", opts)
	if len(fresh.Channels) != 3 {
		t.Errorf("after invalidation: got %d channels, want 3", len(fresh.Channels))
	}
}

func TestEngineDebugBypassesCache(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Search(context.Background(), "Austin", Options{Context: ContextAdmin, Debug: true})
	if res.Debug == nil {
		t.Fatal("debug metadata missing")
	}
	if res.Debug.SearchType != TypeText {
		t.Errorf("search type = %s", res.Debug.SearchType)
	}
	if engine.CacheSize() != 0 {
		t.Error("debug search must not populate the cache")
	}
}

func TestEngineTotalCappedByLimit(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Search(context.Background(), "", Options{Limit: 1})
	if res.Pagination.TotalCount != 1 {
		t.Errorf("totalCount = %d, want capped at 1", res.Pagination.TotalCount)
	}
	if len(res.Channels) != 1 {
		t.Errorf("got %d channels", len(res.Channels))
	}
}

// --- geo and failure paths run against a stub store ---

type stubStore struct {
	channels []models.Channel
	err      error

	gotConds Conditions
	gotOrder string
	calls    int
}

func (s *stubStore) Search(_ context.Context, c Conditions, order string, limit, offset int) ([]models.Channel, error) {
	s.calls++
	s.gotConds = c
	s.gotOrder = order
	if s.err != nil {
		return nil, s.err
	}
	return s.channels, nil
}

func (s *stubStore) Count(_ context.Context, c Conditions) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.channels)), nil
}

func TestEngineZipSearch(t *testing.T) {
	near := models.Channel{
		Slug: "beverly-hills-ca", CityName: "Beverly Hills",
		Latitude: f64ptr(34.0736), Longitude: f64ptr(-118.4004),
		Distance: f64ptr(1.2),
	}
	store := &stubStore{channels: []models.Channel{near}}
	resolver := &stubResolver{lat: 34.0901, lng: -118.4065}
	engine := NewEngine(store, resolver, nil)

	res := engine.Search(context.Background(), "90210", Options{})
	if !res.Success {
		t.Fatalf("search failed: %s", res.Message)
	}
	if len(res.Channels) != 1 || res.Channels[0].Slug != "beverly-hills-ca" {
		t.Fatalf("channels = %v", res.Channels)
	}
	if res.Channels[0].Distance == nil {
		t.Error("distance annotation missing")
	}
	if store.gotOrder != "distance ASC, slug ASC" {
		t.Errorf("order = %q, want ascending distance", store.gotOrder)
	}
	if !store.gotConds.SortByDistance || store.gotConds.Having != "distance <= ?" {
		t.Errorf("conditions = %+v", store.gotConds)
	}
	if store.gotConds.HavingArgs[0] != float64(30) {
		t.Errorf("default radius = %v", store.gotConds.HavingArgs[0])
	}
	if res.Filters.Sort != SortDistance {
		t.Errorf("echoed sort = %q", res.Filters.Sort)
	}
}

// An unresolvable zip is a user-visible failure, not a text search.
func TestEngineZipNotFound(t *testing.T) {
	store := &stubStore{}
	engine := NewEngine(store, &stubResolver{err: ErrZipNotFound}, nil)

	res := engine.Search(context.Background(), "00000", Options{})
	if res.Success {
		t.Fatal("expected failure envelope")
	}
	if res.Message == "" {
		t.Error("geo failures carry a message")
	}
	if store.calls != 0 {
		t.Error("store must not be queried after resolution failure")
	}
	if len(res.Channels) != 0 || res.Channels == nil {
		t.Errorf("failure envelope channels = %v", res.Channels)
	}
}

// Datastore errors stay inside the envelope with a generic message.
func TestEngineDatastoreFailure(t *testing.T) {
	store := &stubStore{err: errors.New("connection refused")}
	engine := NewEngine(store, &stubResolver{}, nil)

	res := engine.Search(context.Background(), "Austin", Options{})
	if res.Success {
		t.Fatal("expected failure envelope")
	}
	if res.Message != "search temporarily unavailable" {
		t.Errorf("message = %q", res.Message)
	}
	if len(res.Channels) != 0 {
		t.Errorf("channels = %v", res.Channels)
	}
	if res.Debug != nil {
		t.Error("non-debug failure leaked detail")
	}
}

// Failure results are never cached: a later retry hits the store again.
func TestEngineFailureNotCached(t *testing.T) {
	store := &stubStore{err: errors.New("down")}
	engine := NewEngine(store, &stubResolver{}, nil)

	engine.Search(context.Background(), "Austin", Options{})
	if engine.CacheSize() != 0 {
		t.Fatal("failure result was cached")
	}

	store.err = nil
	store.channels = []models.Channel{{Slug: "austin-tx", CityName: "Austin"}}
	res := engine.Search(context.Background(), "Austin", Options{})
	if !res.Success || len(res.Channels) != 1 {
		t.Errorf("retry after recovery failed: %+v", res)
	}
}
