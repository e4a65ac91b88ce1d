package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/channelgrid/server/internal/models"
)

// Engine ties classification, condition building, filtering, sorting,
// caching and pagination into one search call. It is stateless apart from
// the bounded result cache; one instance serves arbitrary concurrent
// callers.
type Engine struct {
	store    ChannelStore
	resolver ZipResolver
	cache    *ResultCache
	log      *zap.SugaredLogger
}

// NewEngine wires an engine from its collaborators. Both the store and
// the resolver are injected; the engine never reaches for global state.
func NewEngine(store ChannelStore, resolver ZipResolver, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		store:    store,
		resolver: resolver,
		cache:    NewResultCache(),
		log:      log,
	}
}

// NewGormEngine builds an engine backed by GORM for both channel queries
// and zip resolution.
func NewGormEngine(db *gorm.DB, log *zap.SugaredLogger) *Engine {
	return NewEngine(NewGormChannelStore(db), NewGormZipResolver(db), log)
}

// Search runs one query end to end and always returns a well-formed
// envelope; failures surface as Success=false, never as an error value.
func (e *Engine) Search(ctx context.Context, query string, opts Options) *Result {
	query = strings.TrimSpace(query)
	opts = ClampOptions(opts)

	key := CacheKey(query, opts)
	if !opts.Debug {
		if cached, ok := e.cache.Get(key); ok {
			searchCacheHits.Inc()
			return cached
		}
		searchCacheMisses.Inc()
	}

	start := time.Now()
	st := Classify(query)

	conds, err := BuildConditions(ctx, e.resolver, st, query, opts.Radius)
	if err != nil {
		return e.failure(st, opts, err)
	}
	conds = ComposeFilters(conds, opts)
	order := ResolveSort(opts.Sort, conds)

	channels, err := e.store.Search(ctx, conds, order, opts.PerPage, Offset(opts.Page, opts.PerPage))
	if err != nil {
		return e.failure(st, opts, datastoreError(err))
	}
	total, err := e.store.Count(ctx, conds)
	if err != nil {
		return e.failure(st, opts, datastoreError(err))
	}
	if total > int64(opts.Limit) {
		total = int64(opts.Limit)
	}

	pagination := Paginate(opts.Page, opts.PerPage, total)
	filters := appliedFilters(opts)
	if conds.SortByDistance && (opts.Sort == SortRelevance || opts.Sort == SortDistance) {
		filters.Sort = SortDistance
	}
	result := &Result{
		Success:    true,
		Channels:   channels,
		Pagination: &pagination,
		Filters:    filters,
	}
	if result.Channels == nil {
		result.Channels = []models.Channel{}
	}
	if opts.Debug {
		result.Debug = &DebugInfo{
			SearchType: st,
			Fallback:   conds.Fallback,
			TotalFound: total,
			Radius:     zipRadius(conds),
		}
	}

	searchesTotal.WithLabelValues(string(st), "success").Inc()
	searchDuration.WithLabelValues(string(st)).Observe(time.Since(start).Seconds())

	if !opts.Debug {
		e.cache.Put(key, result)
	}
	return result
}

// InvalidateCache drops all cached results; called after data mutations.
func (e *Engine) InvalidateCache() {
	e.cache.Clear()
}

// CacheSize reports the number of cached results.
func (e *Engine) CacheSize() int {
	return e.cache.Len()
}

// failure converts a typed search error into the failure envelope. Geo
// resolution failures keep their message; datastore failures stay generic
// unless debug is on. Nothing is cached on the failure path.
func (e *Engine) failure(st SearchType, opts Options, err error) *Result {
	message := "search failed"
	var serr *Error
	if errors.As(err, &serr) {
		switch serr.Kind {
		case ErrKindGeoResolution:
			message = serr.Message
		case ErrKindDatastore:
			message = serr.Message
			e.log.Errorw("search datastore failure", "type", st, "error", serr.Cause)
		}
	} else {
		e.log.Errorw("search failure", "type", st, "error", err)
	}

	searchesTotal.WithLabelValues(string(st), "error").Inc()

	result := &Result{
		Success:  false,
		Channels: []models.Channel{},
		Filters:  appliedFilters(opts),
		Message:  message,
	}
	if opts.Debug {
		result.Debug = &DebugInfo{
			SearchType: st,
			Error:      err.Error(),
		}
	}
	return result
}

func appliedFilters(opts Options) AppliedFilters {
	status := opts.Status
	if !models.IsValidStatus(status) {
		status = ""
	}
	return AppliedFilters{
		Status:  status,
		Country: strings.ToUpper(opts.Country),
		State:   strings.ToUpper(opts.State),
		Sort:    opts.Sort,
	}
}

func zipRadius(c Conditions) int {
	if !c.SortByDistance || len(c.HavingArgs) == 0 {
		return 0
	}
	if r, ok := c.HavingArgs[0].(float64); ok {
		return int(r)
	}
	return 0
}
