package search

// Context is the caller trust tier. It bounds how much data a single
// search may pull; derivation from the request (API key, admin token)
// happens in middleware, outside the engine.
type Context string

const (
	ContextEndUser  Context = "end_user"
	ContextInternal Context = "internal"
	ContextAdmin    Context = "admin"
)

// Options carries everything besides the query string that shapes a search.
// Zero values mean "use defaults"; out-of-range values are clamped or
// normalized, never rejected.
type Options struct {
	Context Context `json:"context"`
	Limit   int     `json:"limit"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
	Sort    string  `json:"sort"`
	Status  string  `json:"status"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	// Radius in miles, zip searches only. Overrides any ",N" query suffix.
	Radius int  `json:"radius"`
	Debug  bool `json:"debug"`
}

// Sort keys accepted by the engine. Anything else falls back to SortCity.
const (
	SortDistance   = "distance"
	SortRelevance  = "relevance"
	SortPopulation = "population"
	SortCity       = "city_name"
	SortState      = "state_name"
	SortCountry    = "country_name"
	SortDomain     = "custom_domain"
	SortStatus     = "status"
)

const (
	defaultPerPage = 20
	defaultSort    = SortRelevance
)

// withDefaults fills unset fields. Clamping to tier ceilings is the
// limiter's job and happens afterwards.
func (o Options) withDefaults() Options {
	if o.Context == "" {
		o.Context = ContextEndUser
	}
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PerPage < 1 {
		o.PerPage = defaultPerPage
	}
	if o.Sort == "" {
		o.Sort = defaultSort
	}
	return o
}
