package search

// TierLimits is the static ceiling set for one trust tier. Values are
// upper bounds only; requests below a ceiling pass through unchanged.
type TierLimits struct {
	MaxChannels int
	MaxPerPage  int
	MaxRadius   int
}

var tierLimits = map[Context]TierLimits{
	ContextEndUser:  {MaxChannels: 500, MaxPerPage: 50, MaxRadius: MaxRadiusMiles},
	ContextInternal: {MaxChannels: 2000, MaxPerPage: 200, MaxRadius: MaxRadiusMiles},
	ContextAdmin:    {MaxChannels: 10000, MaxPerPage: 500, MaxRadius: MaxRadiusMiles},
}

// LimitsFor returns the ceilings for a tier; unknown tiers get end-user
// limits.
func LimitsFor(c Context) TierLimits {
	if l, ok := tierLimits[c]; ok {
		return l
	}
	return tierLimits[ContextEndUser]
}

// ClampOptions normalizes defaults and bounds limit, per-page and radius to
// the caller tier's ceilings. Values are clamped, never raised, and nothing
// here ever fails: out-of-range input is a normalization case, not an error.
func ClampOptions(opts Options) Options {
	opts = opts.withDefaults()
	limits := LimitsFor(opts.Context)

	if opts.Limit <= 0 || opts.Limit > limits.MaxChannels {
		opts.Limit = limits.MaxChannels
	}
	if opts.PerPage > limits.MaxPerPage {
		opts.PerPage = limits.MaxPerPage
	}
	if opts.PerPage > opts.Limit {
		opts.PerPage = opts.Limit
	}
	if opts.Radius > limits.MaxRadius {
		opts.Radius = limits.MaxRadius
	}
	if opts.Radius < 0 {
		opts.Radius = 0
	}
	return opts
}
