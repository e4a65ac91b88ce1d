package search

import (
	"strings"

	"github.com/channelgrid/server/internal/models"
)

// ComposeFilters appends the orthogonal equality filters (status, country
// code, state code) to the builder's predicate. They apply the same way for
// every search type and always before the distance HAVING clause. Unknown
// status values are dropped rather than rejected.
func ComposeFilters(c Conditions, opts Options) Conditions {
	var (
		preds []string
		args  []any
	)

	if opts.Status != "" && models.IsValidStatus(opts.Status) {
		preds = append(preds, "status = ?")
		args = append(args, opts.Status)
	}
	if opts.Country != "" {
		preds = append(preds, "country_code = ?")
		args = append(args, strings.ToUpper(opts.Country))
	}
	if opts.State != "" {
		preds = append(preds, "state_code = ?")
		args = append(args, strings.ToUpper(opts.State))
	}

	if len(preds) == 0 {
		return c
	}

	filter := strings.Join(preds, " AND ")
	if c.Where == "" {
		c.Where = filter
	} else {
		c.Where = "(" + c.Where + ") AND " + filter
	}
	c.Args = append(c.Args, args...)
	return c
}
