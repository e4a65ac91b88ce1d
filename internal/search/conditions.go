package search

import (
	"context"
	"fmt"
	"strings"
)

// Conditions is the structured output of a per-type builder: a WHERE
// fragment with positional args, an optional relevance/distance select
// expression, and an optional post-aggregation filter. Raw strings never
// contain interpolated user input; everything binds through placeholders.
type Conditions struct {
	Type SearchType

	Where string
	Args  []any

	// Score is selected AS relevance (or AS distance for zip searches).
	// Empty means the fast unscored path.
	Score     string
	ScoreArgs []any

	// Having filters on the computed distance column and must be applied
	// after the select expression is evaluated.
	Having     string
	HavingArgs []any

	SortByDistance bool

	// Fallback names the type this builder degraded to, e.g. a bulk
	// domain query with no valid domain tokens becomes a text search.
	Fallback SearchType
}

// HasScore reports whether the query computes a relevance/distance column.
func (c Conditions) HasScore() bool {
	return c.Score != ""
}

// Predicate restricting results to records usable as directory entries:
// a slug, a city and a full coordinate pair.
const geoCompleteWhere = "slug IS NOT NULL AND slug <> '' AND city_name IS NOT NULL AND city_name <> '' AND latitude IS NOT NULL AND longitude IS NOT NULL"

// Haversine distance in statute miles from a bound point to the channel row.
const haversineExpr = "(3959 * acos(cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) + sin(radians(?)) * sin(radians(latitude))))"

// BuildConditions dispatches to the per-type builder. Only the zip builder
// can fail (unresolvable code), and only it consults the resolver.
func BuildConditions(ctx context.Context, resolver ZipResolver, st SearchType, query string, radius int) (Conditions, error) {
	switch st {
	case TypeAll:
		return buildAll(), nil
	case TypeZipCode:
		return buildZipCode(ctx, resolver, query, radius)
	case TypeDomain:
		return buildDomain(query), nil
	case TypeDomainExtension:
		return buildDomainExtension(query), nil
	case TypeBulkDomain:
		return buildBulkDomain(query), nil
	case TypeMultiWordTwo:
		words := strings.Fields(query)
		return buildMultiWordTwo(words[0], words[1]), nil
	case TypeMultiWordThreePlus:
		return buildMultiWordThreePlus(strings.Fields(query)), nil
	default:
		return buildText(query), nil
	}
}

func contains(s string) string { return "%" + strings.ToLower(s) + "%" }
func prefix(s string) string   { return strings.ToLower(s) + "%" }
func suffix(s string) string   { return "%" + strings.ToLower(s) }
func exact(s string) string    { return strings.ToLower(s) }

// buildAll is the unscored fast path behind the empty query: every
// geo-complete channel, no relevance computation.
func buildAll() Conditions {
	return Conditions{
		Type:  TypeAll,
		Where: geoCompleteWhere,
	}
}

func buildZipCode(ctx context.Context, resolver ZipResolver, query string, radius int) (Conditions, error) {
	zip, parsedRadius := ParseZipQuery(query)
	if radius > 0 {
		parsedRadius = ClampRadius(radius)
	}

	lat, lng, err := resolver.Resolve(ctx, zip)
	if err != nil {
		return Conditions{}, geoError(zip, err)
	}

	return Conditions{
		Type:           TypeZipCode,
		Where:          geoCompleteWhere,
		Score:          haversineExpr,
		ScoreArgs:      []any{lat, lng, lat},
		Having:         "distance <= ?",
		HavingArgs:     []any{float64(parsedRadius)},
		SortByDistance: true,
	}, nil
}

func buildDomain(query string) Conditions {
	score := `CASE
		WHEN LOWER(custom_domain) = ? THEN 100
		WHEN LOWER(custom_domain) LIKE ? THEN 90
		WHEN LOWER(custom_domain) LIKE ? THEN 80
		WHEN LOWER(custom_domain) LIKE ? THEN 70
		ELSE 0 END`
	return Conditions{
		Type:      TypeDomain,
		Where:     "LOWER(custom_domain) LIKE ?",
		Args:      []any{contains(query)},
		Score:     score,
		ScoreArgs: []any{exact(query), prefix(query), suffix(query), contains(query)},
	}
}

func buildDomainExtension(query string) Conditions {
	return Conditions{
		Type:  TypeDomainExtension,
		Where: "LOWER(custom_domain) LIKE ?",
		Args:  []any{suffix(query)},
	}
}

// buildBulkDomain scores listed domains in input order, 100 for the first
// and 5 less per subsequent domain. With no valid domain tokens the query
// degrades to a plain text search; the Fallback field records that.
func buildBulkDomain(query string) Conditions {
	domains := splitDomains(query)
	if len(domains) == 0 {
		c := buildText(query)
		c.Type = TypeBulkDomain
		c.Fallback = TypeText
		return c
	}

	var (
		preds     []string
		args      []any
		arms      []string
		scoreArgs []any
	)
	for i, d := range domains {
		preds = append(preds, "LOWER(custom_domain) LIKE ?")
		args = append(args, contains(d))
		arms = append(arms, fmt.Sprintf("WHEN LOWER(custom_domain) LIKE ? THEN %d", 100-5*i))
		scoreArgs = append(scoreArgs, contains(d))
	}

	return Conditions{
		Type:      TypeBulkDomain,
		Where:     "(" + strings.Join(preds, " OR ") + ")",
		Args:      args,
		Score:     "CASE " + strings.Join(arms, " ") + " ELSE 0 END",
		ScoreArgs: scoreArgs,
	}
}

// buildMultiWordTwo handles the "City State" / "City Country" shape. The
// predicate casts a wide net (pair matches in both orders, the words joined
// with and without a space, individual words); the ladder then ranks pair
// matches far above single-word hits.
func buildMultiWordTwo(w1, w2 string) Conditions {
	combined := w1 + " " + w2
	joined := w1 + w2

	where := `((LOWER(city_name) LIKE ? AND LOWER(state_name) LIKE ?)
		OR (LOWER(city_name) LIKE ? AND LOWER(state_name) LIKE ?)
		OR (LOWER(city_name) LIKE ? AND LOWER(country_name) LIKE ?)
		OR (LOWER(city_name) LIKE ? AND LOWER(country_name) LIKE ?)
		OR LOWER(city_name) LIKE ? OR LOWER(state_name) LIKE ?
		OR LOWER(city_name) LIKE ? OR LOWER(state_name) LIKE ?
		OR LOWER(city_name) LIKE ? OR LOWER(city_name) LIKE ?
		OR LOWER(state_name) LIKE ? OR LOWER(state_name) LIKE ?
		OR LOWER(country_name) LIKE ? OR LOWER(country_name) LIKE ?
		OR LOWER(custom_domain) LIKE ? OR LOWER(custom_domain) LIKE ?
		OR LOWER(title) LIKE ? OR LOWER(title) LIKE ?)`
	args := []any{
		contains(w1), contains(w2),
		contains(w2), contains(w1),
		contains(w1), contains(w2),
		contains(w2), contains(w1),
		contains(combined), contains(combined),
		contains(joined), contains(joined),
		contains(w1), contains(w2),
		contains(w1), contains(w2),
		contains(w1), contains(w2),
		contains(w1), contains(w2),
		contains(w1), contains(w2),
	}

	score := `CASE
		WHEN LOWER(city_name) = ? THEN 110
		WHEN LOWER(state_name) = ? THEN 105
		WHEN LOWER(city_name) = ? THEN 102
		WHEN LOWER(state_name) = ? THEN 101
		WHEN LOWER(city_name) = ? AND LOWER(state_name) = ? THEN 100
		WHEN LOWER(city_name) = ? AND LOWER(state_name) = ? THEN 95
		WHEN LOWER(city_name) = ? AND LOWER(country_name) = ? THEN 90
		WHEN LOWER(city_name) = ? AND LOWER(country_name) = ? THEN 85
		WHEN LOWER(city_name) = ? THEN 50
		WHEN LOWER(city_name) = ? THEN 45
		WHEN LOWER(state_name) = ? THEN 40
		WHEN LOWER(state_name) = ? THEN 35
		WHEN LOWER(country_name) = ? THEN 30
		WHEN LOWER(country_name) = ? THEN 25
		WHEN LOWER(title) LIKE ? THEN 20
		WHEN LOWER(description) LIKE ? THEN 15
		ELSE 10 END`
	scoreArgs := []any{
		exact(combined),
		exact(combined),
		exact(joined),
		exact(joined),
		exact(w1), exact(w2),
		exact(w2), exact(w1),
		exact(w1), exact(w2),
		exact(w2), exact(w1),
		exact(w1),
		exact(w2),
		exact(w1),
		exact(w2),
		exact(w1),
		exact(w2),
		contains(combined),
		contains(combined),
	}

	return Conditions{
		Type:      TypeMultiWordTwo,
		Where:     where,
		Args:      args,
		Score:     score,
		ScoreArgs: scoreArgs,
	}
}

// buildMultiWordThreePlus requires every word to appear somewhere in the
// record. Scoring is deliberately coarse: the first word carrying the city
// or state is the only signal.
func buildMultiWordThreePlus(words []string) Conditions {
	var (
		groups []string
		args   []any
	)
	for _, w := range words {
		groups = append(groups, `(LOWER(city_name) LIKE ? OR LOWER(state_name) LIKE ?
			OR LOWER(country_name) LIKE ? OR LOWER(custom_domain) LIKE ?
			OR LOWER(title) LIKE ? OR LOWER(description) LIKE ?)`)
		p := contains(w)
		args = append(args, p, p, p, p, p, p)
	}

	first := words[0]
	score := `CASE
		WHEN LOWER(city_name) LIKE ? THEN 50
		WHEN LOWER(state_name) LIKE ? THEN 30
		ELSE 10 END`

	return Conditions{
		Type:      TypeMultiWordThreePlus,
		Where:     "(" + strings.Join(groups, " AND ") + ")",
		Args:      args,
		Score:     score,
		ScoreArgs: []any{contains(first), contains(first)},
	}
}

func buildText(query string) Conditions {
	where := `(LOWER(city_name) LIKE ? OR LOWER(state_name) LIKE ?
		OR LOWER(country_name) LIKE ? OR LOWER(custom_domain) LIKE ?
		OR LOWER(slug) LIKE ? OR LOWER(title) LIKE ? OR LOWER(description) LIKE ?)`
	p := contains(query)
	args := []any{p, p, p, p, p, p, p}

	score := `CASE
		WHEN LOWER(city_name) = ? THEN 100
		WHEN LOWER(city_name) LIKE ? THEN 90
		WHEN LOWER(state_name) = ? THEN 80
		WHEN LOWER(state_name) LIKE ? THEN 70
		WHEN LOWER(country_name) = ? THEN 60
		WHEN LOWER(city_name) LIKE ? THEN 50
		WHEN LOWER(state_name) LIKE ? THEN 40
		WHEN LOWER(country_name) LIKE ? THEN 30
		WHEN LOWER(custom_domain) LIKE ? THEN 25
		WHEN LOWER(title) LIKE ? THEN 20
		WHEN LOWER(slug) LIKE ? THEN 15
		WHEN LOWER(description) LIKE ? THEN 10
		ELSE 0 END`
	scoreArgs := []any{
		exact(query),
		prefix(query),
		exact(query),
		prefix(query),
		exact(query),
		contains(query),
		contains(query),
		contains(query),
		contains(query),
		contains(query),
		contains(query),
		contains(query),
	}

	return Conditions{
		Type:      TypeText,
		Where:     where,
		Args:      args,
		Score:     score,
		ScoreArgs: scoreArgs,
	}
}
