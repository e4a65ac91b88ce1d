package search

// ResolveSort maps a requested sort key plus the classified type to a
// deterministic ORDER BY clause. Keys are mapped to fixed strings; caller
// input never reaches the clause. Ties break on city_name ascending except
// for distance (slug, a stable unique key) and country (state, then city).
func ResolveSort(key string, c Conditions) string {
	// Distance sorting wins whenever the builder computed one and the
	// caller kept the default relevance ordering.
	if c.SortByDistance && (key == SortRelevance || key == SortDistance) {
		return "distance ASC, slug ASC"
	}

	switch key {
	case SortDistance:
		if c.SortByDistance {
			return "distance ASC, slug ASC"
		}
		// No distance column without a geo search.
		return "city_name ASC, state_name ASC"
	case SortRelevance:
		if !c.HasScore() {
			// Unscored fast path has no relevance column.
			return "city_name ASC, state_name ASC"
		}
		return "relevance DESC, city_name ASC"
	case SortPopulation:
		return "population DESC, city_name ASC"
	case SortCity:
		return "city_name ASC, state_name ASC"
	case SortState:
		return "state_name ASC, city_name ASC"
	case SortCountry:
		return "country_name ASC, state_name ASC, city_name ASC"
	case SortDomain:
		return "custom_domain ASC, city_name ASC"
	case SortStatus:
		return "status ASC, city_name ASC"
	default:
		return "city_name ASC, state_name ASC"
	}
}
