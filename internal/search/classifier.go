package search

import (
	"regexp"
	"strings"
)

// SearchType is the classified intent of a raw query string. Exactly one
// type is assigned per query; classification never fails.
type SearchType string

const (
	TypeAll                SearchType = "all"
	TypeZipCode            SearchType = "zip_code"
	TypeDomain             SearchType = "domain"
	TypeDomainExtension    SearchType = "domain_extension"
	TypeBulkDomain         SearchType = "bulk_domain"
	TypeMultiWordTwo       SearchType = "multi_word_two"
	TypeMultiWordThreePlus SearchType = "multi_word_three_plus"
	TypeText               SearchType = "text"
)

var (
	// 4-6 digits, optionally followed by ",N" / ".N" / "-N" radius suffix.
	zipPattern = regexp.MustCompile(`^\d{4,6}([-,.]\s*\d+)?$`)
	// Bare domain: label(s) plus a 2-6 letter TLD.
	domainPattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)
	// Bare extension like ".com".
	extensionPattern = regexp.MustCompile(`(?i)^\.[a-z]{2,6}$`)
	// Token separator for bulk-domain lists.
	bulkSplitPattern = regexp.MustCompile(`[,\s]+`)
)

// Classify assigns a SearchType to a raw query string. Precedence follows
// the first matching rule: empty, zip, domain, extension, bulk domain,
// word count, plain text.
func Classify(query string) SearchType {
	q := strings.TrimSpace(query)

	if q == "" {
		return TypeAll
	}
	if zipPattern.MatchString(q) {
		return TypeZipCode
	}
	if domainPattern.MatchString(q) {
		return TypeDomain
	}
	if extensionPattern.MatchString(q) {
		return TypeDomainExtension
	}
	if len(splitDomains(q)) >= 2 {
		return TypeBulkDomain
	}

	words := strings.Fields(q)
	switch {
	case len(words) == 2:
		return TypeMultiWordTwo
	case len(words) >= 3:
		return TypeMultiWordThreePlus
	}
	return TypeText
}

// splitDomains splits q on commas/whitespace and keeps only domain-shaped
// tokens. Used both by classification and by the bulk-domain builder.
func splitDomains(q string) []string {
	var domains []string
	for _, tok := range bulkSplitPattern.Split(q, -1) {
		if tok != "" && domainPattern.MatchString(tok) {
			domains = append(domains, tok)
		}
	}
	return domains
}
