package scrape

import (
	"context"
	"log"
	"strings"

	"sitefinder/internal/scrape/util"
)

// SiteChecker is the part of Validator the resolver depends on.
type SiteChecker interface {
	IsOfficial(ctx context.Context, rawURL, company string) bool
}

// Resolver turns a sanitized company name into its official website.
type Resolver struct {
	Search      Searcher
	Validate    SiteChecker
	ResultCount int
	SkipDomains []string
}

func NewResolver(s Searcher, v SiteChecker, resultCount int, skipDomains []string) *Resolver {
	if resultCount <= 0 {
		resultCount = DefaultResultCount
	}
	return &Resolver{Search: s, Validate: v, ResultCount: resultCount, SkipDomains: skipDomains}
}

func Query(company string) string {
	return company + " official site"
}

// Resolve searches once and returns the first candidate that validates.
// Search failures are logged and treated as "no candidates".
func (r *Resolver) Resolve(ctx context.Context, company string) (string, bool) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", false
	}

	query := Query(company)
	log.Printf("[resolve] searching query=%q", query)

	candidates, err := r.Search.Search(ctx, query, r.ResultCount)
	if err != nil {
		log.Printf("[resolve] search failed company=%q err=%v", company, err)
		return "", false
	}

	for _, u := range candidates {
		if ctx.Err() != nil {
			return "", false
		}
		if len(r.SkipDomains) > 0 && util.HostMatches(util.HostOf(u), r.SkipDomains) {
			continue
		}
		log.Printf("[resolve] checking company=%q url=%s", company, u)
		if r.Validate.IsOfficial(ctx, u, company) {
			log.Printf("[resolve] matched company=%q url=%s", company, u)
			return u, true
		}
	}
	return "", false
}
