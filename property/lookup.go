package property

import (
	"context"
	"strings"
)

// Searcher abstracts the broad-fetch query for the lookup service.
type Searcher interface {
	Search(ctx context.Context, criteria SearchCriteria) ([]Record, error)
}

// LookupService implements the strict-match lookup: an over-inclusive store
// query narrowed by an in-memory re-check of the text criteria.
type LookupService struct {
	repo Searcher
}

// NewLookupService builds a LookupService using the provided repository.
func NewLookupService(repo Searcher) *LookupService {
	return &LookupService{repo: repo}
}

// Lookup returns every fetched record that satisfies all set criteria,
// preserving the store's newest-first order. The result is never larger than
// MaxResults.
func (s *LookupService) Lookup(ctx context.Context, criteria SearchCriteria) ([]Record, error) {
	records, err := s.repo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	matched := make([]Record, 0, len(records))
	for _, rec := range records {
		if matchesStrict(rec, criteria) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// matchesStrict re-applies the text criteria as case-insensitive substring
// checks. The broad query's OR over location columns can admit rows that only
// match one of several combined predicates, so each is re-verified here.
func matchesStrict(rec Record, criteria SearchCriteria) bool {
	if criteria.Location != nil {
		loc := strings.ToLower(*criteria.Location)
		if !strings.Contains(strings.ToLower(rec.City), loc) &&
			!strings.Contains(strings.ToLower(rec.State), loc) &&
			!strings.Contains(strings.ToLower(rec.Address), loc) {
			return false
		}
	}
	if criteria.PropertyType != nil {
		if !strings.Contains(strings.ToLower(rec.PropertyType), strings.ToLower(*criteria.PropertyType)) {
			return false
		}
	}
	if criteria.ListingType != nil {
		if !strings.Contains(strings.ToLower(string(rec.ListingType)), strings.ToLower(string(*criteria.ListingType))) {
			return false
		}
	}
	return true
}
