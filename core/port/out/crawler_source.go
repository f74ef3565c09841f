package out

import (
	"context"

	"crawler_server/core/domain"
)

// Source defines the interface for one listing-site adapter
type Source interface {
	// ID returns the stable source identifier used in fingerprints.
	ID() domain.SourceID

	// Fetch returns every raw campaign currently listed on the source.
	// A returned error aborts only this source; the run continues.
	Fetch(ctx context.Context) ([]*domain.Campaign, error)
}

// DetailEnricher reads a campaign's detail page for the fields the listing
// pages omit.
type DetailEnricher interface {
	// ReviewPeriod returns the review-submission window in days, or nil when
	// the page does not state one.
	ReviewPeriod(ctx context.Context, url string, source domain.SourceID) (*int, error)

	// Supports reports whether the enricher knows the source's page layout.
	Supports(source domain.SourceID) bool
}
