package exclusion

import (
	"context"

	"gitlab.com/robotk/robotk"
)

// Robots couples a fetcher with the query surface so callers hold a
// single object per target site. Queries before a fetch, or after a
// failed one, behave fail-open: an unobtainable document grants
// access.
type Robots struct {
	fetcher robotk.Fetcher
	ev      *Evaluator
}

// NewRobots around a fetcher
func NewRobots(f robotk.Fetcher) *Robots {
	return &Robots{
		fetcher: f,
		ev:      NewEvaluator(robotk.NewDocument(nil, robotk.DefaultRedirects)),
	}
}

// FromDocument wraps an already-populated document, e.g. one rebuilt
// from a snapshot.
func FromDocument(doc *robotk.Document) *Robots {
	return &Robots{ev: NewEvaluator(doc)}
}

// Fetch the robots file for rawurl and install it as the queried
// document. Not safe to call concurrently with queries.
func (r *Robots) Fetch(ctx context.Context, rawurl string) bool {
	doc, ok := r.fetcher.Fetch(ctx, rawurl)
	r.ev = NewEvaluator(doc)
	return ok
}

// Document currently backing queries
func (r *Robots) Document() *robotk.Document {
	return r.ev.Document()
}

// CanFetch see Evaluator.CanFetch
func (r *Robots) CanFetch(agent, path string) bool {
	return r.ev.CanFetch(agent, path)
}

// CanFetchAsync see Evaluator.CanFetchAsync
func (r *Robots) CanFetchAsync(agent, path string, cb func(allowed bool, path string, d robotk.Decision)) {
	r.ev.CanFetchAsync(agent, path, cb)
}

// CrawlDelay see Evaluator.CrawlDelay
func (r *Robots) CrawlDelay(agent string) (float64, bool) {
	return r.ev.CrawlDelay(agent)
}

// DisallowedPaths see Evaluator.DisallowedPaths
func (r *Robots) DisallowedPaths(agent string) []string {
	return r.ev.DisallowedPaths(agent)
}

// Sitemaps see Evaluator.Sitemaps
func (r *Robots) Sitemaps() []string {
	return r.ev.Sitemaps()
}

// SitemapURLs see Evaluator.SitemapURLs
func (r *Robots) SitemapURLs(cb func(urls []string)) {
	r.ev.SitemapURLs(cb)
}
