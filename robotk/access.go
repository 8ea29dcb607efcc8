package robotk

import "context"

// DecisionType names the mechanism that produced a permission answer
type DecisionType int8

const (
	// ByStatusCode means a fetch-time override decided (401/403/5xx)
	ByStatusCode DecisionType = iota + 1
	// ByEntry means the first matching named agent group decided
	ByEntry
	// ByDefaultEntry means the wildcard group decided
	ByDefaultEntry
	// ByNoRule means nothing matched and access defaulted to granted
	ByNoRule
)

// String for log fields
func (d DecisionType) String() string {
	switch d {
	case ByStatusCode:
		return "statusCode"
	case ByEntry:
		return "entry"
	case ByDefaultEntry:
		return "defaultEntry"
	case ByNoRule:
		return "noRule"
	}
	return "unknown"
}

// Decision reports how a CanFetch answer was reached
type Decision struct {
	Type       DecisionType
	StatusCode int    // set for ByStatusCode
	Entry      *Entry // set for ByEntry / ByDefaultEntry
}

// Evaluator answers permission queries against a fetched document
type Evaluator interface {
	CanFetch(agent, path string) bool
	CanFetchAsync(agent, path string, cb func(allowed bool, path string, d Decision))
	CrawlDelay(agent string) (float64, bool)
	DisallowedPaths(agent string) []string
	Sitemaps() []string
	SitemapURLs(cb func(urls []string))
}

// Fetcher turns a URL into a populated document. The bool result is
// false when the fetch ended in a policy override or transport
// failure; the document is still usable for queries either way.
type Fetcher interface {
	Fetch(ctx context.Context, rawurl string) (*Document, bool)
}
