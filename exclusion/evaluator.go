package exclusion

import (
	"gitlab.com/robotk/robotk"
)

// Evaluator answers permission queries against one fetched document.
// The document must be fully populated before the first query; the
// callback variants exist for API symmetry with the fetch path and
// invoke their callback once the answer is known.
type Evaluator struct {
	doc *robotk.Document
}

// NewEvaluator over a populated document
func NewEvaluator(doc *robotk.Document) *Evaluator {
	return &Evaluator{doc: doc}
}

// Document being queried
func (ev *Evaluator) Document() *robotk.Document {
	return ev.doc
}

// CanFetch reports whether the agent may fetch the path. Fetch-time
// overrides win outright; otherwise the first entry in document order
// that applies to the agent decides, then the default entry, and an
// agent the document never mentions is granted access.
func (ev *Evaluator) CanFetch(agent, path string) bool {
	allowed, _ := ev.decide(agent, path)
	return allowed
}

// CanFetchAsync answers like CanFetch and reports which mechanism
// decided through the callback.
func (ev *Evaluator) CanFetchAsync(agent, path string, cb func(allowed bool, path string, d robotk.Decision)) {
	allowed, d := ev.decide(agent, path)
	cb(allowed, path, d)
}

func (ev *Evaluator) decide(agent, path string) (bool, robotk.Decision) {
	switch ev.doc.Override {
	case robotk.DisallowAll:
		return false, robotk.Decision{Type: robotk.ByStatusCode, StatusCode: ev.doc.StatusCode}
	case robotk.AllowAll:
		return true, robotk.Decision{Type: robotk.ByStatusCode, StatusCode: ev.doc.StatusCode}
	}
	if e := ev.match(agent); e != nil {
		return e.Allowance(path), robotk.Decision{Type: robotk.ByEntry, Entry: e}
	}
	if ev.doc.Default != nil {
		return ev.doc.Default.Allowance(path), robotk.Decision{Type: robotk.ByDefaultEntry, Entry: ev.doc.Default}
	}
	return true, robotk.Decision{Type: robotk.ByNoRule}
}

// match returns the first entry applying to the agent, document order
func (ev *Evaluator) match(agent string) *robotk.Entry {
	for _, e := range ev.doc.Entries {
		if e.AppliesTo(agent) {
			return e
		}
	}
	return nil
}

// CrawlDelay reports the declared delay in seconds for the agent,
// falling back to the default entry. The second result is false when
// neither declares one.
func (ev *Evaluator) CrawlDelay(agent string) (float64, bool) {
	if e := ev.match(agent); e != nil && e.CrawlDelay != nil {
		return *e.CrawlDelay, true
	}
	if ev.doc.Default != nil && ev.doc.Default.CrawlDelay != nil {
		return *ev.doc.Default.CrawlDelay, true
	}
	return 0, false
}

// DisallowedPaths collects the disallow paths of every entry applying
// to the agent, in document order, then the default entry's.
func (ev *Evaluator) DisallowedPaths(agent string) []string {
	paths := make([]string, 0)
	for _, e := range ev.doc.Entries {
		if e.AppliesTo(agent) {
			paths = append(paths, e.DisallowedPaths()...)
		}
	}
	if ev.doc.Default != nil {
		paths = append(paths, ev.doc.Default.DisallowedPaths()...)
	}
	return paths
}

// Sitemaps declared by the document, encounter order
func (ev *Evaluator) Sitemaps() []string {
	return append([]string(nil), ev.doc.Sitemaps...)
}

// SitemapURLs hands the sitemap list to the callback
func (ev *Evaluator) SitemapURLs(cb func(urls []string)) {
	cb(ev.Sitemaps())
}
