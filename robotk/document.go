package robotk

import "net/url"

// Override forces a permission verdict ahead of any parsed rules
type Override int8

const (
	// OverrideNone leaves decisions to the parsed entries
	OverrideNone Override = iota
	// DisallowAll denies every path (401/403 on fetch)
	DisallowAll
	// AllowAll grants every path (other >=400, exhausted redirects)
	AllowAll
)

// DefaultRedirects a fetch will follow before forcing AllowAll
const DefaultRedirects = 5

// Document is the parsed robots exclusion file for one target URL.
// It is built by a single fetch/parse pass and must be treated as
// read-only afterwards; mutating it while a fetch is in flight is
// caller error.
type Document struct {
	URL           *url.URL
	Entries       []*Entry // document order, excludes the default group
	Default       *Entry   // first group naming '*', nil if none
	Sitemaps      []string
	StatusCode    int // -1 until a response was seen
	Override      Override
	RedirectsLeft int
	LastErr       error // transport failure, if any
}

// NewDocument for a target URL with a redirect budget
func NewDocument(u *url.URL, redirects int) *Document {
	return &Document{
		URL:           u,
		Entries:       make([]*Entry, 0),
		Sitemaps:      make([]string, 0),
		StatusCode:    -1,
		RedirectsLeft: redirects,
	}
}

// Reset drops parsed state while keeping the URL, used when a
// redirect points the same document at a new location.
func (d *Document) Reset() {
	d.Entries = make([]*Entry, 0)
	d.Default = nil
	d.Sitemaps = make([]string, 0)
	d.StatusCode = -1
	d.Override = OverrideNone
	d.LastErr = nil
}

// Commit files a finished agent group into the document. The first
// wildcard group becomes the default entry; later wildcard groups are
// discarded whole (first-default-wins). Empty groups are dropped.
func (d *Document) Commit(e *Entry) {
	if e == nil || len(e.Agents) == 0 {
		return
	}
	if e.IsDefault() {
		if d.Default == nil {
			d.Default = e
		}
		return
	}
	d.Entries = append(d.Entries, e)
}

// AddSitemap records a sitemap URL in encounter order
func (d *Document) AddSitemap(u string) {
	d.Sitemaps = append(d.Sitemaps, u)
}
