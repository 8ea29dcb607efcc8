package robotk

import "net/url"

// Snapshot structs are the well-typed wire shape of a parsed
// document. Rebuilding goes through FromSnapshot rather than a
// generic deep copy so the schema stays explicit.

// RuleSnapshot mirrors Rule
type RuleSnapshot struct {
	Path  string `msgpack:"path"`
	Allow bool   `msgpack:"allow"`
}

// EntrySnapshot mirrors Entry
type EntrySnapshot struct {
	Agents     []string       `msgpack:"agents"`
	Rules      []RuleSnapshot `msgpack:"rules"`
	CrawlDelay *float64       `msgpack:"crawl_delay,omitempty"`
}

// DocumentSnapshot mirrors Document minus the transport error
type DocumentSnapshot struct {
	URL           string          `msgpack:"url"`
	Entries       []EntrySnapshot `msgpack:"entries"`
	Default       *EntrySnapshot  `msgpack:"default,omitempty"`
	Sitemaps      []string        `msgpack:"sitemaps"`
	StatusCode    int             `msgpack:"status_code"`
	Override      int8            `msgpack:"override"`
	RedirectsLeft int             `msgpack:"redirects_left"`
}

// Snapshot captures the document for serialization
func (d *Document) Snapshot() *DocumentSnapshot {
	snap := &DocumentSnapshot{
		Entries:       make([]EntrySnapshot, 0, len(d.Entries)),
		Sitemaps:      append([]string(nil), d.Sitemaps...),
		StatusCode:    d.StatusCode,
		Override:      int8(d.Override),
		RedirectsLeft: d.RedirectsLeft,
	}
	if d.URL != nil {
		snap.URL = d.URL.String()
	}
	for _, e := range d.Entries {
		snap.Entries = append(snap.Entries, snapshotEntry(e))
	}
	if d.Default != nil {
		def := snapshotEntry(d.Default)
		snap.Default = &def
	}
	return snap
}

func snapshotEntry(e *Entry) EntrySnapshot {
	es := EntrySnapshot{
		Agents: append([]string(nil), e.Agents...),
		Rules:  make([]RuleSnapshot, 0, len(e.Rules)),
	}
	for _, r := range e.Rules {
		es.Rules = append(es.Rules, RuleSnapshot{Path: r.Path, Allow: r.Allow})
	}
	if e.CrawlDelay != nil {
		delay := *e.CrawlDelay
		es.CrawlDelay = &delay
	}
	return es
}

// FromSnapshot rebuilds a document from its serialized shape
func FromSnapshot(snap *DocumentSnapshot) (*Document, error) {
	var u *url.URL
	if snap.URL != "" {
		parsed, err := url.Parse(snap.URL)
		if err != nil {
			return nil, err
		}
		u = parsed
	}
	doc := NewDocument(u, snap.RedirectsLeft)
	doc.StatusCode = snap.StatusCode
	doc.Override = Override(snap.Override)
	doc.Sitemaps = append(doc.Sitemaps, snap.Sitemaps...)
	for i := range snap.Entries {
		doc.Entries = append(doc.Entries, entryFromSnapshot(&snap.Entries[i]))
	}
	if snap.Default != nil {
		doc.Default = entryFromSnapshot(snap.Default)
	}
	return doc, nil
}

func entryFromSnapshot(es *EntrySnapshot) *Entry {
	e := NewEntry()
	e.Agents = append(e.Agents, es.Agents...)
	for _, rs := range es.Rules {
		e.AddRule(NewRule(rs.Path, rs.Allow))
	}
	if es.CrawlDelay != nil {
		e.SetCrawlDelay(*es.CrawlDelay)
	}
	return e
}
