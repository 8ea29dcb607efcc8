package robotk

// DirectiveKind is the closed set of field names the parser acts on.
// Deciding the kind once, right after lowercasing, keeps the dispatch
// exhaustive instead of string-matching in several places.
type DirectiveKind int8

const (
	// DirectiveUnknown fields are ignored
	DirectiveUnknown DirectiveKind = iota
	// DirectiveUserAgent opens or extends an agent group
	DirectiveUserAgent
	// DirectiveAllow grants a path prefix
	DirectiveAllow
	// DirectiveDisallow denies a path prefix
	DirectiveDisallow
	// DirectiveSitemap declares a sitemap URL
	DirectiveSitemap
	// DirectiveCrawlDelay declares seconds between fetches
	DirectiveCrawlDelay
)

// KindOfField maps a lowercased, trimmed field name to its kind
func KindOfField(field string) DirectiveKind {
	switch field {
	case "user-agent":
		return DirectiveUserAgent
	case "allow":
		return DirectiveAllow
	case "disallow":
		return DirectiveDisallow
	case "sitemap":
		return DirectiveSitemap
	case "crawl-delay":
		return DirectiveCrawlDelay
	}
	return DirectiveUnknown
}
