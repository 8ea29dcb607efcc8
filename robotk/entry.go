package robotk

import (
	"net/url"
	"strings"
)

// Entry is a group of user-agent names sharing one rule set and an
// optional crawl-delay. The parser appends to it while a group is
// open; it is read-only once committed to a document.
type Entry struct {
	Agents     []string
	Rules      []*Rule
	CrawlDelay *float64 // seconds
}

// NewEntry returns an empty agent group
func NewEntry() *Entry {
	return &Entry{
		Agents: make([]string, 0),
		Rules:  make([]*Rule, 0),
	}
}

// AddAgent appends a lowercased user-agent token to the group
func (e *Entry) AddAgent(agent string) {
	e.Agents = append(e.Agents, strings.ToLower(strings.TrimSpace(agent)))
}

// AddRule appends a rule, insertion order is preserved
func (e *Entry) AddRule(r *Rule) {
	e.Rules = append(e.Rules, r)
}

// SetCrawlDelay in seconds
func (e *Entry) SetCrawlDelay(seconds float64) {
	e.CrawlDelay = &seconds
}

// IsDefault reports whether this group names the wildcard agent
func (e *Entry) IsDefault() bool {
	for _, a := range e.Agents {
		if a == "*" {
			return true
		}
	}
	return false
}

// AppliesTo checks a user-agent string against the group, case
// insensitive. A token matches when it is the wildcard or a substring
// of the supplied agent.
func (e *Entry) AppliesTo(agent string) bool {
	lowered := strings.ToLower(agent)
	for _, a := range e.Agents {
		if a == "*" || strings.Contains(lowered, a) {
			return true
		}
	}
	return false
}

// Allowance answers whether the group permits a path. An empty rule
// set declares no restriction. Among rules whose path prefixes the
// queried path the longest prefix wins; at equal length allow beats
// disallow. No matching prefix means allowed.
func (e *Entry) Allowance(path string) bool {
	if len(e.Rules) == 0 {
		return true
	}
	bestLen := -1
	allowed := true
	for _, r := range e.Rules {
		if !strings.HasPrefix(path, r.Path) {
			continue
		}
		if len(r.Path) > bestLen {
			bestLen = len(r.Path)
			allowed = r.Allow
		} else if len(r.Path) == bestLen && r.Allow {
			allowed = true
		}
	}
	if bestLen == -1 {
		return true
	}
	return allowed
}

// DisallowedPaths returns the de-escaped paths of every disallow rule
// in the group, in insertion order.
func (e *Entry) DisallowedPaths() []string {
	paths := make([]string, 0, len(e.Rules))
	for _, r := range e.Rules {
		if r.Allow {
			continue
		}
		p, err := url.PathUnescape(r.Path)
		if err != nil {
			p = r.Path
		}
		paths = append(paths, p)
	}
	return paths
}
