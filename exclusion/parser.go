package exclusion

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gitlab.com/robotk/robotk"
)

type parseState int8

const (
	stateStart parseState = iota
	stateSawAgent
	stateSawRule
)

// placeholders keep scheme and port colons out of the field/value
// split, they are restored into the value afterwards
const (
	httpToken  = "%!http!%"
	httpsToken = "%!https!%"
	portToken  = "%!port!%"
)

var (
	portColon = regexp.MustCompile(`:(\d+)/`)
	lineBreak = regexp.MustCompile(`\r\n|\r|\n`)
)

// Parser folds raw directive lines into a document. It keeps no state
// between calls; the accumulator lives on the stack of Parse.
type Parser struct{}

// NewParser returns a directive parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseString splits a raw body on any line terminator and parses it
func (p *Parser) ParseString(doc *robotk.Document, body string) {
	p.Parse(doc, lineBreak.Split(body, -1))
}

// Parse the lines of a robots file into the document. Does nothing
// when a fetch-time override already decided the document.
func (p *Parser) Parse(doc *robotk.Document, lines []string) {
	if doc.Override != robotk.OverrideNone {
		return
	}

	state := stateStart
	entry := robotk.NewEntry()

	for _, raw := range lines {
		line := stripComment(raw)

		if line == "" {
			// blank line terminates the open group; an agent-only
			// group carries no rules and is thrown away
			switch state {
			case stateSawAgent:
				entry = robotk.NewEntry()
			case stateSawRule:
				doc.Commit(entry)
				entry = robotk.NewEntry()
			}
			state = stateStart
			continue
		}

		field, value, ok := splitDirective(line)
		if !ok {
			continue
		}

		switch robotk.KindOfField(field) {
		case robotk.DirectiveUserAgent:
			if state == stateSawRule {
				doc.Commit(entry)
				entry = robotk.NewEntry()
			}
			entry.AddAgent(value)
			state = stateSawAgent
		case robotk.DirectiveAllow, robotk.DirectiveDisallow:
			if state == stateStart {
				continue // orphaned, no agent declared yet
			}
			if !robotk.SafeValue(value) {
				log.Debug().Str("field", field).Msg("dropped unsafe directive value")
				continue
			}
			entry.AddRule(robotk.NewRule(value, field == "allow"))
			state = stateSawRule
		case robotk.DirectiveSitemap:
			if robotk.SafeValue(value) {
				doc.AddSitemap(value)
			}
		case robotk.DirectiveCrawlDelay:
			if state == stateStart {
				continue
			}
			seconds, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			entry.SetCrawlDelay(seconds)
			state = stateSawRule
		}
	}

	if state == stateSawRule {
		doc.Commit(entry)
	}
}

// stripComment drops everything from the first '#' and trims
func stripComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// splitDirective cuts "field: value" on the colon. Scheme colons and
// ":port/" colons inside sitemap-style URLs are masked first so the
// split sees exactly one separator, then restored in the value.
func splitDirective(line string) (field, value string, ok bool) {
	protected := strings.ReplaceAll(line, "https:", httpsToken)
	protected = strings.ReplaceAll(protected, "http:", httpToken)
	protected = portColon.ReplaceAllString(protected, portToken+"$1/")

	parts := strings.Split(protected, ":")
	if len(parts) != 2 {
		return "", "", false
	}

	field = strings.ToLower(strings.TrimSpace(parts[0]))
	value = strings.TrimSpace(restoreColons(parts[1]))
	return field, value, true
}

func restoreColons(v string) string {
	v = strings.ReplaceAll(v, httpsToken, "https:")
	v = strings.ReplaceAll(v, httpToken, "http:")
	v = strings.ReplaceAll(v, portToken, ":")
	return v
}
