package fetcher

import (
	"context"
	"io"
	"io/ioutil"
	"net/url"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
	"gitlab.com/robotk/exclusion"
	"gitlab.com/robotk/robotk"
)

// Fetcher runs the bounded GET/redirect state machine for one robots
// file at a time and hands successful bodies to the directive parser.
// A single fetch holds at most one request in flight; the returned
// document must not be mutated while Fetch is running.
type Fetcher struct {
	cfg       *robotk.Config
	transport robotk.Transport
	parser    *exclusion.Parser
}

// New fetcher. A nil transport gets the default net/http client.
func New(cfg *robotk.Config, transport robotk.Transport) *Fetcher {
	if cfg == nil {
		cfg = robotk.NewConfig()
	}
	cfg.Normalize()
	if transport == nil {
		transport = NewClient(cfg.Timeout)
	}
	return &Fetcher{
		cfg:       cfg,
		transport: transport,
		parser:    exclusion.NewParser(),
	}
}

// Fetch retrieves and parses the robots file at rawurl. The bool is
// false when the outcome was a policy override (401/403, other >=400,
// exhausted redirects) or a transport failure; the document still
// answers queries in every case. Transport failures leave the
// document empty and permissive.
func (f *Fetcher) Fetch(ctx context.Context, rawurl string) (*robotk.Document, bool) {
	fetchID := uuid.NewV4().String()

	u, err := url.Parse(rawurl)
	if err != nil {
		doc := robotk.NewDocument(nil, f.cfg.Redirects)
		doc.LastErr = errors.Wrap(err, "parsing target url")
		log.Warn().Str("fetch", fetchID).Str("url", rawurl).Err(err).Msg("bad target url")
		return doc, false
	}

	doc := robotk.NewDocument(u, f.cfg.Redirects)
	for {
		resp, err := f.transport.Do(ctx, f.request(doc.URL))
		if err != nil {
			// fail-open: no override, queries fall through to allowed
			doc.LastErr = err
			log.Warn().Str("fetch", fetchID).Str("url", doc.URL.String()).Err(err).Msg("transport failure")
			return doc, false
		}
		doc.StatusCode = resp.StatusCode
		location := resp.Header("Location")

		switch {
		case resp.StatusCode == 401 || resp.StatusCode == 403:
			drain(resp.Body)
			doc.Override = robotk.DisallowAll
			log.Info().Str("fetch", fetchID).Int("status", resp.StatusCode).Msg("access denied, disallowing all")
			return doc, false

		case (resp.StatusCode == 301 || resp.StatusCode == 302) && location != "":
			drain(resp.Body)
			if doc.RedirectsLeft == 0 {
				doc.Override = robotk.AllowAll
				log.Info().Str("fetch", fetchID).Str("url", doc.URL.String()).Msg("redirect budget exhausted, allowing all")
				return doc, false
			}
			doc.RedirectsLeft--
			next, err := doc.URL.Parse(location)
			if err != nil {
				doc.LastErr = errors.Wrap(err, "resolving redirect location")
				return doc, false
			}
			log.Debug().Str("fetch", fetchID).Str("from", doc.URL.String()).Str("to", next.String()).Msg("following redirect")
			doc.URL = next
			doc.Reset()

		case resp.StatusCode >= 400:
			drain(resp.Body)
			doc.Override = robotk.AllowAll
			log.Info().Str("fetch", fetchID).Int("status", resp.StatusCode).Msg("robots unavailable, allowing all")
			return doc, false

		default:
			body, err := ioutil.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				doc.LastErr = errors.Wrap(err, "reading body")
				log.Warn().Str("fetch", fetchID).Err(err).Msg("body read failure")
				return doc, false
			}
			f.parser.ParseString(doc, string(body))
			log.Debug().Str("fetch", fetchID).Int("status", resp.StatusCode).
				Int("entries", len(doc.Entries)).Int("sitemaps", len(doc.Sitemaps)).Msg("robots parsed")
			return doc, true
		}
	}
}

// request builds the GET for the document's current URL. Caller
// headers are merged verbatim over the defaults.
func (f *Fetcher) request(u *url.URL) *robotk.Request {
	headers := map[string]string{"User-Agent": f.cfg.UserAgent}
	for k, v := range f.cfg.Headers {
		headers[k] = v
	}
	return &robotk.Request{
		Secure:  u.Scheme == "https",
		Host:    u.Hostname(),
		Port:    u.Port(),
		Path:    u.RequestURI(),
		Headers: headers,
	}
}

func drain(body io.ReadCloser) {
	io.Copy(ioutil.Discard, body)
	body.Close()
}
