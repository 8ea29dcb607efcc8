// Package sitemap resolves the sitemap URLs a robots file declares
// into their listed page URLs. Plain <urlset> documents and nested
// <sitemapindex> documents are both handled.
package sitemap

import (
	"context"
	"encoding/xml"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/robotk/robotk"
)

// maxIndexDepth bounds sitemapindex recursion
const maxIndexDepth = 3

// URLSet is the <urlset> document
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []URL    `xml:"url"`
}

// URL is one <url> element
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Index is the <sitemapindex> document
type Index struct {
	XMLName  xml.Name    `xml:"sitemapindex"`
	Sitemaps []Reference `xml:"sitemap"`
}

// Reference is one nested <sitemap> element
type Reference struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// ErrNotSitemap is returned when a body is neither a urlset nor an index
var ErrNotSitemap = errors.New("body is not a sitemap document")

// Resolver fetches sitemap XML over a robots transport
type Resolver struct {
	transport robotk.Transport
	headers   map[string]string
}

// NewResolver with the headers to send on each request
func NewResolver(transport robotk.Transport, headers map[string]string) *Resolver {
	return &Resolver{transport: transport, headers: headers}
}

// Resolve fetches rawurl and returns every page URL it lists,
// following nested sitemap indexes a few levels deep.
func (r *Resolver) Resolve(ctx context.Context, rawurl string) ([]string, error) {
	return r.resolve(ctx, rawurl, 0)
}

func (r *Resolver) resolve(ctx context.Context, rawurl string, depth int) ([]string, error) {
	if depth > maxIndexDepth {
		return nil, errors.New("sitemap index nesting too deep")
	}

	body, err := r.get(ctx, rawurl)
	if err != nil {
		return nil, err
	}

	var set URLSet
	if err := xml.Unmarshal(body, &set); err == nil && len(set.URLs) > 0 {
		locs := make([]string, 0, len(set.URLs))
		for _, u := range set.URLs {
			locs = append(locs, u.Loc)
		}
		return locs, nil
	}

	var index Index
	if err := xml.Unmarshal(body, &index); err == nil && len(index.Sitemaps) > 0 {
		locs := make([]string, 0)
		for _, ref := range index.Sitemaps {
			nested, err := r.resolve(ctx, ref.Loc, depth+1)
			if err != nil {
				log.Warn().Str("sitemap", ref.Loc).Err(err).Msg("skipping nested sitemap")
				continue
			}
			locs = append(locs, nested...)
		}
		return locs, nil
	}

	return nil, ErrNotSitemap
}

func (r *Resolver) get(ctx context.Context, rawurl string) ([]byte, error) {
	req, err := requestFor(rawurl, r.headers)
	if err != nil {
		return nil, err
	}
	resp, err := r.transport.Do(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching sitemap")
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, errors.Errorf("sitemap fetch returned %d", resp.StatusCode)
	}
	return ioutil.ReadAll(resp.Body)
}
