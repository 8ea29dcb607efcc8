package sitemap_test

import (
	"context"
	"testing"

	"gitlab.com/robotk/exclusion/sitemap"
	"gitlab.com/robotk/mock"
	"gitlab.com/robotk/robotk"
)

const urlset = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/</loc><lastmod>2020-01-01</lastmod></url>
  <url><loc>https://example.com/about</loc></url>
</urlset>`

const index = `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://example.com/pages.xml</loc></sitemap>
  <sitemap><loc>https://example.com/missing.xml</loc></sitemap>
</sitemapindex>`

func routedTransport(t *testing.T, routes map[string]func() *robotk.Response) *mock.Transport {
	return &mock.Transport{
		DoFn: func(ctx context.Context, req *robotk.Request) (*robotk.Response, error) {
			serve, ok := routes[req.Path]
			if !ok {
				t.Fatalf("unexpected path %s", req.Path)
			}
			return serve(), nil
		},
	}
}

func TestResolveURLSet(t *testing.T) {
	transport := routedTransport(t, map[string]func() *robotk.Response{
		"/pages.xml": func() *robotk.Response { return mock.MakeResponse(200, nil, urlset) },
	})

	r := sitemap.NewResolver(transport, nil)
	pages, err := r.Resolve(context.Background(), "https://example.com/pages.xml")
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	want := []string{"https://example.com/", "https://example.com/about"}
	if len(pages) != len(want) || pages[0] != want[0] || pages[1] != want[1] {
		t.Fatalf("pages = %v, wanted %v", pages, want)
	}
}

func TestResolveNestedIndex(t *testing.T) {
	transport := routedTransport(t, map[string]func() *robotk.Response{
		"/index.xml":   func() *robotk.Response { return mock.MakeResponse(200, nil, index) },
		"/pages.xml":   func() *robotk.Response { return mock.MakeResponse(200, nil, urlset) },
		"/missing.xml": func() *robotk.Response { return mock.MakeResponse(404, nil, "") },
	})

	r := sitemap.NewResolver(transport, nil)
	pages, err := r.Resolve(context.Background(), "https://example.com/index.xml")
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	// the broken nested sitemap is skipped, the good one contributes
	if len(pages) != 2 {
		t.Fatalf("pages = %v, wanted 2 from the resolvable sitemap", pages)
	}
}

func TestResolveNotASitemap(t *testing.T) {
	transport := routedTransport(t, map[string]func() *robotk.Response{
		"/index.html": func() *robotk.Response { return mock.MakeResponse(200, nil, "<html>nope</html>") },
	})

	r := sitemap.NewResolver(transport, nil)
	if _, err := r.Resolve(context.Background(), "https://example.com/index.html"); err == nil {
		t.Fatal("non-sitemap bodies must error")
	}
}

func TestResolveBoundedRecursion(t *testing.T) {
	self := `<sitemapindex><sitemap><loc>https://example.com/loop.xml</loc></sitemap></sitemapindex>`
	transport := routedTransport(t, map[string]func() *robotk.Response{
		"/loop.xml": func() *robotk.Response { return mock.MakeResponse(200, nil, self) },
	})

	r := sitemap.NewResolver(transport, nil)
	pages, err := r.Resolve(context.Background(), "https://example.com/loop.xml")
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if len(pages) != 0 {
		t.Fatalf("pages = %v, wanted none from a self-referencing index", pages)
	}
	if transport.DoCount > 10 {
		t.Fatalf("recursion unbounded, %d requests issued", transport.DoCount)
	}
}
