package fetcher_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gitlab.com/robotk/exclusion"
	"gitlab.com/robotk/exclusion/fetcher"
	"gitlab.com/robotk/mock"
	"gitlab.com/robotk/robotk"
)

func testServer(fn func(router *gin.Engine)) (string, *http.Server) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	fn(router)

	listener, _ := net.Listen("tcp", "127.0.0.1:0")
	srv := &http.Server{
		Addr:    listener.Addr().String(),
		Handler: router,
	}
	go srv.Serve(listener)

	return "http://" + listener.Addr().String(), srv
}

func TestFetchParsesBody(t *testing.T) {
	base, srv := testServer(func(router *gin.Engine) {
		router.GET("/robots.txt", func(c *gin.Context) {
			c.String(http.StatusOK, "User-agent: *\nDisallow: /private\nSitemap: https://example.com:8080/map.xml\n")
		})
	})
	defer srv.Shutdown(context.Background())

	f := fetcher.New(nil, nil)
	doc, ok := f.Fetch(context.Background(), base+"/robots.txt")
	if !ok {
		t.Fatalf("fetch failed: %v", doc.LastErr)
	}
	if doc.StatusCode != 200 {
		t.Fatalf("status = %d, wanted 200", doc.StatusCode)
	}
	if doc.Default == nil || len(doc.Default.Rules) != 1 {
		t.Fatalf("default entry not parsed: %+v", doc.Default)
	}
	if len(doc.Sitemaps) != 1 || doc.Sitemaps[0] != "https://example.com:8080/map.xml" {
		t.Fatalf("sitemaps = %v", doc.Sitemaps)
	}

	ev := exclusion.NewEvaluator(doc)
	if ev.CanFetch("anybot", "/private/x") {
		t.Fatal("disallowed path slipped through")
	}
	if !ev.CanFetch("anybot", "/public") {
		t.Fatal("allowed path denied")
	}
}

func TestFetchAccessDenied(t *testing.T) {
	for _, status := range []int{401, 403} {
		base, srv := testServer(func(router *gin.Engine) {
			router.GET("/robots.txt", func(c *gin.Context) {
				// the body would allow everything, it must never be parsed
				c.String(status, "User-agent: *\nAllow: /\n")
			})
		})

		f := fetcher.New(nil, nil)
		doc, ok := f.Fetch(context.Background(), base+"/robots.txt")
		srv.Shutdown(context.Background())

		if ok {
			t.Fatalf("status %d must report failure", status)
		}
		if doc.Override != robotk.DisallowAll {
			t.Fatalf("status %d: override = %v, wanted DisallowAll", status, doc.Override)
		}
		if len(doc.Entries) != 0 || doc.Default != nil {
			t.Fatalf("status %d: body must not be parsed", status)
		}
		if exclusion.NewEvaluator(doc).CanFetch("any", "/any") {
			t.Fatalf("status %d must deny every path", status)
		}
	}
}

func TestFetchServerError(t *testing.T) {
	base, srv := testServer(func(router *gin.Engine) {
		router.GET("/robots.txt", func(c *gin.Context) {
			c.String(http.StatusInternalServerError, "User-agent: *\nDisallow: /\n")
		})
	})
	defer srv.Shutdown(context.Background())

	f := fetcher.New(nil, nil)
	doc, ok := f.Fetch(context.Background(), base+"/robots.txt")
	if ok {
		t.Fatal("5xx must report failure")
	}
	if doc.Override != robotk.AllowAll {
		t.Fatalf("override = %v, wanted AllowAll", doc.Override)
	}
	if !exclusion.NewEvaluator(doc).CanFetch("any", "/any") {
		t.Fatal("5xx must grant every path")
	}
}

func TestFetchFollowsRelativeRedirect(t *testing.T) {
	base, srv := testServer(func(router *gin.Engine) {
		router.GET("/robots.txt", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/moved/robots.txt")
		})
		router.GET("/moved/robots.txt", func(c *gin.Context) {
			c.String(http.StatusOK, "User-agent: bot\nDisallow: /x\n")
		})
	})
	defer srv.Shutdown(context.Background())

	f := fetcher.New(nil, nil)
	doc, ok := f.Fetch(context.Background(), base+"/robots.txt")
	if !ok {
		t.Fatalf("fetch failed: %v", doc.LastErr)
	}
	if doc.URL.Path != "/moved/robots.txt" {
		t.Fatalf("document url = %s, wanted the redirect target", doc.URL)
	}
	if doc.RedirectsLeft != robotk.DefaultRedirects-1 {
		t.Fatalf("redirects left = %d, wanted %d", doc.RedirectsLeft, robotk.DefaultRedirects-1)
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("entries = %+v, wanted the parsed group", doc.Entries)
	}
}

func TestFetchRedirectBudgetExhausted(t *testing.T) {
	hop := 0
	base, srv := testServer(func(router *gin.Engine) {
		router.GET("/robots.txt", func(c *gin.Context) {
			hop++
			c.Redirect(http.StatusFound, fmt.Sprintf("/robots.txt?hop=%d", hop))
		})
	})
	defer srv.Shutdown(context.Background())

	f := fetcher.New(nil, nil)
	doc, ok := f.Fetch(context.Background(), base+"/robots.txt")
	if ok {
		t.Fatal("an endless redirect chain must report failure")
	}
	if doc.Override != robotk.AllowAll {
		t.Fatalf("override = %v, wanted AllowAll after budget exhaustion", doc.Override)
	}
	if doc.RedirectsLeft != 0 {
		t.Fatalf("redirects left = %d, wanted 0", doc.RedirectsLeft)
	}
	if !exclusion.NewEvaluator(doc).CanFetch("any", "/any") {
		t.Fatal("exhausted budget must grant every path")
	}
}

func TestFetchRedirectRequestCount(t *testing.T) {
	transport := mock.MakeRedirectTransport(100, "http://example.com/robots.txt", "")

	f := fetcher.New(nil, transport)
	_, ok := f.Fetch(context.Background(), "http://example.com/robots.txt")
	if ok {
		t.Fatal("expected failure")
	}
	// budget of 5 means the initial request plus 5 followed hops
	if transport.DoCount != robotk.DefaultRedirects+1 {
		t.Fatalf("transport called %d times, wanted %d", transport.DoCount, robotk.DefaultRedirects+1)
	}
}

func TestFetchRedirectWithoutLocationParses(t *testing.T) {
	transport := mock.MakeTransport(301, nil, "User-agent: bot\nDisallow: /x\n")

	f := fetcher.New(nil, transport)
	doc, ok := f.Fetch(context.Background(), "http://example.com/robots.txt")
	if !ok {
		t.Fatal("a 301 without Location falls through to parsing")
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("entries = %+v", doc.Entries)
	}
}

func TestFetchTransportErrorFailsOpen(t *testing.T) {
	transport := mock.MakeErrTransport(robotk.ErrTimedOut)

	f := fetcher.New(nil, transport)
	doc, ok := f.Fetch(context.Background(), "http://example.com/robots.txt")
	if ok {
		t.Fatal("transport errors must report failure")
	}
	if doc.Override != robotk.OverrideNone {
		t.Fatalf("override = %v, transport failure must not set one", doc.Override)
	}
	if doc.LastErr == nil {
		t.Fatal("the error must be recorded on the document")
	}
	if len(doc.Entries) != 0 || doc.Default != nil {
		t.Fatal("the document must stay empty")
	}
	if !exclusion.NewEvaluator(doc).CanFetch("any", "/any") {
		t.Fatal("fail-open means access granted")
	}
}

func TestFetchConnectionRefusedFailsOpen(t *testing.T) {
	listener, _ := net.Listen("tcp", "127.0.0.1:0")
	addr := listener.Addr().String()
	listener.Close()

	f := fetcher.New(nil, nil)
	doc, ok := f.Fetch(context.Background(), "http://"+addr+"/robots.txt")
	if ok || doc.LastErr == nil {
		t.Fatal("connection errors must be recorded and reported as failure")
	}
	if !exclusion.NewEvaluator(doc).CanFetch("any", "/any") {
		t.Fatal("fail-open means access granted")
	}
}

func TestFetchHeaderMerging(t *testing.T) {
	var gotAgent, gotExtra string
	base, srv := testServer(func(router *gin.Engine) {
		router.GET("/robots.txt", func(c *gin.Context) {
			gotAgent = c.GetHeader("User-Agent")
			gotExtra = c.GetHeader("X-Robotk")
			c.String(http.StatusOK, "")
		})
	})
	defer srv.Shutdown(context.Background())

	cfg := robotk.NewConfig()
	cfg.UserAgent = "robotk-test/1.0"
	cfg.Headers["X-Robotk"] = "present"

	f := fetcher.New(cfg, nil)
	if _, ok := f.Fetch(context.Background(), base+"/robots.txt"); !ok {
		t.Fatal("fetch failed")
	}
	if gotAgent != "robotk-test/1.0" {
		t.Fatalf("user-agent = %q", gotAgent)
	}
	if gotExtra != "present" {
		t.Fatalf("caller header not merged, got %q", gotExtra)
	}
}

func TestFetchBadURL(t *testing.T) {
	f := fetcher.New(nil, nil)
	doc, ok := f.Fetch(context.Background(), "http://bad url with spaces/robots.txt")
	if ok {
		t.Fatal("unparseable urls must report failure")
	}
	if doc.LastErr == nil {
		t.Fatal("the parse error must be recorded")
	}
}
