package fetcher

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/robotk/robotk"
)

// Client is the default transport, a thin net/http wrapper. Redirect
// following is disabled so the fetch state machine can spend its own
// budget.
type Client struct {
	c *http.Client
}

// NewClient with a per-request timeout
func NewClient(timeout time.Duration) *Client {
	return &Client{
		c: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Do issues a single GET and returns the raw response. Timeouts map
// to robotk.ErrTimedOut so callers can classify them.
func (c *Client) Do(ctx context.Context, req *robotk.Request) (*robotk.Response, error) {
	scheme := "http"
	if req.Secure {
		scheme = "https"
	}
	host := req.Host
	if req.Port != "" {
		host = net.JoinHostPort(req.Host, req.Port)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "GET", scheme+"://"+host+req.Path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.c.Do(httpReq)
	if err != nil {
		if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
			return nil, robotk.ErrTimedOut
		}
		return nil, errors.Wrap(err, "issuing GET")
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}
	return &robotk.Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       resp.Body,
	}, nil
}
