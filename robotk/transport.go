package robotk

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrTimedOut is reported when the transport gave up waiting
var ErrTimedOut = errors.New("request timed out")

// Request describes one GET to issue. Headers are sent verbatim.
type Request struct {
	Secure  bool // https when true
	Host    string
	Port    string // empty for scheme default
	Path    string
	Headers map[string]string
}

// Response is what the transport hands back. Body is owned by the
// caller and must be drained and closed.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       io.ReadCloser
}

// Header returns a response header by case-insensitive name
func (r *Response) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Transport issues a single GET against a host and reports the raw
// outcome. Implementations must not follow redirects themselves; the
// fetch state machine owns the redirect budget.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}
