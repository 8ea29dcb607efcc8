package mock

import (
	"context"
	"io/ioutil"
	"strings"

	"gitlab.com/robotk/robotk"
)

// MakeResponse wraps a body in a response double
func MakeResponse(status int, headers map[string]string, body string) *robotk.Response {
	if headers == nil {
		headers = make(map[string]string)
	}
	return &robotk.Response{
		StatusCode: status,
		Headers:    headers,
		Body:       ioutil.NopCloser(strings.NewReader(body)),
	}
}

// MakeTransport serves a fixed response for every request
func MakeTransport(status int, headers map[string]string, body string) *Transport {
	return &Transport{
		DoFn: func(ctx context.Context, req *robotk.Request) (*robotk.Response, error) {
			return MakeResponse(status, headers, body), nil
		},
	}
}

// MakeRedirectTransport answers n redirects to location, then serves
// the body with status 200.
func MakeRedirectTransport(n int, location, body string) *Transport {
	served := 0
	return &Transport{
		DoFn: func(ctx context.Context, req *robotk.Request) (*robotk.Response, error) {
			if served < n {
				served++
				return MakeResponse(301, map[string]string{"Location": location}, ""), nil
			}
			return MakeResponse(200, nil, body), nil
		},
	}
}

// MakeErrTransport fails every request with err
func MakeErrTransport(err error) *Transport {
	return &Transport{
		DoFn: func(ctx context.Context, req *robotk.Request) (*robotk.Response, error) {
			return nil, err
		},
	}
}
