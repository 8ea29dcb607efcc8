package sitemap

import (
	"net/url"

	"github.com/pkg/errors"
	"gitlab.com/robotk/robotk"
)

func requestFor(rawurl string, headers map[string]string) (*robotk.Request, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, errors.Wrap(err, "parsing sitemap url")
	}
	merged := make(map[string]string, len(headers))
	for k, v := range headers {
		merged[k] = v
	}
	return &robotk.Request{
		Secure:  u.Scheme == "https",
		Host:    u.Hostname(),
		Port:    u.Port(),
		Path:    u.RequestURI(),
		Headers: merged,
	}, nil
}
