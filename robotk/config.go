package robotk

import "time"

// DefaultUserAgent mimics a desktop browser, some hosts serve bots a
// different robots file otherwise.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/81.0.4044.113 Safari/537.36"

// Config for a robots fetch
type Config struct {
	UserAgent string
	Headers   map[string]string // merged verbatim into each request
	Redirects int               // redirect budget, DefaultRedirects when zero
	Timeout   time.Duration     // transport timeout, 30s when zero
}

// NewConfig with defaults filled in
func NewConfig() *Config {
	return &Config{
		UserAgent: DefaultUserAgent,
		Headers:   make(map[string]string),
		Redirects: DefaultRedirects,
		Timeout:   time.Second * 30,
	}
}

// Normalize fills zero values with defaults
func (c *Config) Normalize() {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	if c.Redirects <= 0 {
		c.Redirects = DefaultRedirects
	}
	if c.Timeout <= 0 {
		c.Timeout = time.Second * 30
	}
}
