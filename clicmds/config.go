package clicmds

import (
	"io/ioutil"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
	"gitlab.com/robotk/robotk"
)

// fileConfig is the TOML shape of a robots fetch config
type fileConfig struct {
	UserAgent string
	Redirects int
	TimeoutMs int
	Headers   map[string]string
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "robots.txt url to fetch",
			Value: "http://localhost/robots.txt",
		},
		&cli.StringFlag{
			Name:  "agent",
			Usage: "crawler user-agent to query for",
			Value: "*",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "toml config to use",
			Value: "",
		},
		&cli.IntFlag{
			Name:  "redirects",
			Usage: "max redirects to follow",
			Value: robotk.DefaultRedirects,
		},
	}
}

func loadConfig(ctx *cli.Context) (*robotk.Config, error) {
	cfg := robotk.NewConfig()
	cfg.Redirects = ctx.Int("redirects")

	if ctx.String("config") == "" {
		return cfg, nil
	}

	data, err := ioutil.ReadFile(ctx.String("config"))
	if err != nil {
		return nil, err
	}

	fc := &fileConfig{}
	if err := toml.NewDecoder(strings.NewReader(string(data))).Decode(fc); err != nil {
		return nil, err
	}

	if fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}
	if fc.Redirects > 0 {
		cfg.Redirects = fc.Redirects
	}
	if fc.TimeoutMs > 0 {
		cfg.Timeout = time.Duration(fc.TimeoutMs) * time.Millisecond
	}
	for k, v := range fc.Headers {
		cfg.Headers[k] = v
	}
	return cfg, nil
}
