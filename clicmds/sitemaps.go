package clicmds

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/robotk/exclusion"
	"gitlab.com/robotk/exclusion/fetcher"
	"gitlab.com/robotk/exclusion/sitemap"
)

// SitemapsFlags for the sitemaps command
func SitemapsFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.BoolFlag{
			Name:  "resolve",
			Usage: "fetch each sitemap and list its page urls",
			Value: false,
		},
	)
}

// Sitemaps lists the sitemap URLs a robots file declares, optionally
// resolving each into its page URLs.
func Sitemaps(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	robots := exclusion.NewRobots(fetcher.New(cfg, nil))
	robots.Fetch(context.Background(), ctx.String("url"))

	robots.SitemapURLs(func(urls []string) {
		if !ctx.Bool("resolve") {
			for _, u := range urls {
				fmt.Println(u)
			}
			return
		}

		headers := map[string]string{"User-Agent": cfg.UserAgent}
		resolver := sitemap.NewResolver(fetcher.NewClient(cfg.Timeout), headers)
		for _, u := range urls {
			pages, err := resolver.Resolve(context.Background(), u)
			if err != nil {
				log.Warn().Str("sitemap", u).Err(err).Msg("could not resolve sitemap")
				continue
			}
			for _, p := range pages {
				fmt.Println(p)
			}
		}
	})
	return nil
}
