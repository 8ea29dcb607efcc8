package clicmds

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/robotk/exclusion"
	"gitlab.com/robotk/exclusion/fetcher"
	"gitlab.com/robotk/robotk"
)

// CheckFlags for the check command
func CheckFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{
			Name:  "path",
			Usage: "path to test for fetch permission",
			Value: "/",
		},
		&cli.BoolFlag{
			Name:  "dump",
			Usage: "dump the parsed document",
			Value: false,
		},
	)
}

// Check fetches robots.txt and reports whether the agent may fetch
// the path, along with which mechanism decided.
func Check(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	robots := exclusion.NewRobots(fetcher.New(cfg, nil))
	if ok := robots.Fetch(context.Background(), ctx.String("url")); !ok {
		log.Warn().Str("url", ctx.String("url")).Msg("fetch did not complete cleanly, answers reflect policy outcome")
	}

	robots.CanFetchAsync(ctx.String("agent"), ctx.String("path"), func(allowed bool, path string, d robotk.Decision) {
		verdict := "disallowed"
		if allowed {
			verdict = "allowed"
		}
		fmt.Printf("%s %s for %s (decided by %s)\n", path, verdict, ctx.String("agent"), d.Type)
	})

	if ctx.Bool("dump") {
		spew.Dump(robots.Document())
	}
	return nil
}
