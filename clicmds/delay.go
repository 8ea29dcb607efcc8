package clicmds

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"gitlab.com/robotk/exclusion"
	"gitlab.com/robotk/exclusion/fetcher"
)

// DelayFlags for the delay command
func DelayFlags() []cli.Flag {
	return commonFlags()
}

// Delay reports the crawl-delay declared for the agent, if any
func Delay(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	robots := exclusion.NewRobots(fetcher.New(cfg, nil))
	robots.Fetch(context.Background(), ctx.String("url"))

	if seconds, ok := robots.CrawlDelay(ctx.String("agent")); ok {
		fmt.Printf("crawl-delay for %s: %gs\n", ctx.String("agent"), seconds)
	} else {
		fmt.Printf("no crawl-delay declared for %s\n", ctx.String("agent"))
	}
	return nil
}
