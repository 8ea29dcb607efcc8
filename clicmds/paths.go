package clicmds

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"gitlab.com/robotk/exclusion"
	"gitlab.com/robotk/exclusion/fetcher"
)

// PathsFlags for the paths command
func PathsFlags() []cli.Flag {
	return commonFlags()
}

// Paths lists every path the document disallows for the agent
func Paths(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	robots := exclusion.NewRobots(fetcher.New(cfg, nil))
	robots.Fetch(context.Background(), ctx.String("url"))

	for _, p := range robots.DisallowedPaths(ctx.String("agent")) {
		fmt.Println(p)
	}
	return nil
}
