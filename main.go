package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"gitlab.com/robotk/clicmds"
)

func main() {
	app := cli.NewApp()
	app.Name = "robotk"
	app.Version = "0.1"
	app.Usage = "Fetch robots.txt and answer crawl permission queries"
	app.Commands = []*cli.Command{
		{
			Name:    "check",
			Aliases: []string{"c"},
			Usage:   "may an agent fetch a path",
			Action:  clicmds.Check,
			Flags:   clicmds.CheckFlags(),
		},
		{
			Name:    "delay",
			Aliases: []string{"d"},
			Usage:   "declared crawl-delay for an agent",
			Action:  clicmds.Delay,
			Flags:   clicmds.DelayFlags(),
		},
		{
			Name:    "paths",
			Aliases: []string{"p"},
			Usage:   "disallowed paths for an agent",
			Action:  clicmds.Paths,
			Flags:   clicmds.PathsFlags(),
		},
		{
			Name:    "sitemaps",
			Aliases: []string{"s"},
			Usage:   "sitemap urls the robots file declares",
			Action:  clicmds.Sitemaps,
			Flags:   clicmds.SitemapsFlags(),
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
