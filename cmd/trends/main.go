package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"trends-go/pkg/trends"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	commands := make([]*cli.Command, 0, len(trends.AllReports)+1)
	for _, report := range trends.AllReports {
		commands = append(commands, &cli.Command{
			Name:   commandName(report),
			Usage:  "Search " + report.String(),
			Flags:  searchFlags(),
			Action: ReportAction(report),
		})
	}
	commands = append(commands, &cli.Command{
		Name:   "all",
		Usage:  "Run every report concurrently for the same filter",
		Flags:  searchFlags(),
		Action: AllAction,
	})

	return &cli.App{
		Name:     "trends",
		Usage:    "Query Google Trends reports from the command line",
		Commands: commands,
	}
}

// commandName drops the "search-" prefix of the route slug.
func commandName(report trends.ReportType) string {
	return report.Slug()[len("search-"):]
}

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Configuration file path"},
		&cli.StringFlag{Name: "term", Aliases: []string{"t"}, Usage: "Search term"},
		&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Usage: "Two-letter country code"},
		&cli.StringFlag{Name: "category", Usage: "Numeric category id"},
		&cli.StringFlag{Name: "language", Usage: "Language tag such as en-US"},
		&cli.StringFlag{Name: "property", Usage: "web, images, news, youtube or shopping"},
		&cli.StringFlag{Name: "date", Usage: "Anchor date YYYY-MM-DD, defaults to today"},
		&cli.BoolFlag{Name: "top", Usage: "Include TOP related rows"},
		&cli.BoolFlag{Name: "rising", Usage: "Include RISING related rows"},
		&cli.StringFlag{Name: "base-url", Usage: "Override the trends host"},
		&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
	}
}
