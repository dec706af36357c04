package main

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"trends-go/internal/config"
	"trends-go/internal/query"
	"trends-go/internal/service"
	"trends-go/pkg/logger"
	"trends-go/pkg/trends"
	"trends-go/pkg/upstream"
)

func ReportAction(report trends.ReportType) cli.ActionFunc {
	return func(c *cli.Context) error {
		search, filter, err := setup(c)
		if err != nil {
			return err
		}

		result, err := search.Search(c.Context, report, filter)
		if err != nil {
			return err
		}
		return printJSON(c, result)
	}
}

func AllAction(c *cli.Context) error {
	search, filter, err := setup(c)
	if err != nil {
		return err
	}

	results, err := search.SearchAll(c.Context, trends.AllReports, filter)
	if err != nil {
		return err
	}

	bySlug := make(map[string]trends.ResultCollection, len(results))
	for report, result := range results {
		bySlug[report.Slug()] = result
	}
	return printJSON(c, bySlug)
}

func setup(c *cli.Context) (*service.Search, trends.SearchFilter, error) {
	cfg, err := config.NewManager().Load(c.String("config"))
	if err != nil {
		return nil, trends.SearchFilter{}, err
	}

	cfg.Logger.Level = "warn"
	if c.Bool("debug") {
		cfg.Logger.Level = "debug"
	}
	cfg.Logger.Output = "stderr"
	log := logger.New(cfg.Logger)

	baseURL := cfg.Search.BaseURL
	if c.IsSet("base-url") {
		baseURL = c.String("base-url")
	}

	params := query.Params{
		SearchTerm: c.String("term"),
		Location:   c.String("location"),
		Category:   c.String("category"),
		Language:   c.String("language"),
		Property:   c.String("property"),
		Top:        strconv.FormatBool(c.Bool("top")),
		Rising:     strconv.FormatBool(c.Bool("rising")),
		Date:       c.String("date"),
	}
	filter, err := params.Filter(cfg.Search, time.Now())
	if err != nil {
		return nil, trends.SearchFilter{}, err
	}

	requester := upstream.New(cfg.Upstream, upstream.WithLogger(log))
	client := trends.NewClient(requester, trends.WithBaseURL(baseURL), trends.WithLogger(log))
	return service.NewSearch(client, nil, log), filter, nil
}

func printJSON(c *cli.Context, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = c.App.Writer.Write(out)
	return err
}
