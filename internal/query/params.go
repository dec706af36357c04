// Package query turns loosely typed request parameters into a
// trends.SearchFilter. The HTTP handler and the CLI share it.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"trends-go/internal/config"
	"trends-go/pkg/trends"
)

// Params mirrors the inbound query string. Empty fields fall back to the
// configured defaults.
type Params struct {
	SearchTerm string
	Location   string
	Category   string
	Language   string
	Property   string
	Top        string
	Rising     string
	Date       string
}

// Filter validates p and builds the filter anchored on Date, or on now when
// Date is empty.
func (p Params) Filter(defaults config.SearchConfig, now time.Time) (trends.SearchFilter, error) {
	anchor := now
	if p.Date != "" {
		d, err := time.Parse(time.DateOnly, p.Date)
		if err != nil {
			return trends.SearchFilter{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", p.Date)
		}
		anchor = d
	}

	filter := trends.NewSearchFilter(anchor).
		WithSearchTerm(strings.TrimSpace(p.SearchTerm)).
		WithLocation(defaults.Location).
		WithLanguage(defaults.Language).
		WithCategory(defaults.Category)

	if p.Location != "" {
		filter = filter.WithLocation(strings.ToUpper(p.Location))
	}

	if p.Category != "" {
		category, err := strconv.Atoi(p.Category)
		if err != nil || category < 0 {
			return trends.SearchFilter{}, fmt.Errorf("invalid category %q", p.Category)
		}
		filter = filter.WithCategory(category)
	}

	if p.Language != "" {
		tag, err := language.Parse(p.Language)
		if err != nil {
			return trends.SearchFilter{}, fmt.Errorf("invalid language %q", p.Language)
		}
		filter = filter.WithLanguage(tag.String())
	}

	property, ok := trends.ParseProperty(p.Property)
	if !ok {
		return trends.SearchFilter{}, fmt.Errorf("invalid property %q", p.Property)
	}
	filter = filter.WithProperty(property)

	top, err := parseFlag("withTopMetrics", p.Top)
	if err != nil {
		return trends.SearchFilter{}, err
	}
	if top {
		filter = filter.WithTopMetrics()
	}

	rising, err := parseFlag("withRisingMetrics", p.Rising)
	if err != nil {
		return trends.SearchFilter{}, err
	}
	if rising {
		filter = filter.WithRisingMetrics()
	}

	return filter, nil
}

func parseFlag(name, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", name, value)
	}
	return b, nil
}
