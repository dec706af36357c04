package trends

import (
	"context"

	"github.com/tidwall/gjson"
)

const (
	comparedGeoPath = "/trends/api/widgetdata/comparedgeo"
	geoMapName      = "compared geo list"
)

type regionComparisonItem struct {
	Time                       string              `json:"time"`
	ComplexKeywordsRestriction *keywordRestriction `json:"complexKeywordsRestriction,omitempty"`
}

type regionRequest struct {
	Geo            geoRestriction         `json:"geo"`
	ComparisonItem []regionComparisonItem `json:"comparisonItem"`
	Resolution     string                 `json:"resolution"`
	Locale         string                 `json:"locale"`
	RequestOptions requestOptions         `json:"requestOptions"`
}

// InterestByRegionSearch fetches the per-region interest map.
type InterestByRegionSearch struct {
	explorer  Explorer
	requester Requester
	opts      options
}

func NewInterestByRegionSearch(explorer Explorer, requester Requester, opts ...Option) *InterestByRegionSearch {
	return &InterestByRegionSearch{
		explorer:  explorer,
		requester: requester,
		opts:      newOptions("interest_by_region_search", opts),
	}
}

func (s *InterestByRegionSearch) Search(ctx context.Context, filter SearchFilter) (*InterestByRegionCollection, error) {
	explored, err := s.explorer.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	widget, err := explored.InterestByRegion()
	if err != nil {
		return nil, err
	}

	searchURL, err := s.buildURL(filter, widget.Token)
	if err != nil {
		return nil, err
	}
	log := s.opts.log.WithField("url", searchURL)

	body, err := s.requester.Get(ctx, searchURL)
	if err != nil {
		log.WithError(err).Warn("Interest by region request failed")
		return nil, wrapTransport(err)
	}

	rows, err := decodeRows(body, "geoMapData")
	if err != nil {
		return nil, err
	}

	results := make([]InterestByRegionResult, 0, len(rows))
	for _, row := range rows {
		result, err := parseGeoRow(row)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	log.WithField("results", len(results)).Debug("Interest by region search completed")
	return NewCollection(searchURL, results...), nil
}

func (s *InterestByRegionSearch) buildURL(filter SearchFilter, token string) (string, error) {
	req, err := encodeRequest(regionRequest{
		Geo: geoRestriction{Country: filter.Location()},
		ComparisonItem: []regionComparisonItem{{
			Time:                       filter.Time(),
			ComplexKeywordsRestriction: broadKeyword(filter),
		}},
		Resolution:     "REGION",
		Locale:         filter.Language(),
		RequestOptions: newRequestOptions(filter),
	})
	if err != nil {
		return "", err
	}

	return buildURL(s.opts.baseURL, comparedGeoPath,
		queryParam{"hl", filter.Language()},
		queryParam{"tz", "-60"},
		queryParam{"req", req},
		queryParam{"token", token},
	), nil
}

func parseGeoRow(row gjson.Result) (InterestByRegionResult, error) {
	if err := requireKeys(row, geoMapName, "geoCode", "geoName", "value", "maxValueIndex", "hasData"); err != nil {
		return InterestByRegionResult{}, err
	}

	return InterestByRegionResult{
		Location:      row.Get("geoCode").String(),
		LocationName:  row.Get("geoName").String(),
		Value:         int(firstOf(row, "value").Int()),
		MaxValueIndex: int(row.Get("maxValueIndex").Int()),
		HasData:       firstOf(row, "hasData").Bool(),
	}, nil
}
