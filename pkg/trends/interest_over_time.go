package trends

import (
	"context"
	"time"

	"github.com/tidwall/gjson"
)

const (
	multilinePath = "/trends/api/widgetdata/multiline"
	timelineName  = "timeline data"
)

type timelineComparisonItem struct {
	Geo                        geoRestriction      `json:"geo"`
	ComplexKeywordsRestriction *keywordRestriction `json:"complexKeywordsRestriction,omitempty"`
}

type timelineRequest struct {
	Time           string                   `json:"time"`
	Resolution     string                   `json:"resolution"`
	Locale         string                   `json:"locale"`
	ComparisonItem []timelineComparisonItem `json:"comparisonItem"`
	RequestOptions requestOptions           `json:"requestOptions"`
}

// InterestOverTimeSearch fetches the daily interest timeline.
type InterestOverTimeSearch struct {
	explorer  Explorer
	requester Requester
	opts      options
}

func NewInterestOverTimeSearch(explorer Explorer, requester Requester, opts ...Option) *InterestOverTimeSearch {
	return &InterestOverTimeSearch{
		explorer:  explorer,
		requester: requester,
		opts:      newOptions("interest_over_time_search", opts),
	}
}

func (s *InterestOverTimeSearch) Search(ctx context.Context, filter SearchFilter) (*InterestOverTimeResultCollection, error) {
	explored, err := s.explorer.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	widget, err := explored.InterestOverTime()
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
		log.WithError(err).Warn("Interest over time request failed")
		return nil, wrapTransport(err)
	}

	rows, err := decodeRows(body, "timelineData")
	if err != nil {
		return nil, err
	}

	results := make([]InterestOverTimeResult, 0, len(rows))
	for _, row := range rows {
		result, err := parseTimelineRow(row)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	log.WithField("results", len(results)).Debug("Interest over time search completed")
	return NewCollection(searchURL, results...), nil
}

func (s *InterestOverTimeSearch) buildURL(filter SearchFilter, token string) (string, error) {
	req, err := encodeRequest(timelineRequest{
		Time:       filter.Time(),
		Resolution: "DAY",
		Locale:     filter.Language(),
		ComparisonItem: []timelineComparisonItem{{
			Geo:                        geoRestriction{Country: filter.Location()},
			ComplexKeywordsRestriction: broadKeyword(filter),
		}},
		RequestOptions: newRequestOptions(filter),
	})
	if err != nil {
		return "", err
	}

	return buildURL(s.opts.baseURL, multilinePath,
		queryParam{"hl", filter.Language()},
		queryParam{"tz", "-60"},
		queryParam{"req", req},
		queryParam{"token", token},
	), nil
}

// parseTimelineRow reads a point whose "time" is a unix timestamp string.
func parseTimelineRow(row gjson.Result) (InterestOverTimeResult, error) {
	if err := requireKeys(row, timelineName, "time", "formattedTime", "value", "hasData"); err != nil {
		return InterestOverTimeResult{}, err
	}

	return InterestOverTimeResult{
		InterestAt:    time.Unix(row.Get("time").Int(), 0).UTC(),
		FormattedTime: row.Get("formattedTime").String(),
		Value:         int(firstOf(row, "value").Int()),
		HasData:       firstOf(row, "hasData").Bool(),
	}, nil
}
