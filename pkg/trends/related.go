package trends

import (
	"context"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	relatedPath       = "/trends/api/widgetdata/relatedsearches"
	rankedKeywordPath = "rankedList.0.rankedKeyword"
	rankedListName    = "ranked list"
)

// rankedRow is a parsed row before it has been labelled TOP or RISING.
type rankedRow struct {
	result         RelatedResult
	formattedValue string
}

// relatedKind is everything that differs between related queries and
// related topics.
type relatedKind struct {
	report      ReportType
	keywordType string
	token       func(*ExploreResultCollection) (ExploreResult, error)
	parseRow    func(row gjson.Result, baseURL string) (rankedRow, error)
	isRising    func(row rankedRow, maxValue int) bool
}

type relatedRestriction struct {
	Geo                            geoRestriction      `json:"geo"`
	Time                           string              `json:"time"`
	OriginalTimeRangeForExploreURL string              `json:"originalTimeRangeForExploreUrl"`
	ComplexKeywordsRestriction     *keywordRestriction `json:"complexKeywordsRestriction,omitempty"`
}

type trendinessSettings struct {
	CompareTime string `json:"compareTime"`
}

type relatedRequest struct {
	Restriction        relatedRestriction `json:"restriction"`
	KeywordType        string             `json:"keywordType"`
	Metric             []Metric           `json:"metric"`
	TrendinessSettings trendinessSettings `json:"trendinessSettings"`
	RequestOptions     requestOptions     `json:"requestOptions"`
	Language           string             `json:"language"`
	UserCountryCode    string             `json:"userCountryCode"`
}

// searchRelated runs explore, fetches the ranked list for kind and labels
// every row. Upstream is always asked for both metrics so rows can be told
// apart; unrequested ones are dropped here. A filter without metrics
// short-circuits to an empty collection before any request is made.
func searchRelated(ctx context.Context, kind relatedKind, explorer Explorer, requester Requester, opts options, filter SearchFilter) (*RelatedResultCollection, error) {
	log := opts.log.WithField("report", kind.report.WidgetID())

	if len(filter.Metrics()) == 0 {
		log.Debug("No metrics requested, skipping search")
		return NewCollection[RelatedResult](""), nil
	}

	explored, err := explorer.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	widget, err := kind.token(explored)
	if err != nil {
		return nil, err
	}

	searchURL, err := buildRelatedURL(kind, opts.baseURL, filter, widget.Token)
	if err != nil {
		return nil, err
	}
	log = log.WithField("url", searchURL)

	body, err := requester.Get(ctx, searchURL)
	if err != nil {
		log.WithError(err).Warn("Related search request failed")
		return nil, wrapTransport(err)
	}

	raw, err := decodeRows(body, rankedKeywordPath)
	if err != nil {
		return nil, err
	}

	rows := make([]rankedRow, 0, len(raw))
	maxValue := 0
	for _, r := range raw {
		row, err := kind.parseRow(r, opts.baseURL)
		if err != nil {
			return nil, err
		}
		if row.result.Value > maxValue {
			maxValue = row.result.Value
		}
		rows = append(rows, row)
	}

	results := make([]RelatedResult, 0, len(rows))
	for _, row := range rows {
		row.result.Metric = MetricTop
		if kind.isRising(row, maxValue) {
			row.result.Metric = MetricRising
		}
		if filter.Wants(row.result.Metric) {
			results = append(results, row.result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metric == MetricTop && results[j].Metric == MetricRising
	})

	log.WithField("results", len(results)).Debug("Related search completed")
	return NewCollection(searchURL, results...), nil
}

func buildRelatedURL(kind relatedKind, baseURL string, filter SearchFilter, token string) (string, error) {
	req, err := encodeRequest(relatedRequest{
		Restriction: relatedRestriction{
			Geo:                            geoRestriction{Country: filter.Location()},
			Time:                           filter.Time(),
			OriginalTimeRangeForExploreURL: filter.Time(),
			ComplexKeywordsRestriction:     broadKeyword(filter),
		},
		KeywordType:        kind.keywordType,
		Metric:             []Metric{MetricTop, MetricRising},
		TrendinessSettings: trendinessSettings{CompareTime: filter.CompareTime()},
		RequestOptions:     newRequestOptions(filter),
		Language:           filter.LanguageBase(),
		UserCountryCode:    filter.Location(),
	})
	if err != nil {
		return "", err
	}

	return buildURL(baseURL, relatedPath,
		queryParam{"hl", filter.Language()},
		queryParam{"tz", "-120"},
		queryParam{"req", req},
		queryParam{"token", token},
	), nil
}

func hasRisingPrefix(formatted string) bool {
	return strings.HasPrefix(formatted, "+") || strings.HasPrefix(formatted, "%")
}
