package trends

import (
	"context"

	"github.com/tidwall/gjson"
)

var relatedQueriesKind = relatedKind{
	report:      RelatedQueries,
	keywordType: "QUERY",
	token:       (*ExploreResultCollection).RelatedQueries,
	parseRow:    parseQueryRow,
	isRising:    risingQuery,
}

// RelatedQueriesSearch fetches the queries users also searched for.
type RelatedQueriesSearch struct {
	explorer  Explorer
	requester Requester
	opts      options
}

func NewRelatedQueriesSearch(explorer Explorer, requester Requester, opts ...Option) *RelatedQueriesSearch {
	return &RelatedQueriesSearch{
		explorer:  explorer,
		requester: requester,
		opts:      newOptions("related_queries_search", opts),
	}
}

func (s *RelatedQueriesSearch) Search(ctx context.Context, filter SearchFilter) (*RelatedResultCollection, error) {
	return searchRelated(ctx, relatedQueriesKind, s.explorer, s.requester, s.opts, filter)
}

func parseQueryRow(row gjson.Result, baseURL string) (rankedRow, error) {
	if err := requireKeys(row, rankedListName, "query", "value", "link"); err != nil {
		return rankedRow{}, err
	}

	return rankedRow{
		result: RelatedResult{
			Term:    row.Get("query").String(),
			HasData: row.Get("hasData").Bool(),
			Value:   int(row.Get("value").Int()),
			Link:    baseURL + row.Get("link").String(),
		},
		formattedValue: row.Get("formattedValue").String(),
	}, nil
}

// risingQuery marks rows below the list maximum whose formatted value is a
// growth figure ("+250%").
func risingQuery(row rankedRow, maxValue int) bool {
	return row.result.Value < maxValue && hasRisingPrefix(row.formattedValue)
}
