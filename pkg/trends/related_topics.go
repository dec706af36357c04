package trends

import (
	"context"

	"github.com/tidwall/gjson"
)

var relatedTopicsKind = relatedKind{
	report:      RelatedTopics,
	keywordType: "ENTITY",
	token:       (*ExploreResultCollection).RelatedTopics,
	parseRow:    parseTopicRow,
	isRising:    risingTopic,
}

// RelatedTopicsSearch fetches the entities related to the search term.
type RelatedTopicsSearch struct {
	explorer  Explorer
	requester Requester
	opts      options
}

func NewRelatedTopicsSearch(explorer Explorer, requester Requester, opts ...Option) *RelatedTopicsSearch {
	return &RelatedTopicsSearch{
		explorer:  explorer,
		requester: requester,
		opts:      newOptions("related_topics_search", opts),
	}
}

func (s *RelatedTopicsSearch) Search(ctx context.Context, filter SearchFilter) (*RelatedResultCollection, error) {
	return searchRelated(ctx, relatedTopicsKind, s.explorer, s.requester, s.opts, filter)
}

func parseTopicRow(row gjson.Result, baseURL string) (rankedRow, error) {
	if err := requireKeys(row, rankedListName, "topic.title", "topic.type", "value", "link"); err != nil {
		return rankedRow{}, err
	}

	return rankedRow{
		result: RelatedResult{
			Term:    row.Get("topic.title").String() + " - " + row.Get("topic.type").String(),
			HasData: row.Get("hasData").Bool(),
			Value:   int(row.Get("value").Int()),
			Link:    baseURL + row.Get("link").String(),
		},
		formattedValue: row.Get("formattedValue").String(),
	}, nil
}

// risingTopic does not depend on the list maximum: topic rows carry their
// growth figure or "Breakout" in formattedValue.
func risingTopic(row rankedRow, _ int) bool {
	return hasRisingPrefix(row.formattedValue) || row.formattedValue == "Breakout"
}
