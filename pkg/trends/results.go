package trends

import (
	"encoding/json"
	"time"
)

// RelatedResult is one ranked keyword of a related-queries or related-topics
// report.
type RelatedResult struct {
	Term    string `json:"term"`
	HasData bool   `json:"hasData"`
	Value   int    `json:"value"`
	Link    string `json:"link"`
	Metric  Metric `json:"metric"`
}

// InterestByRegionResult is one region of a compared-geo report.
type InterestByRegionResult struct {
	Location      string `json:"location"`
	LocationName  string `json:"locationName"`
	Value         int    `json:"value"`
	MaxValueIndex int    `json:"maxValueIndex"`
	HasData       bool   `json:"hasData"`
}

// InterestOverTimeResult is one point of the interest timeline.
type InterestOverTimeResult struct {
	InterestAt    time.Time `json:"interestAt"`
	FormattedTime string    `json:"formattedTime"`
	Value         int       `json:"value"`
	HasData       bool      `json:"hasData"`
}

// ResultCollection is what every report search returns: the URL that was
// fetched plus an ordered list of rows.
type ResultCollection interface {
	URL() string
	Len() int
}

type Collection[T any] struct {
	searchURL string
	results   []T
}

type (
	RelatedResultCollection          = Collection[RelatedResult]
	InterestByRegionCollection       = Collection[InterestByRegionResult]
	InterestOverTimeResultCollection = Collection[InterestOverTimeResult]
)

func NewCollection[T any](searchURL string, results ...T) *Collection[T] {
	return &Collection[T]{searchURL: searchURL, results: results}
}

func (c *Collection[T]) URL() string {
	return c.searchURL
}

func (c *Collection[T]) Len() int {
	return len(c.results)
}

// Results returns a copy of the rows.
func (c *Collection[T]) Results() []T {
	out := make([]T, len(c.results))
	copy(out, c.results)
	return out
}

func (c *Collection[T]) MarshalJSON() ([]byte, error) {
	results := c.results
	if results == nil {
		results = []T{}
	}
	return json.Marshal(struct {
		SearchURL    string `json:"searchUrl"`
		TotalResults int    `json:"totalResults"`
		Results      []T    `json:"results"`
	}{c.searchURL, len(results), results})
}
