package trends

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_MarshalJSON(t *testing.T) {
	c := NewCollection("https://trends.google.com/x", RelatedResult{
		Term:    "golang",
		HasData: true,
		Value:   100,
		Link:    "https://trends.google.com/link",
		Metric:  MetricTop,
	})

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"searchUrl": "https://trends.google.com/x",
		"totalResults": 1,
		"results": [{"term": "golang", "hasData": true, "value": 100, "link": "https://trends.google.com/link", "metric": "TOP"}]
	}`, string(b))
}

func TestCollection_MarshalJSONEmpty(t *testing.T) {
	b, err := json.Marshal(NewCollection[InterestByRegionResult](""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"searchUrl": "", "totalResults": 0, "results": []}`, string(b))
}

func TestCollection_TimelineJSON(t *testing.T) {
	c := NewCollection("u", InterestOverTimeResult{
		InterestAt:    time.Date(2010, 9, 10, 0, 0, 0, 0, time.UTC),
		FormattedTime: "Sep 10, 2010",
		Value:         3,
		HasData:       true,
	})

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"interestAt":"2010-09-10T00:00:00Z"`)
}

func TestCollection_ResultsIsCopy(t *testing.T) {
	c := NewCollection("u", RelatedResult{Term: "a"})

	rows := c.Results()
	rows[0].Term = "changed"

	assert.Equal(t, "a", c.Results()[0].Term)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "u", c.URL())
}
