package trends

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trends-go/pkg/trends/mock"
)

const (
	comparedGeoURL = "https://trends.google.com/trends/api/widgetdata/comparedgeo?hl=en-US&tz=-60&req=%7B%22geo%22:%7B%22country%22:%22US%22%7D,%22comparisonItem%22:%5B%7B%22time%22:%222010-09-10+2010-10-10%22,%22complexKeywordsRestriction%22:%7B%22keyword%22:%5B%7B%22type%22:%22BROAD%22,%22value%22:%22_keyword_%22%7D%5D%7D%7D%5D,%22resolution%22:%22REGION%22,%22locale%22:%22en-US%22,%22requestOptions%22:%7B%22property%22:%22%22,%22backend%22:%22IZG%22,%22category%22:0%7D%7D&token=TOKEN"
	multilineURL   = "https://trends.google.com/trends/api/widgetdata/multiline?hl=en-US&tz=-60&req=%7B%22time%22:%222010-09-10+2010-10-10%22,%22resolution%22:%22DAY%22,%22locale%22:%22en-US%22,%22comparisonItem%22:%5B%7B%22geo%22:%7B%22country%22:%22US%22%7D,%22complexKeywordsRestriction%22:%7B%22keyword%22:%5B%7B%22type%22:%22BROAD%22,%22value%22:%22_keyword_%22%7D%5D%7D%7D%5D,%22requestOptions%22:%7B%22property%22:%22%22,%22backend%22:%22IZG%22,%22category%22:0%7D%7D&token=TOKEN"
)

func TestInterestByRegionSearch_Search(t *testing.T) {
	explorer := explorerWith(ExploreResult{ID: "GEO_MAP", Token: "TOKEN"})
	requester := mock.New().WithResponse(comparedGeoPath, `{
		"default": {
			"geoMapData": [{
				"geoCode": "US-NY",
				"geoName": "New York",
				"value": [100],
				"formattedValue": ["100"],
				"maxValueIndex": 0,
				"hasData": [true]
			}]
		}
	}`)

	got, err := NewInterestByRegionSearch(explorer, requester, quiet()).Search(context.Background(), keywordFilter())
	require.NoError(t, err)

	want := NewCollection(comparedGeoURL, InterestByRegionResult{
		Location:      "US-NY",
		LocationName:  "New York",
		Value:         100,
		MaxValueIndex: 0,
		HasData:       true,
	})
	assert.Equal(t, want, got)
	assert.Equal(t, []SearchFilter{keywordFilter()}, explorer.calls)
	assert.Equal(t, comparedGeoURL, requester.LastURL())
}

func TestInterestByRegionSearch_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "row missing keys",
			body: `{"default": {"geoMapData": [{"a": ""}]}}`,
			want: "GoogleTrends error: Google compared geo list does not contain all keys. Only has: a",
		},
		{
			name: "missing default",
			body: `{"a": []}`,
			want: `GoogleTrends error: Invalid google response body ""`,
		},
		{
			name: "invalid json",
			body: `)]}'`,
			want: `GoogleTrends error: Invalid google response body ")]}'"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explorer := explorerWith(ExploreResult{ID: "GEO_MAP", Token: "TOKEN"})
			requester := mock.New().WithResponse(comparedGeoPath, tt.body)

			_, err := NewInterestByRegionSearch(explorer, requester, quiet()).Search(context.Background(), keywordFilter())
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestInterestByRegionSearch_MissingWidget(t *testing.T) {
	explorer := explorerWith(ExploreResult{ID: "RELATED_QUERIES", Token: "TOKEN"})

	_, err := NewInterestByRegionSearch(explorer, mustNotCall(t), quiet()).Search(context.Background(), keywordFilter())
	assert.EqualError(t, err, "GoogleTrends error: No explore result available for interest by region!")
}

func TestInterestOverTimeSearch_Search(t *testing.T) {
	explorer := explorerWith(
		ExploreResult{ID: "TIMESERIES", Token: "TOKEN"},
		ExploreResult{ID: "GEO_MAP", Token: "OTHER"},
	)
	requester := mock.New().WithResponse(multilinePath, `{
		"default": {
			"timelineData": [
				{"time": "1284076800", "formattedTime": "Sep 10, 2010", "formattedAxisTime": "Sep 10", "value": [75], "hasData": [true], "formattedValue": ["75"]},
				{"time": "1284163200", "formattedTime": "Sep 11, 2010", "formattedAxisTime": "Sep 11", "value": [0], "hasData": [false], "formattedValue": ["0"]}
			],
			"averages": []
		}
	}`)

	got, err := NewInterestOverTimeSearch(explorer, requester, quiet()).Search(context.Background(), keywordFilter())
	require.NoError(t, err)

	want := NewCollection(multilineURL,
		InterestOverTimeResult{
			InterestAt:    time.Date(2010, 9, 10, 0, 0, 0, 0, time.UTC),
			FormattedTime: "Sep 10, 2010",
			Value:         75,
			HasData:       true,
		},
		InterestOverTimeResult{
			InterestAt:    time.Date(2010, 9, 11, 0, 0, 0, 0, time.UTC),
			FormattedTime: "Sep 11, 2010",
			Value:         0,
			HasData:       false,
		},
	)
	assert.Equal(t, want, got)
}

func TestInterestOverTimeSearch_MissingKeys(t *testing.T) {
	explorer := explorerWith(ExploreResult{ID: "TIMESERIES", Token: "TOKEN"})
	requester := mock.New().WithResponse(multilinePath, `{"default": {"timelineData": [{"time": "1284076800", "value": [1]}]}}`)

	_, err := NewInterestOverTimeSearch(explorer, requester, quiet()).Search(context.Background(), keywordFilter())
	assert.EqualError(t, err, "GoogleTrends error: Google timeline data does not contain all keys. Only has: time, value")
}
