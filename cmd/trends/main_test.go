package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeTrends(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/trends/api/explore", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`)]}'` + "\n" + `{"widgets": [
			{"id": "TIMESERIES", "token": "T1"},
			{"id": "GEO_MAP", "token": "T2"},
			{"id": "RELATED_TOPICS", "token": "T3"},
			{"id": "RELATED_QUERIES", "token": "T4"}
		]}`))
	})
	mux.HandleFunc("/trends/api/widgetdata/multiline", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`)]}',` + "\n" + `{"default": {"timelineData": [{"time": "1284076800", "formattedTime": "Sep 10, 2010", "value": [5], "hasData": [true]}]}}`))
	})
	mux.HandleFunc("/trends/api/widgetdata/comparedgeo", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"default": {"geoMapData": [{"geoCode": "US-NY", "geoName": "New York", "value": [100], "maxValueIndex": 0, "hasData": [true]}]}}`))
	})
	mux.HandleFunc("/trends/api/widgetdata/relatedsearches", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("req"), `"ENTITY"`) {
			w.Write([]byte(`{"default": {"rankedList": [{"rankedKeyword": [
				{"topic": {"title": "Go", "type": "Programming language"}, "value": 100, "link": "/go", "formattedValue": "100"}
			]}]}}`))
			return
		}
		w.Write([]byte(`{"default": {"rankedList": [{"rankedKeyword": [
			{"query": "golang", "value": 100, "link": "/golang", "formattedValue": "100"},
			{"query": "go generics", "value": 40, "link": "/generics", "formattedValue": "+40%"}
		]}]}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"trends"}, args...))
	return out.String(), err
}

func TestCommandNames(t *testing.T) {
	var names []string
	for _, cmd := range newApp().Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"interest-over-time", "interest-by-region", "related-topics", "related-queries", "all"}, names)
}

func TestRelatedQueriesCommand(t *testing.T) {
	server := fakeTrends(t)

	out, err := run(t, "related-queries", "--base-url", server.URL, "--term", "golang", "--rising", "--date", "2010-10-10")
	require.NoError(t, err)

	var got struct {
		SearchURL    string `json:"searchUrl"`
		TotalResults int    `json:"totalResults"`
		Results      []struct {
			Term   string `json:"term"`
			Metric string `json:"metric"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.True(t, strings.HasPrefix(got.SearchURL, server.URL+"/trends/api/widgetdata/relatedsearches?"))
	assert.Equal(t, 1, got.TotalResults)
	assert.Equal(t, "go generics", got.Results[0].Term)
	assert.Equal(t, "RISING", got.Results[0].Metric)
}

func TestInterestByRegionCommand(t *testing.T) {
	server := fakeTrends(t)

	out, err := run(t, "interest-by-region", "--base-url", server.URL, "--term", "golang")
	require.NoError(t, err)
	assert.Contains(t, out, `"locationName": "New York"`)
}

func TestAllCommand(t *testing.T) {
	server := fakeTrends(t)

	out, err := run(t, "all", "--base-url", server.URL, "--term", "golang", "--top", "--rising")
	require.NoError(t, err)

	var got map[string]struct {
		TotalResults int `json:"totalResults"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 1, got["search-interest-over-time"].TotalResults)
	assert.Equal(t, 1, got["search-interest-by-region"].TotalResults)
	assert.Equal(t, 1, got["search-related-topics"].TotalResults)
	assert.Equal(t, 2, got["search-related-queries"].TotalResults)
}

func TestInvalidFilter(t *testing.T) {
	_, err := run(t, "related-topics", "--base-url", "http://127.0.0.1:1", "--property", "maps")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid property "maps"`)
}
