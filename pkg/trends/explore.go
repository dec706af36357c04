package trends

import (
	"context"
	"strings"
)

const explorePath = "/trends/api/explore"

// ExploreResult pairs a widget id with the token that unlocks its report.
// The token is only meaningful for requests built from the same filter.
type ExploreResult struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Report maps the widget id onto a known report type.
func (r ExploreResult) Report() (ReportType, bool) {
	return reportForWidget(r.ID)
}

// ExploreResultCollection keeps explore widgets in response order.
type ExploreResultCollection struct {
	results []ExploreResult
}

func NewExploreResultCollection(results ...ExploreResult) *ExploreResultCollection {
	return &ExploreResultCollection{results: results}
}

func (c *ExploreResultCollection) Results() []ExploreResult {
	out := make([]ExploreResult, len(c.results))
	copy(out, c.results)
	return out
}

// Lookup returns the first widget for the report. Explore omits widgets that
// do not apply to the filter, e.g. related topics for an empty term.
func (c *ExploreResultCollection) Lookup(report ReportType) (ExploreResult, error) {
	for _, r := range c.results {
		if r.ID == report.WidgetID() {
			return r, nil
		}
	}
	return ExploreResult{}, newError("No explore result available for %s!", report)
}

func (c *ExploreResultCollection) RelatedQueries() (ExploreResult, error) {
	return c.Lookup(RelatedQueries)
}

func (c *ExploreResultCollection) RelatedTopics() (ExploreResult, error) {
	return c.Lookup(RelatedTopics)
}

func (c *ExploreResultCollection) InterestOverTime() (ExploreResult, error) {
	return c.Lookup(InterestOverTime)
}

func (c *ExploreResultCollection) InterestByRegion() (ExploreResult, error) {
	return c.Lookup(InterestByRegion)
}

// Explorer resolves a filter into widget tokens.
type Explorer interface {
	Search(ctx context.Context, filter SearchFilter) (*ExploreResultCollection, error)
}

// ExploreSearch is the first stage of every report search.
type ExploreSearch struct {
	requester Requester
	opts      options
}

func NewExploreSearch(requester Requester, opts ...Option) *ExploreSearch {
	return &ExploreSearch{
		requester: requester,
		opts:      newOptions("explore_search", opts),
	}
}

type exploreComparisonItem struct {
	Geo     string `json:"geo"`
	Time    string `json:"time"`
	Keyword string `json:"keyword,omitempty"`
}

type exploreRequest struct {
	ComparisonItem []exploreComparisonItem `json:"comparisonItem"`
	Category       int                     `json:"category"`
	Property       string                  `json:"property"`
}

func (s *ExploreSearch) Search(ctx context.Context, filter SearchFilter) (*ExploreResultCollection, error) {
	searchURL, err := s.buildURL(filter)
	if err != nil {
		return nil, err
	}

	log := s.opts.log.WithField("url", searchURL)
	log.Debug("Starting explore search")

	body, err := s.requester.Get(ctx, searchURL)
	if err != nil {
		log.WithError(err).Warn("Explore request failed")
		return nil, wrapTransport(err)
	}

	root, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	widgets := root.Get("widgets")
	if !widgets.IsArray() {
		return nil, invalidBodyError(truncate(root.Raw))
	}

	results := make([]ExploreResult, 0, len(widgets.Array()))
	for _, widget := range widgets.Array() {
		id, token := widget.Get("id"), widget.Get("token")
		if !widget.IsObject() || !id.Exists() || !token.Exists() {
			return nil, newError("Missing request data for explore search. Got %s", strings.Join(objectKeys(widget), ", "))
		}
		results = append(results, ExploreResult{ID: id.String(), Token: token.String()})
	}

	log.WithField("widgets", len(results)).Debug("Explore search completed")
	return NewExploreResultCollection(results...), nil
}

func (s *ExploreSearch) buildURL(filter SearchFilter) (string, error) {
	req, err := encodeRequest(exploreRequest{
		ComparisonItem: []exploreComparisonItem{{
			Geo:     filter.Location(),
			Time:    filter.Time(),
			Keyword: filter.SearchTerm(),
		}},
		Category: filter.Category(),
		Property: filter.Property(),
	})
	if err != nil {
		return "", err
	}

	return buildURL(s.opts.baseURL, explorePath,
		queryParam{"hl", filter.Language()},
		queryParam{"tz", "-120"},
		queryParam{"req", req},
	), nil
}
