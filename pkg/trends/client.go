package trends

import (
	"context"
	"fmt"
)

// Client bundles the explore stage with the four report searches over one
// requester.
type Client struct {
	Explore          *ExploreSearch
	InterestOverTime *InterestOverTimeSearch
	InterestByRegion *InterestByRegionSearch
	RelatedTopics    *RelatedTopicsSearch
	RelatedQueries   *RelatedQueriesSearch
}

func NewClient(requester Requester, opts ...Option) *Client {
	explore := NewExploreSearch(requester, opts...)
	return &Client{
		Explore:          explore,
		InterestOverTime: NewInterestOverTimeSearch(explore, requester, opts...),
		InterestByRegion: NewInterestByRegionSearch(explore, requester, opts...),
		RelatedTopics:    NewRelatedTopicsSearch(explore, requester, opts...),
		RelatedQueries:   NewRelatedQueriesSearch(explore, requester, opts...),
	}
}

// Search runs the report chosen at runtime.
func (c *Client) Search(ctx context.Context, report ReportType, filter SearchFilter) (ResultCollection, error) {
	switch report {
	case InterestOverTime:
		return collect(c.InterestOverTime.Search(ctx, filter))
	case InterestByRegion:
		return collect(c.InterestByRegion.Search(ctx, filter))
	case RelatedTopics:
		return collect(c.RelatedTopics.Search(ctx, filter))
	case RelatedQueries:
		return collect(c.RelatedQueries.Search(ctx, filter))
	}
	return nil, &Error{Message: fmt.Sprintf("unknown report %s", report)}
}

// collect keeps a failed search from returning a typed nil inside the
// interface.
func collect[T any](c *Collection[T], err error) (ResultCollection, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
