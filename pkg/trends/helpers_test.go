package trends

import (
	"context"
	"testing"
	"time"

	"trends-go/pkg/logger"
)

var anchor = time.Date(2010, 10, 10, 0, 0, 0, 0, time.UTC)

func keywordFilter() SearchFilter {
	return NewSearchFilter(anchor).WithSearchTerm("_keyword_")
}

// stubExplorer hands back a fixed collection and records what it was asked.
type stubExplorer struct {
	collection *ExploreResultCollection
	err        error
	calls      []SearchFilter
}

func explorerWith(results ...ExploreResult) *stubExplorer {
	return &stubExplorer{collection: NewExploreResultCollection(results...)}
}

func (s *stubExplorer) Search(_ context.Context, filter SearchFilter) (*ExploreResultCollection, error) {
	s.calls = append(s.calls, filter)
	if s.err != nil {
		return nil, s.err
	}
	return s.collection, nil
}

func quiet() Option {
	return WithLogger(logger.Nop())
}

func mustNotCall(t *testing.T) Requester {
	t.Helper()
	return RequesterFunc(func(context.Context, string) ([]byte, error) {
		t.Fatal("requester must not be called")
		return nil, nil
	})
}
