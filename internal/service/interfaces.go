package service

import (
	"context"

	"trends-go/pkg/trends"
)

// SearchService runs one report for one filter.
type SearchService interface {
	Search(ctx context.Context, report trends.ReportType, filter trends.SearchFilter) (trends.ResultCollection, error)
}

// BatchService runs several reports for the same filter.
type BatchService interface {
	SearchAll(ctx context.Context, reports []trends.ReportType, filter trends.SearchFilter) (map[trends.ReportType]trends.ResultCollection, error)
}
