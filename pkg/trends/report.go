package trends

import "fmt"

// ReportType enumerates the upstream widgets this library understands.
type ReportType int

const (
	InterestOverTime ReportType = iota
	InterestByRegion
	RelatedTopics
	RelatedQueries
)

// AllReports lists every report type in a stable order.
var AllReports = []ReportType{InterestOverTime, InterestByRegion, RelatedTopics, RelatedQueries}

var reportMeta = map[ReportType]struct {
	widgetID string
	name     string
	slug     string
}{
	InterestOverTime: {"TIMESERIES", "interest over time", "search-interest-over-time"},
	InterestByRegion: {"GEO_MAP", "interest by region", "search-interest-by-region"},
	RelatedTopics:    {"RELATED_TOPICS", "related topics", "search-related-topics"},
	RelatedQueries:   {"RELATED_QUERIES", "related queries", "search-related-queries"},
}

// WidgetID is the explore widget id carrying this report's token.
func (r ReportType) WidgetID() string {
	return reportMeta[r].widgetID
}

// Slug is the inbound route name for the report.
func (r ReportType) Slug() string {
	return reportMeta[r].slug
}

func (r ReportType) String() string {
	if m, ok := reportMeta[r]; ok {
		return m.name
	}
	return fmt.Sprintf("ReportType(%d)", int(r))
}

// ParseReportType resolves a route slug such as "search-related-queries".
func ParseReportType(slug string) (ReportType, bool) {
	for _, r := range AllReports {
		if reportMeta[r].slug == slug {
			return r, true
		}
	}
	return 0, false
}

func reportForWidget(id string) (ReportType, bool) {
	for _, r := range AllReports {
		if reportMeta[r].widgetID == id {
			return r, true
		}
	}
	return 0, false
}
