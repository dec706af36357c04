package trends

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Metric labels a related-search row as an all-time top entry or a rising one.
type Metric string

const (
	MetricTop    Metric = "TOP"
	MetricRising Metric = "RISING"
)

// Search properties accepted by the upstream "property" field.
const (
	PropertyWeb      = ""
	PropertyImages   = "images"
	PropertyNews     = "news"
	PropertyYouTube  = "youtube"
	PropertyShopping = "froogle"
)

var propertyNames = map[string]string{
	"":         PropertyWeb,
	"web":      PropertyWeb,
	"images":   PropertyImages,
	"news":     PropertyNews,
	"youtube":  PropertyYouTube,
	"froogle":  PropertyShopping,
	"shopping": PropertyShopping,
}

// ParseProperty maps a user-facing property name to its upstream value.
func ParseProperty(name string) (string, bool) {
	p, ok := propertyNames[strings.ToLower(name)]
	return p, ok
}

const (
	dateLayout  = "2006-01-02"
	rangeDays   = 31
	defaultGeo  = "US"
	defaultLang = "en-US"
)

// SearchFilter holds every query parameter for one search. It is a value:
// the With* methods return modified copies and never touch the receiver, and
// two filters with the same fields compare equal with ==.
type SearchFilter struct {
	term        string
	location    string
	category    int
	property    string
	language    string
	time        string
	compareTime string
	top         bool
	rising      bool
}

// NewSearchFilter builds a filter whose 31-day window ends on anchor.
func NewSearchFilter(anchor time.Time) SearchFilter {
	end := anchor
	start := end.AddDate(0, 0, -(rangeDays - 1))
	compareEnd := start.AddDate(0, 0, -1)
	compareStart := compareEnd.AddDate(0, 0, -(rangeDays - 1))

	return SearchFilter{
		location:    defaultGeo,
		language:    defaultLang,
		property:    PropertyWeb,
		time:        formatRange(start, end),
		compareTime: formatRange(compareStart, compareEnd),
	}
}

// Now anchors a filter on the current date.
func Now() SearchFilter {
	return NewSearchFilter(time.Now())
}

func formatRange(from, to time.Time) string {
	return from.Format(dateLayout) + " " + to.Format(dateLayout)
}

func (f SearchFilter) WithSearchTerm(term string) SearchFilter {
	f.term = term
	return f
}

func (f SearchFilter) WithLocation(geo string) SearchFilter {
	f.location = geo
	return f
}

func (f SearchFilter) WithCategory(category int) SearchFilter {
	f.category = category
	return f
}

func (f SearchFilter) WithProperty(property string) SearchFilter {
	f.property = property
	return f
}

func (f SearchFilter) WithLanguage(lang string) SearchFilter {
	f.language = lang
	return f
}

func (f SearchFilter) WithTopMetrics() SearchFilter {
	f.top = true
	return f
}

func (f SearchFilter) WithRisingMetrics() SearchFilter {
	f.rising = true
	return f
}

func (f SearchFilter) ConsiderWebSearch() SearchFilter { return f.WithProperty(PropertyWeb) }
func (f SearchFilter) ConsiderImageSearch() SearchFilter { return f.WithProperty(PropertyImages) }
func (f SearchFilter) ConsiderNewsSearch() SearchFilter { return f.WithProperty(PropertyNews) }
func (f SearchFilter) ConsiderYouTubeSearch() SearchFilter { return f.WithProperty(PropertyYouTube) }
func (f SearchFilter) ConsiderShoppingSearch() SearchFilter { return f.WithProperty(PropertyShopping) }

func (f SearchFilter) SearchTerm() string { return f.term }
func (f SearchFilter) Location() string { return f.location }
func (f SearchFilter) Category() int { return f.category }
func (f SearchFilter) Property() string { return f.property }
func (f SearchFilter) Language() string { return f.language }

// Time is the primary window, "YYYY-MM-DD YYYY-MM-DD".
func (f SearchFilter) Time() string { return f.time }

// CompareTime is the 31-day window ending the day before Time starts.
func (f SearchFilter) CompareTime() string { return f.compareTime }

// Metrics returns the requested metrics, TOP before RISING.
func (f SearchFilter) Metrics() []Metric {
	metrics := make([]Metric, 0, 2)
	if f.top {
		metrics = append(metrics, MetricTop)
	}
	if f.rising {
		metrics = append(metrics, MetricRising)
	}
	return metrics
}

// Wants reports whether m was requested.
func (f SearchFilter) Wants(m Metric) bool {
	switch m {
	case MetricTop:
		return f.top
	case MetricRising:
		return f.rising
	}
	return false
}

// LanguageBase reduces the language tag to its base subtag ("en-US" -> "en").
func (f SearchFilter) LanguageBase() string {
	if tag, err := language.Parse(f.language); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}
	lang, _, _ := strings.Cut(f.language, "-")
	return lang
}

func (f SearchFilter) Equal(other SearchFilter) bool {
	return f == other
}
