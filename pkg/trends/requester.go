package trends

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"trends-go/pkg/logger"
)

// DefaultBaseURL is the public trends host.
const DefaultBaseURL = "https://trends.google.com"

const backendID = "IZG"

// Requester performs a GET and returns the raw JSON body. Implementations
// own timeouts, connection handling and anti-XSSI prefix stripping.
type Requester interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

// RequesterFunc adapts a plain function to Requester.
type RequesterFunc func(ctx context.Context, rawURL string) ([]byte, error)

func (f RequesterFunc) Get(ctx context.Context, rawURL string) ([]byte, error) {
	return f(ctx, rawURL)
}

type options struct {
	baseURL string
	log     *logger.Logger
}

// Option configures a search.
type Option func(*options)

// WithBaseURL points searches at another host, mostly for tests.
func WithBaseURL(base string) Option {
	return func(o *options) {
		o.baseURL = strings.TrimRight(base, "/")
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

func newOptions(component string, opts []Option) options {
	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.GetLogger()
	}
	o.log = o.log.WithComponent(component)
	return o
}

type queryParam struct {
	key   string
	value string
}

// upstream accepts ':' ',' and '+' verbatim inside req; everything else is
// percent-encoded and spaces become '+'.
var queryUnescaper = strings.NewReplacer("%3A", ":", "%2C", ",", "%2B", "+")

func buildURL(base, path string, params ...queryParam) string {
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString(path)
	for i, p := range params {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.key))
		sb.WriteByte('=')
		sb.WriteString(queryUnescaper.Replace(url.QueryEscape(p.value)))
	}
	return sb.String()
}

// encodeRequest renders the compact JSON carried in the req parameter.
func encodeRequest(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", &Error{Message: "encode request: " + err.Error(), Err: err}
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// shared request fragments

type geoRestriction struct {
	Country string `json:"country"`
}

type keywordEntry struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type keywordRestriction struct {
	Keyword []keywordEntry `json:"keyword"`
}

type requestOptions struct {
	Property string `json:"property"`
	Backend  string `json:"backend"`
	Category int    `json:"category"`
}

func newRequestOptions(f SearchFilter) requestOptions {
	return requestOptions{Property: f.Property(), Backend: backendID, Category: f.Category()}
}

// broadKeyword is nil for an empty term so the field is omitted.
func broadKeyword(f SearchFilter) *keywordRestriction {
	if f.SearchTerm() == "" {
		return nil
	}
	return &keywordRestriction{Keyword: []keywordEntry{{Type: "BROAD", Value: f.SearchTerm()}}}
}
