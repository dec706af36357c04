package upstream

import (
	"bytes"
	"context"
	"path"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"github.com/valyala/fasthttp"

	"trends-go/pkg/logger"
	"trends-go/pkg/metrics"
)

const maxLoggedBody = 512

// Client fetches trends API URLs over fasthttp. It satisfies
// trends.Requester.
type Client struct {
	config  Config
	http    *fasthttp.Client
	retry   *retrier
	metrics *metrics.Metrics
	log     *logger.Logger
}

type Option func(*Client)

func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func New(config Config, opts ...Option) *Client {
	config = config.withDefaults()

	c := &Client{
		config: config,
		http: &fasthttp.Client{
			Name:                config.UserAgent,
			MaxConnsPerHost:     config.MaxConnsPerHost,
			MaxIdleConnDuration: config.MaxIdleDuration,
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
		},
		retry: newRetrier(config.MaxRetries, config.RetryDelay),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.GetLogger()
	}
	c.log = c.log.WithComponent("upstream_client")
	return c
}

// Get performs the request and returns the JSON document with any
// anti-XSSI prefix removed.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	attempt := 0

	err := c.retry.Execute(ctx, func() error {
		attempt++
		if attempt > 1 && c.metrics != nil {
			c.metrics.RecordRetry(endpointOf(rawURL))
		}
		var err error
		body, err = c.do(ctx, rawURL)
		return err
	})
	if err != nil {
		c.log.WithError(err).WithFields(map[string]interface{}{
			"url":      logger.MaskURL(rawURL),
			"attempts": attempt,
		}).Warn("Upstream request failed")
		return nil, err
	}

	return body, nil
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(rawURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	endpoint := endpointOf(rawURL)
	start := time.Now()

	if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		c.record(endpoint, "error", start)
		return nil, err
	}

	status := resp.StatusCode()
	c.record(endpoint, strconv.Itoa(status), start)

	if status < 200 || status > 299 {
		return nil, &StatusError{Code: status, Body: clip(resp.Body())}
	}

	body, err := stripPrefix(resp.Body())
	if err != nil {
		c.log.WithField("body", clip(resp.Body())).Debug("Upstream returned a non-JSON body")
		return nil, err
	}

	c.log.WithFields(map[string]interface{}{
		"endpoint":    endpoint,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Upstream request completed")
	return body, nil
}

// deadline is the earlier of the configured timeout and the context's own.
func (c *Client) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(c.config.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}

func (c *Client) record(endpoint, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordUpstream(endpoint, status, time.Since(start))
}

// stripPrefix drops everything before the first '{' and copies the rest out
// of the pooled response buffer.
func stripPrefix(raw []byte) ([]byte, error) {
	i := bytes.IndexByte(raw, '{')
	if i < 0 {
		return nil, ErrNotJSON
	}
	body := append([]byte(nil), raw[i:]...)
	if !gjson.ValidBytes(body) {
		return nil, ErrNotJSON
	}
	return body, nil
}

func endpointOf(rawURL string) string {
	var uri fasthttp.URI
	if err := uri.Parse(nil, []byte(rawURL)); err != nil {
		return "unknown"
	}
	return path.Base(string(uri.Path()))
}

func clip(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "..."
	}
	return string(b)
}
