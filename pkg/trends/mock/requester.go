package mock

import (
	"context"
	"fmt"
	"net/url"
	"sync"
)

// Requester returns canned bodies keyed by URL path and records every call.
type Requester struct {
	Responses map[string][]byte
	Errors    map[string]error

	CallCount int
	URLs      []string

	mu sync.Mutex
}

func New() *Requester {
	return &Requester{
		Responses: map[string][]byte{},
		Errors:    map[string]error{},
	}
}

// WithResponse serves body for requests whose path equals path.
func (r *Requester) WithResponse(path, body string) *Requester {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Responses[path] = []byte(body)
	return r
}

// WithError fails requests whose path equals path.
func (r *Requester) WithError(path string, err error) *Requester {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors[path] = err
	return r
}

func (r *Requester) Get(ctx context.Context, rawURL string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CallCount++
	r.URLs = append(r.URLs, rawURL)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if err, ok := r.Errors[u.Path]; ok {
		return nil, err
	}
	if body, ok := r.Responses[u.Path]; ok {
		return body, nil
	}
	return nil, fmt.Errorf("no canned response for %s", u.Path)
}

// LastURL is the most recent requested URL, or "".
func (r *Requester) LastURL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.URLs) == 0 {
		return ""
	}
	return r.URLs[len(r.URLs)-1]
}
