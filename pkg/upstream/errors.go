package upstream

import (
	"errors"
	"fmt"
)

// ErrNotJSON is returned when the body holds no JSON object after the
// anti-XSSI prefix has been removed.
var ErrNotJSON = errors.New("response is not a JSON object")

// StatusError reports a non-2xx answer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned status %d", e.Code)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Code, e.Body)
}

// Severity tells the retrier what to do with a failure.
type Severity int

const (
	SeverityRetryable Severity = iota
	SeverityFatal
)

// Classify treats network failures, 429 and 5xx as retryable. Everything
// else, including malformed bodies, is fatal.
func Classify(err error) Severity {
	if err == nil || errors.Is(err, ErrNotJSON) {
		return SeverityFatal
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code == 429 || statusErr.Code >= 500 {
			return SeverityRetryable
		}
		return SeverityFatal
	}

	return SeverityRetryable
}
