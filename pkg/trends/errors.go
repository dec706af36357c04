package trends

import (
	"errors"
	"fmt"
	"strings"
)

const errorPrefix = "GoogleTrends error: "

// Error is the single failure kind surfaced by every search. Shape
// violations, missing explore widgets and wrapped transport failures all
// arrive as *Error.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return errorPrefix + e.Err.Error()
	}
	return errorPrefix + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// wrapTransport converts a requester failure into the domain error unless it
// already is one.
func wrapTransport(err error) error {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return err
	}
	return &Error{Message: "request failed: " + err.Error(), Err: err}
}

func missingKeysError(list string, present []string) *Error {
	return newError("Google %s does not contain all keys. Only has: %s", list, strings.Join(present, ", "))
}

func invalidBodyError(fragment string) *Error {
	return newError("Invalid google response body %q", fragment)
}
