package gbfs

import (
	"errors"
	"fmt"
)

// StatusError is a non-2xx answer from a feed.
type StatusError struct {
	Feed       string
	URL        string
	Code       int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s feed returned %d %s", e.Feed, e.Code, e.StatusText)
}

// TransportError is a request that never produced a response.
type TransportError struct {
	Feed string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s feed unavailable: %v", e.Feed, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// PayloadError is a response body that is not the expected feed document.
type PayloadError struct {
	Feed string
	Err  error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s feed malformed: %v", e.Feed, e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }

// DisplayMessage is the text shown to a user in place of the station table.
// HTTP failures show only the status text, as a browser would.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusText == "" {
			return fallbackStatusText(statusErr.Code)
		}
		return statusErr.StatusText
	}
	return err.Error()
}

func fallbackStatusText(code int) string {
	return fmt.Sprintf("HTTP %d", code)
}
