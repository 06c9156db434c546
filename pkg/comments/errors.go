package comments

import (
	"errors"
	"fmt"
)

var (
	// ErrBadResponse matches any *BadResponseError via errors.Is.
	ErrBadResponse = errors.New("bad response")
	// ErrInvalidData matches any *InvalidDataError via errors.Is.
	ErrInvalidData = errors.New("invalid data")
)

// BadResponseError is returned when the server answers with a status other than 200.
type BadResponseError struct {
	Body       string
	StatusCode int
}

// Error returns the raw response body, which is what the server said went wrong.
func (e *BadResponseError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code %d", e.StatusCode)
	}
	return e.Body
}

func (e *BadResponseError) Is(target error) bool { return target == ErrBadResponse }

// InvalidDataError is returned when a request or response body cannot be
// interpreted as the expected JSON.
type InvalidDataError struct {
	Message string
	Err     error
}

func (e *InvalidDataError) Error() string { return e.Message }

func (e *InvalidDataError) Unwrap() error { return e.Err }

func (e *InvalidDataError) Is(target error) bool { return target == ErrInvalidData }

func invalidData(err error, format string, args ...any) *InvalidDataError {
	return &InvalidDataError{Message: fmt.Sprintf(format, args...), Err: err}
}
