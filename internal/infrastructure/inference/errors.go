package inference

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse — ответ получен, но не соответствует контракту.
var ErrMalformedResponse = errors.New("malformed inference response")

// ParseError описывает, чем именно плох ответ.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedResponse, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedResponse, e.Reason)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedResponse, e.Err}
	}
	return []error{ErrMalformedResponse}
}

// StatusError — сервис ответил не 2xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("inference failed with status: %d", e.Code)
	}
	return fmt.Sprintf("inference failed with status: %d: %s", e.Code, e.Body)
}
