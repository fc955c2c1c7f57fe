package networker

import (
	"errors"
	"fmt"
)

var (
	ErrTransport = errors.New("transport error")
	ErrDecode    = errors.New("decode error")

	ErrBadStatus    = errors.New("unexpected response status")
	ErrNotArray     = errors.New("payload is not a json array")
	ErrMissingField = errors.New("required field is missing")
	ErrBodyTooLarge = errors.New("response body exceeds size limit")
)

// TransportError means the request could not be completed: dial, DNS, timeout, cancellation,
// a failed body read or a non-2xx status.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: GET %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport error: GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// payloadLevel marks a DecodeError that is not tied to one array element.
const payloadLevel = -1

// DecodeError means the body did not match the array-of-{id, img_src} shape.
type DecodeError struct {
	Index int
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Index == payloadLevel:
		return fmt.Sprintf("decode error: %v", e.Err)
	case e.Field != "":
		return fmt.Sprintf("decode error: element %d: field %q: %v", e.Index, e.Field, e.Err)
	default:
		return fmt.Sprintf("decode error: element %d: %v", e.Index, e.Err)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
