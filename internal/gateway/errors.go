package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the remote API rejected the bearer token. The
	// session has already been invalidated by the time callers see it.
	ErrUnauthorized = errors.New("unauthorized")

	ErrNotFound = errors.New("not found")
)

// ServerError carries a non-2xx response other than 401/404, with
// whatever message body the API sent.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %d", e.Status)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// NetworkError means no usable response arrived: transport failure,
// timeout or cancelled context. Timeouts are not distinguished.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
