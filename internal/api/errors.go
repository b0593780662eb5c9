package api

import (
	"errors"
	"fmt"
)

// ErrUnreachable marks transport-level failures where the request never got
// a response. Callers turn it into the connectivity message.
var ErrUnreachable = errors.New("unable to reach the server")

// Error is a failure reported by the backend.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}
