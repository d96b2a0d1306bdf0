package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when the pack does not answer within the read timeout.
	ErrTimeout = errors.New("communication timeout")
	// ErrEmptyResponse is returned when the line closes before any reply byte.
	ErrEmptyResponse = errors.New("empty response")
	// ErrChecksumMismatch is only returned in strict mode.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// InvalidResponseError reports a reply that does not look like what was asked for.
type InvalidResponseError struct {
	Expected string
	Actual   string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response: expected %s, got %s", e.Expected, e.Actual)
}
