package m18

import (
	"errors"
	"fmt"

	"github.com/vitaminmoo/m18-tool/internal/protocol"
	"github.com/vitaminmoo/m18-tool/internal/uart"
)

// MaxMessageLength is the size of the note field.
const MaxMessageLength = 20

// ErrNoResponse is returned by operations that need a synchronised pack
// when the reset handshake fails.
var ErrNoResponse = errors.New("battery did not respond to reset")

// RegisterNotFoundError is returned when no register starts at Address.
type RegisterNotFoundError struct {
	Address uint16
}

func (e *RegisterNotFoundError) Error() string {
	return fmt.Sprintf("register not found: %#06x", e.Address)
}

// MessageTooLongError is returned when a note exceeds MaxMessageLength.
type MessageTooLongError struct {
	Length int
}

func (e *MessageTooLongError) Error() string {
	return fmt.Sprintf("message too long: %d bytes (max %d)", e.Length, MaxMessageLength)
}

// IsConnectivity reports whether err suggests the adapter is miswired or
// the pack is absent, as opposed to a bad argument or decode failure.
func IsConnectivity(err error) bool {
	return errors.Is(err, protocol.ErrTimeout) ||
		errors.Is(err, protocol.ErrEmptyResponse) ||
		errors.Is(err, ErrNoResponse) ||
		uart.IsDisconnect(err)
}
