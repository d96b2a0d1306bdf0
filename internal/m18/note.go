package m18

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vitaminmoo/m18-tool/internal/protocol"
)

// noteAddress is where the 20-byte free text note lives.
const noteAddress uint16 = 0x0023

// WriteMessage stores msg in the pack's note field, right-padded with '-'.
// Each byte is written with its own command and acknowledged.
func (c *Client) WriteMessage(msg string) error {
	if len(msg) > MaxMessageLength {
		return &MessageTooLongError{Length: len(msg)}
	}

	log.Info().Msgf("Writing %q to memory", msg)
	defer c.Idle()

	ok, err := c.Reset()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoResponse
	}

	padded := msg + strings.Repeat("-", MaxMessageLength-len(msg))
	for i := 0; i < len(padded); i++ {
		addr := noteAddress + uint16(i)
		if _, err := c.exchange(protocol.WriteCommand(addr, padded[i]), protocol.WriteAckLen); err != nil {
			return fmt.Errorf("failed to write note byte %d: %w", i, err)
		}
	}
	return nil
}
