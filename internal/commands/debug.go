package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/util"
)

// Calibrate sends the calibrate command and prints the reply bytes.
func Calibrate(c *m18.Client, w io.Writer) error {
	defer c.Idle()
	if err := synced(c); err != nil {
		return err
	}
	reply, err := c.Calibrate()
	if err != nil {
		return fmt.Errorf("calibrate failed: %w", err)
	}
	fmt.Fprintf(w, "Response: %s\n", util.SpacedHex(reply))
	return nil
}

// Custom sends [opcode 04 03 hi lo length] and prints the reply bytes.
func Custom(c *m18.Client, w io.Writer, opcode, addrHigh, addrLow, length byte) error {
	defer c.Idle()
	if err := synced(c); err != nil {
		return err
	}
	log.Debug().Msgf("custom command %02X at %02X%02X, %d bytes", opcode, addrHigh, addrLow, length)
	reply, err := c.SendCustomCommand(opcode, addrHigh, addrLow, length)
	if err != nil {
		return fmt.Errorf("command failed: %w", err)
	}
	fmt.Fprintf(w, "Response: %s\n", util.SpacedHex(reply))
	return nil
}

// Note writes msg into the pack's note register.
func Note(c *m18.Client, w io.Writer, msg string) error {
	if err := c.WriteMessage(msg); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}
	fmt.Fprintf(w, "Wrote note %q\n", msg)
	return nil
}
