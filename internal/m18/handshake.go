package m18

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitaminmoo/m18-tool/internal/protocol"
)

const (
	resetHold  = 300 * time.Millisecond
	syncSettle = 10 * time.Millisecond
)

// State is the progress of the reset handshake.
type State int

const (
	PoweredDown State = iota
	BreakAsserted
	Settling
	SyncSent
	Synced
	Failed
)

func (s State) String() string {
	switch s {
	case PoweredDown:
		return "powered down"
	case BreakAsserted:
		return "break asserted"
	case Settling:
		return "settling"
	case SyncSent:
		return "sync sent"
	case Synced:
		return "synced"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reset power-cycles the pack's interface and synchronises with it. It
// returns false, with no error, when the pack does not echo the sync byte;
// errors are reserved for failures of the line itself. The sequence byte
// always restarts at its initial value.
func (c *Client) Reset() (bool, error) {
	c.seq.Reset()
	c.state = PoweredDown

	if err := c.setLines(true); err != nil {
		c.state = Failed
		return false, err
	}
	c.state = BreakAsserted
	c.sleep(resetHold)

	if err := c.setLines(false); err != nil {
		c.state = Failed
		return false, err
	}
	c.state = Settling
	c.sleep(resetHold)

	if err := c.send([]byte{protocol.SyncByte}); err != nil {
		c.state = Failed
		return false, err
	}
	c.state = SyncSent

	reply, err := c.readResponse(1)
	if err != nil {
		log.Debug().Err(err).Msg("no sync reply")
		c.state = Failed
		return false, nil
	}
	if reply[0] != protocol.SyncByte {
		log.Debug().Msgf("unexpected sync reply %02X", reply[0])
		c.state = Failed
		return false, nil
	}

	c.sleep(syncSettle)
	c.state = Synced
	return true, nil
}

// Idle holds J2 low: break asserted, DTR set. The pack powers down its
// interface. Errors are ignored.
func (c *Client) Idle() {
	if err := c.setLines(true); err != nil {
		log.Debug().Err(err).Msg("failed to idle line")
	}
}

// High drives J2 to about 20V: break cleared, DTR cleared. The pack's
// interface must be powered before it answers.
func (c *Client) High() {
	if err := c.setLines(false); err != nil {
		log.Debug().Err(err).Msg("failed to raise line")
	}
}

// HighFor keeps J2 high for d and then returns it to idle.
func (c *Client) HighFor(d time.Duration) {
	c.High()
	defer c.Idle()
	c.sleep(d)
}

func (c *Client) setLines(idle bool) error {
	if err := c.line.SetBreak(idle); err != nil {
		return err
	}
	return c.line.SetDTR(idle)
}
