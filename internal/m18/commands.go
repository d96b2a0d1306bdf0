package m18

import (
	"fmt"

	"github.com/vitaminmoo/m18-tool/internal/protocol"
	"github.com/vitaminmoo/m18-tool/internal/registers"
)

// Configure announces charger limits and the given charge state. The
// sequence byte advances.
func (c *Client) Configure(state protocol.ChargeState) ([]byte, error) {
	cmd := protocol.ConfigureCommand(c.seq.Current(), state)
	if err := c.sendCommand(cmd); err != nil {
		return nil, err
	}
	c.seq.Advance()
	return c.readResponse(protocol.ConfigureReplyLen)
}

// Snapshot requests the pack's live state. The sequence byte advances.
func (c *Client) Snapshot() ([]byte, error) {
	if err := c.sendCommand(protocol.SnapshotCommand(c.seq.Current())); err != nil {
		return nil, err
	}
	c.seq.Advance()
	return c.readResponse(protocol.SnapshotReplyLen)
}

// Keepalive must be sent periodically while impersonating a charger. The
// sequence byte does not advance.
func (c *Client) Keepalive() ([]byte, error) {
	return c.exchange(protocol.KeepaliveCommand(c.seq.Current()), protocol.KeepaliveReplyLen)
}

// Calibrate sends the calibrate command and returns the raw reply. The
// sequence byte advances.
func (c *Client) Calibrate() ([]byte, error) {
	if err := c.sendCommand(protocol.CalibrateCommand(c.seq.Current())); err != nil {
		return nil, err
	}
	c.seq.Advance()
	return c.readResponse(protocol.CalibrateReplyLen)
}

// SendCustomCommand sends [opcode 04 03 hi lo length] and reads length+5
// reply bytes. With opcode protocol.CmdMemory this is a memory read.
func (c *Client) SendCustomCommand(opcode, addrHigh, addrLow, length byte) ([]byte, error) {
	cmd := []byte{opcode, byte(protocol.MemRead), 0x03, addrHigh, addrLow, length}
	return c.exchange(cmd, int(length)+protocol.ReadOverhead)
}

// ReadMemory reads length bytes at addr and returns just the data.
func (c *Client) ReadMemory(addr uint16, length int) ([]byte, error) {
	if length <= 0 || length > 0xFF {
		return nil, fmt.Errorf("invalid read length %d", length)
	}
	reply, err := c.exchange(protocol.ReadCommand(addr, byte(length)), length+protocol.ReadOverhead)
	if err != nil {
		return nil, err
	}
	return payload(reply, length)
}

// ReadAddress resets the pack and decodes the register starting at addr.
func (c *Client) ReadAddress(addr uint16) (registers.Reading, error) {
	id, ok := c.tables.Lookup(addr)
	if !ok {
		return registers.Reading{}, &RegisterNotFoundError{Address: addr}
	}
	def := c.tables.Registers[id]

	defer c.Idle()
	ok, err := c.Reset()
	if err != nil {
		return registers.Reading{}, err
	}
	if !ok {
		return registers.Reading{}, ErrNoResponse
	}

	data, err := c.ReadMemory(def.Address, def.Length)
	if err != nil {
		return registers.Reading{}, fmt.Errorf("failed to read register %d: %w", id, err)
	}
	v, err := registers.Decode(def, data)
	if err != nil {
		return registers.Reading{}, err
	}
	return registers.Reading{ID: id, Definition: def, Value: v}, nil
}

// payload strips the three-byte header from a successful read reply.
func payload(reply []byte, length int) ([]byte, error) {
	if len(reply) < 4 || reply[0] != protocol.ReplyOK {
		return nil, &protocol.InvalidResponseError{
			Expected: fmt.Sprintf("%02X header", protocol.ReplyOK),
			Actual:   fmt.Sprintf("% X", reply),
		}
	}
	if len(reply) < 3+length {
		return nil, &protocol.InvalidResponseError{
			Expected: fmt.Sprintf("%d data bytes", length),
			Actual:   fmt.Sprintf("%d", len(reply)-3),
		}
	}
	return reply[3 : 3+length], nil
}
