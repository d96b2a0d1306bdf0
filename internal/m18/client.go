package m18

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitaminmoo/m18-tool/internal/protocol"
	"github.com/vitaminmoo/m18-tool/internal/registers"
	"github.com/vitaminmoo/m18-tool/internal/uart"
	"github.com/vitaminmoo/m18-tool/internal/util"
)

// Delay after every reply; the pack misses commands sent back to back
// through isolated adapters.
const responseGap = 50 * time.Millisecond

// Client talks to one pack over an exclusively owned line. It is not safe
// for concurrent use.
type Client struct {
	line   uart.Line
	tables *registers.Tables
	seq    protocol.Sequence
	state  State

	printTX bool
	printRX bool
	strict  bool

	sleep func(time.Duration)
	now   func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithTables replaces the built-in register, region and battery tables.
func WithTables(t *registers.Tables) Option {
	return func(c *Client) { c.tables = t }
}

// WithDebugPrint logs every frame sent (tx) and received (rx).
func WithDebugPrint(tx, rx bool) Option {
	return func(c *Client) { c.SetDebugPrint(tx, rx) }
}

// WithStrictChecksum rejects replies whose trailing checksum does not match.
func WithStrictChecksum(on bool) Option {
	return func(c *Client) { c.strict = on }
}

// New creates a client that owns line. The line is left idle.
func New(line uart.Line, opts ...Option) *Client {
	c := &Client{
		line:   line,
		tables: registers.DefaultTables(),
		sleep:  time.Sleep,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Idle()
	return c
}

// Open opens a serial device and returns a client for it.
func Open(port string, opts ...Option) (*Client, error) {
	line, err := uart.Open(port)
	if err != nil {
		return nil, err
	}
	return New(line, opts...), nil
}

// SetDebugPrint toggles logging of sent and received frames.
func (c *Client) SetDebugPrint(tx, rx bool) {
	c.printTX = tx
	c.printRX = rx
}

// Tables returns the tables the client decodes against.
func (c *Client) Tables() *registers.Tables {
	return c.tables
}

// ACC returns the sequence byte the next command will carry.
func (c *Client) ACC() byte {
	return c.seq.Current()
}

// State returns where the last reset handshake ended.
func (c *Client) State() State {
	return c.state
}

// Close leaves the line idle and releases it.
func (c *Client) Close() error {
	c.Idle()
	return c.line.Close()
}

// send writes p bit-reversed, without a checksum.
func (c *Client) send(p []byte) error {
	if err := c.line.ResetInput(); err != nil {
		return fmt.Errorf("failed to clear input: %w", err)
	}
	if c.printTX {
		log.Debug().Msgf("Sending:  %s", util.SpacedHex(p))
	}
	if _, err := c.line.Write(protocol.Reverse(p)); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	return nil
}

func (c *Client) sendCommand(cmd []byte) error {
	return c.send(protocol.AppendChecksum(cmd))
}

func (c *Client) readResponse(expected int) ([]byte, error) {
	frame, err := protocol.ReadFrame(c.line, expected)
	if err != nil {
		return nil, err
	}
	if c.printRX {
		log.Debug().Msgf("Received: %s", util.SpacedHex(frame))
	}
	if c.strict {
		if err := protocol.VerifyChecksum(frame); err != nil {
			return nil, err
		}
	}
	c.sleep(responseGap)
	return frame, nil
}

// exchange sends cmd and reads a reply of the expected size.
func (c *Client) exchange(cmd []byte, expected int) ([]byte, error) {
	if err := c.sendCommand(cmd); err != nil {
		return nil, err
	}
	return c.readResponse(expected)
}
