package uart

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

// Port is a Line backed by a local serial device.
type Port struct {
	name string
	port serial.Port
	brk  *breaker
}

// Open opens the named device at 4800 baud, 8 data bits, no parity and two
// stop bits, with a read timeout of ReadTimeout.
func Open(name string) (*Port, error) {
	// The break handle must be opened first: the serial library claims the
	// tty exclusively, after which further opens fail with EBUSY.
	brk, err := openBreaker(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for line control: %w", name, err)
	}

	p, err := serial.Open(name, &serial.Mode{
		BaudRate: BaudRate,
		DataBits: DataBits,
		Parity:   serial.NoParity,
		StopBits: serial.TwoStopBits,
	})
	if err != nil {
		brk.Close()
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}

	if err := p.SetReadTimeout(ReadTimeout); err != nil {
		p.Close()
		brk.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	log.Debug().Str("port", name).Int("baud", BaudRate).Msg("serial port open")
	return &Port{name: name, port: p, brk: brk}, nil
}

// Name returns the device path.
func (p *Port) Name() string {
	return p.name
}

func (p *Port) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

func (p *Port) SetBreak(on bool) error {
	return p.brk.set(on)
}

func (p *Port) SetDTR(on bool) error {
	return p.port.SetDTR(on)
}

func (p *Port) ResetInput() error {
	return p.port.ResetInputBuffer()
}

// Close releases the device. Callers wanting the control lines left idle
// must set them before closing.
func (p *Port) Close() error {
	return errors.Join(p.port.Close(), p.brk.Close())
}

// IsDisconnect reports whether err means the device went away or could not
// be opened at all, as opposed to a configuration problem.
func IsDisconnect(err error) bool {
	var portErr *serial.PortError
	if !errors.As(err, &portErr) {
		return false
	}
	switch portErr.Code() {
	case serial.PortNotFound, serial.PortClosed, serial.InvalidSerialPort, serial.PortBusy:
		return true
	default:
		return false
	}
}
