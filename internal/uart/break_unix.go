//go:build linux || darwin

package uart

import "golang.org/x/sys/unix"

// breaker holds a second descriptor on the tty used only for the break
// ioctls. The serial library can only send a timed break; the reset
// sequence needs the line held in break for as long as the caller wants.
type breaker struct {
	fd int
}

func openBreaker(name string) (*breaker, error) {
	fd, err := unix.Open(name, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	return &breaker{fd: fd}, nil
}

func (b *breaker) set(on bool) error {
	var req uint = unix.TIOCCBRK
	if on {
		req = unix.TIOCSBRK
	}
	return unix.IoctlSetInt(b.fd, req, 0)
}

func (b *breaker) Close() error {
	return unix.Close(b.fd)
}
