package inhibit

import (
	"fmt"

	"github.com/godbus/dbus/v5"
	"golang.org/x/sys/unix"
)

// Acquire takes a block-mode sleep:shutdown inhibitor lock from logind on
// the system bus.
func Acquire(who, why string) (*Lock, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}

	obj := conn.Object("org.freedesktop.login1", "/org/freedesktop/login1")
	call := obj.Call("org.freedesktop.login1.Manager.Inhibit", 0,
		"sleep:shutdown", who, why, "block")
	if call.Err != nil {
		return nil, fmt.Errorf("failed to acquire inhibitor lock: %w", call.Err)
	}

	var fd dbus.UnixFD
	if err := call.Store(&fd); err != nil {
		return nil, fmt.Errorf("failed to extract file descriptor: %w", err)
	}
	return &Lock{fd: int(fd), why: why}, nil
}

// Release closes the descriptor. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if !l.Active() {
		return nil
	}
	if err := unix.Close(l.fd); err != nil {
		return fmt.Errorf("failed to close inhibitor fd: %w", err)
	}
	l.fd = -1
	return nil
}
